package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdannotate/internal/ui/pretty"
	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/runner"
)

func TestFormatCheckSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 2, Spans: 1, Definitions: 3},
			want:  "No issues found (2 files, 1 span, 3 definitions checked)\n",
		},
		{
			name: "issues",
			stats: runner.Stats{
				FilesProcessed:     3,
				FilesWithIssues:    2,
				Diagnostics:        3,
				DiagnosticsFixable: 1,
				DiagnosticsBySeverity: map[config.Severity]int{
					config.SeverityError:   1,
					config.SeverityWarning: 2,
				},
			},
			want: "3 issues (1 error, 2 warnings) in 2 files, 1 fixable\n",
		},
		{
			name: "formatted and failed",
			stats: runner.Stats{
				FilesProcessed:        1,
				FilesFormatted:        1,
				FilesErrored:          1,
				Diagnostics:           1,
				FilesWithIssues:       1,
				DiagnosticsBySeverity: map[config.Severity]int{config.SeverityInfo: 1},
			},
			want: "1 issue (1 info) in 1 file, 1 file formatted, 1 file failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatCheckSummary(tt.stats))
		})
	}
}

func TestFormatFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "All annotations are canonical (1 file checked)\n",
		styles.FormatFormatSummary(runner.Stats{FilesProcessed: 1}))
	assert.Equal(t, "2 files formatted\n",
		styles.FormatFormatSummary(runner.Stats{FilesProcessed: 2, FilesFormatted: 2}))
	assert.Equal(t, "1 file would be reformatted, 1 file skipped\n",
		styles.FormatFormatSummary(runner.Stats{FilesUnformatted: 1, FilesSkipped: 1}))
}
