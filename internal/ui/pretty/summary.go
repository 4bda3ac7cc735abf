package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/runner"
)

// plural returns "n word" with an s appended unless n is one.
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatCheckSummary renders the one-line result of a check run, e.g.
// "3 issues (1 error, 2 warnings) in 2 files, 1 fixable".
func (s *Styles) FormatCheckSummary(stats runner.Stats) string {
	checked := s.Dim.Render(fmt.Sprintf(" (%s, %s, %s checked)",
		plural(stats.FilesProcessed, "file"),
		plural(stats.Spans, "span"),
		plural(stats.Definitions, "definition"),
	))

	var parts []string
	if stats.Diagnostics == 0 {
		parts = append(parts, s.Success.Render("No issues found")+checked)
	} else {
		var bySeverity []string
		if n := stats.DiagnosticsBySeverity[config.SeverityError]; n > 0 {
			bySeverity = append(bySeverity, s.Error.Render(plural(n, "error")))
		}
		if n := stats.DiagnosticsBySeverity[config.SeverityWarning]; n > 0 {
			bySeverity = append(bySeverity, s.Warning.Render(plural(n, "warning")))
		}
		if n := stats.DiagnosticsBySeverity[config.SeverityInfo]; n > 0 {
			bySeverity = append(bySeverity, s.Info.Render(fmt.Sprintf("%d info", n)))
		}

		head := plural(stats.Diagnostics, "issue")
		if len(bySeverity) > 0 {
			head += " (" + strings.Join(bySeverity, ", ") + ")"
		}
		parts = append(parts, head+" in "+plural(stats.FilesWithIssues, "file"))

		if stats.DiagnosticsFixable > 0 {
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
		}
	}

	if stats.FilesFormatted > 0 {
		parts = append(parts, s.Success.Render(plural(stats.FilesFormatted, "file")+" formatted"))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.FilesErrored, "file")+" failed"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatFormatSummary renders the one-line result of a fmt run.
func (s *Styles) FormatFormatSummary(stats runner.Stats) string {
	var parts []string
	switch {
	case stats.FilesFormatted > 0:
		parts = append(parts, s.Success.Render(plural(stats.FilesFormatted, "file")+" formatted"))
	case stats.FilesUnformatted > 0:
		parts = append(parts, s.Warning.Render(plural(stats.FilesUnformatted, "file")+" would be reformatted"))
	default:
		parts = append(parts, s.Success.Render("All annotations are canonical")+
			s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.FilesProcessed, "file"))))
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(plural(stats.FilesSkipped, "file")+" skipped"))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.FilesErrored, "file")+" failed"))
	}

	return strings.Join(parts, ", ") + "\n"
}
