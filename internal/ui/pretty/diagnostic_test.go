package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdannotate/internal/ui/pretty"
	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/lint"
)

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	diag := &lint.Diagnostic{
		RuleID:      "AN002",
		RuleName:    "undefined-reference",
		Message:     `annotation "two" references a non-existent definition`,
		Severity:    config.SeverityWarning,
		FilePath:    "doc.md",
		StartLine:   1,
		StartColumn: 5,
		EndLine:     1,
		EndColumn:   17,
		Suggestion:  "Add a definition block starting with [two] {",
	}

	t.Run("without context", func(t *testing.T) {
		t.Parallel()
		out := styles.FormatDiagnostic(diag, "", config.RuleFormatID)
		assert.Equal(t,
			"  doc.md:1:5  warning  annotation \"two\" references a non-existent definition  (AN002)\n"+
				"      hint: Add a definition block starting with [two] {\n",
			out)
	})

	t.Run("marker under span", func(t *testing.T) {
		t.Parallel()
		out := styles.FormatDiagnostic(diag, "See {a}[one two].", config.RuleFormatCombined)
		assert.Contains(t, out, "(AN002/undefined-reference)")
		assert.Contains(t, out, "      See {a}[one two].\n      "+"    ^~~~~~~~~~~~\n")
	})

	t.Run("multi-line range marks rest of line", func(t *testing.T) {
		t.Parallel()
		def := *diag
		def.StartLine, def.StartColumn, def.EndLine, def.EndColumn = 3, 1, 5, 2
		out := styles.FormatDiagnostic(&def, "[one] {", config.RuleFormatName)
		assert.Contains(t, out, "(undefined-reference)")
		assert.Contains(t, out, "      ^~~~~~~\n")
	})
}

func TestFormatSourceContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "          x {a}[b]\n            ^~~~~~\n", styles.FormatSourceContext("\tx {a}[b]", 4, 6))
	assert.Equal(t, "      é {a}[b]\n        ^\n", styles.FormatSourceContext("é {a}[b]", 4, 1))
	assert.Equal(t, "      line\n", styles.FormatSourceContext("line", 0, 3))
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "error", styles.FormatSeverity(config.SeverityError))
	assert.Equal(t, "warning", styles.FormatSeverity(config.SeverityWarning))
	assert.Equal(t, "info", styles.FormatSeverity(config.SeverityInfo))
	assert.Equal(t, "custom", styles.FormatSeverity("custom"))
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "doc.md (1 issue)", styles.FormatFileHeader("doc.md", 1))
	assert.Equal(t, "doc.md (3 issues)", styles.FormatFileHeader("doc.md", 3))
}
