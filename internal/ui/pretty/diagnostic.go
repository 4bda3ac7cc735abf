package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/lint"
)

const (
	contextIndent = "      "
	tab           = "    "
)

// FormatDiagnostic renders one diagnostic as
//
//	path:line:col  severity  message  (rule)
//
// followed, when sourceLine is set, by the line and a marker under the
// annotation, and by the suggestion.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, sourceLine string, ruleFormat config.RuleFormat) string {
	var b strings.Builder

	rule := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)
	fmt.Fprintf(&b, "  %s:%d:%d  %s  %s  %s\n",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+rule+")"),
	)

	if sourceLine != "" {
		b.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn, markerWidth(diag, sourceLine)))
	}

	if diag.Suggestion != "" {
		b.WriteString(contextIndent + s.Dim.Render("hint:") + " " + s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return b.String()
}

// markerWidth is the number of columns to underline: the diagnostic range
// when it ends on its start line, otherwise the rest of the line.
func markerWidth(diag *lint.Diagnostic, line string) int {
	if diag.StartColumn <= 0 {
		return 0
	}
	end := len(line) + 1
	if diag.EndLine == diag.StartLine && diag.EndColumn > diag.StartColumn {
		end = min(diag.EndColumn, end)
	}
	return max(end-diag.StartColumn, 1)
}

// FormatSeverity returns the styled severity name.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext renders line with width markers starting at the
// 1-based byte column. Tabs expand to tabWidth spaces, matching lipgloss,
// and multi-byte characters count once so the marker lines up.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	var b strings.Builder
	b.WriteString(contextIndent + s.SourceLine.Render(strings.ReplaceAll(line, "\t", tab)) + "\n")

	if column <= 0 || width <= 0 {
		return b.String()
	}

	var pad strings.Builder
	for i := 0; i < column-1 && i < len(line); i++ {
		switch {
		case line[i] == '\t':
			pad.WriteString(tab)
		case utf8.RuneStart(line[i]):
			pad.WriteByte(' ')
		}
	}
	marker := "^" + strings.Repeat("~", width-1)
	b.WriteString(contextIndent + pad.String() + s.Marker.Render(marker) + "\n")
	return b.String()
}

// FormatFileHeader renders the heading of a file's diagnostics.
func (s *Styles) FormatFileHeader(path string, issues int) string {
	word := "issues"
	if issues == 1 {
		word = "issue"
	}
	return s.FilePath.Render(path) + s.Dim.Render(fmt.Sprintf(" (%d %s)", issues, word))
}
