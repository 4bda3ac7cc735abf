// Package pretty holds the lipgloss styles and formatting helpers for
// terminal output.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// Styles contains the styles used for CLI output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Marker     lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	Success lipgloss.Style
	Failure lipgloss.Style

	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns coloured styles, or plain ones when colour is off.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newPlainStyles()
	}

	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return &Styles{
		Error:   fg("9").Bold(true),
		Warning: fg("11").Bold(true),
		Info:    fg("12").Bold(true),

		FilePath:   lipgloss.NewStyle().Bold(true),
		RuleID:     fg("8"),
		Message:    lipgloss.NewStyle(),
		Suggestion: fg("10").Italic(true),
		SourceLine: fg("7"),
		Marker:     fg("13"),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    fg("14"),
		DiffAdd:     fg("10"),
		DiffRemove:  fg("9"),
		DiffContext: fg("8"),

		Success: fg("10").Bold(true),
		Failure: fg("9").Bold(true),

		TableHeader:    fg("7").Bold(true),
		TableSeparator: fg("8"),
		TableErrorRow:  fg("9"),
		TableWarnRow:   fg("11"),

		Dim:  fg("8"),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newPlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:          plain,
		Warning:        plain,
		Info:           plain,
		FilePath:       plain,
		RuleID:         plain,
		Message:        plain,
		Suggestion:     plain,
		SourceLine:     plain,
		Marker:         plain,
		DiffHeader:     plain,
		DiffHunk:       plain,
		DiffAdd:        plain,
		DiffRemove:     plain,
		DiffContext:    plain,
		Success:        plain,
		Failure:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		TableErrorRow:  plain,
		TableWarnRow:   plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled resolves a colour mode ("auto", "always" or "never") for
// writer. Auto enables colour for terminals unless NO_COLOR is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TerminalWidth returns the column count of writer when it is a terminal,
// or DefaultWidth.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
