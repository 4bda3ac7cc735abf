package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/mdannotate/pkg/config"
)

const bufWriterSize = 64 * 1024

// Options configures a Reporter.
type Options struct {
	// Writer receives the report. Nil means os.Stdout.
	Writer io.Writer

	Format config.OutputFormat

	// Color is "auto", "always" or "never".
	Color string

	// ShowContext prints the source line under text diagnostics.
	ShowContext bool

	// ShowSummary ends text and diff output with a totals line.
	ShowSummary bool

	// Compact disables JSON indentation.
	Compact bool

	RuleFormat config.RuleFormat

	// WorkingDir makes displayed paths relative when set.
	WorkingDir string
}

// DefaultOptions returns text output to stdout with context and summary.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      config.FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		RuleFormat:  config.RuleFormatName,
	}
}
