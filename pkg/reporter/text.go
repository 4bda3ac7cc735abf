package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdannotate/internal/ui/pretty"
	"github.com/yaklabco/mdannotate/pkg/runner"
)

// TextReporter writes diagnostics grouped by file, with the offending
// source line and a marker under the annotation.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextReporter creates a TextReporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Dim.Render("No Markdown files found."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}

		path := DisplayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			fmt.Fprintf(bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.Error.Render(file.Error.Error()))
			continue
		}

		pr := file.Result
		if pr == nil || pr.FileResult == nil {
			continue
		}
		if pr.Skipped {
			fmt.Fprintf(bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.Warning.Render(pr.Summary()))
		}
		if len(pr.Diagnostics) == 0 {
			continue
		}

		fmt.Fprintln(bw, r.styles.FormatFileHeader(path, len(pr.Diagnostics)))
		for i := range pr.Diagnostics {
			diag := pr.Diagnostics[i]
			diag.FilePath = path

			var line string
			if r.opts.ShowContext && pr.Doc != nil {
				line = string(pr.Doc.LineContent(diag.StartLine))
			}
			fmt.Fprint(bw, r.styles.FormatDiagnostic(&diag, line, r.opts.RuleFormat))
			total++
		}
		fmt.Fprintln(bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(bw, r.styles.FormatCheckSummary(result.Stats))
	}
	return total, nil
}
