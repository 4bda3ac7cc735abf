package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/mdannotate/internal/ui/pretty"
	"github.com/yaklabco/mdannotate/pkg/fix"
	"github.com/yaklabco/mdannotate/pkg/runner"
)

// DiffReporter writes the pending formatting changes of a dry run as
// git-style unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewDiffReporter creates a DiffReporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// Report implements Reporter. It returns the number of files with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	if result == nil {
		return 0, nil
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var files, additions, deletions int
	for _, file := range result.Files {
		path := DisplayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			fmt.Fprintf(bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.Error.Render(file.Error.Error()))
			continue
		}

		pr := file.Result
		if pr == nil {
			continue
		}
		if pr.Skipped {
			fmt.Fprintf(bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.Warning.Render(pr.Summary()))
			continue
		}
		if !pr.Diff.HasChanges() {
			continue
		}

		files++
		additions += pr.Diff.Additions
		deletions += pr.Diff.Deletions
		r.writeDiff(bw, path, pr.Diff)
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeTotals(bw, files, additions, deletions)
	}
	return files, nil
}

func (r *DiffReporter) writeDiff(w io.Writer, path string, diff *fix.Diff) {
	path = strings.TrimPrefix(path, "/")
	fmt.Fprintln(w, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(w, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(w, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(w, r.styles.DiffHunk.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount)))
		for _, line := range hunk.Lines {
			switch line.Kind {
			case fix.DiffLineAdd:
				fmt.Fprintln(w, r.styles.DiffAdd.Render("+"+line.Content))
			case fix.DiffLineRemove:
				fmt.Fprintln(w, r.styles.DiffRemove.Render("-"+line.Content))
			default:
				fmt.Fprintln(w, r.styles.DiffContext.Render(" "+line.Content))
			}
		}
	}
	fmt.Fprintln(w)
}

func (r *DiffReporter) writeTotals(w io.Writer, files, additions, deletions int) {
	parts := []string{plural(files, "file") + " changed"}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(plural(additions, "insertion")+"(+)"))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(plural(deletions, "deletion")+"(-)"))
	}
	fmt.Fprintln(w, strings.Join(parts, ", "))
}

// plural returns "n word" with an s appended unless n is one.
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
