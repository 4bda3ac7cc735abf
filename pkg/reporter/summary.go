package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/mdannotate/internal/ui/pretty"
	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/runner"
)

const (
	numColWidth   = 8
	minNameWidth  = 20
	maxTableWidth = 100
)

// SummaryReporter writes per-rule and per-file issue tables sized to the
// terminal.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
}

// NewSummaryReporter creates a SummaryReporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		width:  min(pretty.TerminalWidth(opts.Writer), maxTableWidth),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if !result.HasIssues() {
		var stats runner.Stats
		if result != nil {
			stats = result.Stats
		}
		fmt.Fprint(bw, r.styles.FormatCheckSummary(stats))
		return 0, nil
	}

	rules, files := aggregate(result, r.opts.WorkingDir)

	ruleRows := make([]summaryRow, 0, len(rules))
	for _, rt := range rules {
		name := config.FormatRuleID(r.opts.RuleFormat, rt.RuleID, rt.RuleName)
		fixable := ""
		if rt.Fixable {
			fixable = "yes"
		}
		ruleRows = append(ruleRows, summaryRow{name: name, tally: rt.tally, extra: fixable})
	}
	r.writeTable(bw, "Rules", "Fixable", ruleRows)
	fmt.Fprintln(bw)

	fileRows := make([]summaryRow, 0, len(files))
	for _, ft := range files {
		fileRows = append(fileRows, summaryRow{name: ft.Path, tally: ft.tally})
	}
	r.writeTable(bw, "Files", "", fileRows)
	fmt.Fprintln(bw)

	fmt.Fprint(bw, r.styles.Bold.Render("Total: ")+r.styles.FormatCheckSummary(result.Stats))
	return result.Stats.Diagnostics, nil
}

type summaryRow struct {
	name  string
	tally tally
	extra string
}

func (r *SummaryReporter) writeTable(w io.Writer, title, extra string, rows []summaryRow) {
	cols := []string{"Issues", "Errors", "Warnings"}
	if extra != "" {
		cols = append(cols, extra)
	}
	nameWidth := max(r.width-len(cols)*(numColWidth+1), minNameWidth)
	rule := r.styles.TableSeparator.Render(strings.Repeat("─", nameWidth+len(cols)*(numColWidth+1)))

	header := make([]string, 0, len(cols)+1)
	header = append(header, r.styles.TableHeader.Render(padRight(title, nameWidth)))
	for _, c := range cols {
		header = append(header, r.styles.TableHeader.Render(padLeft(c, numColWidth)))
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, strings.Join(header, " "))
	fmt.Fprintln(w, rule)

	for _, row := range rows {
		name := truncateLeft(row.name, nameWidth)
		styled := padRight(name, nameWidth)
		switch {
		case row.tally.Errors > 0:
			styled = r.styles.TableErrorRow.Render(styled)
		case row.tally.Warnings > 0:
			styled = r.styles.TableWarnRow.Render(styled)
		}

		cells := []string{
			styled,
			padLeft(strconv.Itoa(row.tally.Issues), numColWidth),
			padLeft(strconv.Itoa(row.tally.Errors), numColWidth),
			padLeft(strconv.Itoa(row.tally.Warnings), numColWidth),
		}
		if extra != "" {
			cells = append(cells, r.styles.Success.Render(padLeft(row.extra, numColWidth)))
		}
		fmt.Fprintln(w, strings.Join(cells, " "))
	}
}

// Padding happens before styling so escape codes do not count.
func padRight(s string, width int) string {
	return s + strings.Repeat(" ", max(width-len(s), 0))
}

func padLeft(s string, width int) string {
	return strings.Repeat(" ", max(width-len(s), 0)) + s
}

// truncateLeft keeps the end of s, where file names live.
func truncateLeft(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return "…" + s[len(s)-width+1:]
}
