package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/lint"
	"github.com/yaklabco/mdannotate/pkg/runner"
)

// JSONVersion is the version of the JSON report layout.
const JSONVersion = "1"

// JSONOutput is the top-level JSON document.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is one file's entry.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Spans       int              `json:"spans"`
	Definitions int              `json:"definitions"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Formatted   bool             `json:"formatted,omitempty"`
	Skipped     string           `json:"skipped,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic is one diagnostic. Positions are 1-based.
type JSONDiagnostic struct {
	RuleID      string    `json:"ruleId"`
	RuleName    string    `json:"ruleName"`
	Severity    string    `json:"severity"`
	Message     string    `json:"message"`
	StartLine   int       `json:"startLine"`
	StartColumn int       `json:"startColumn"`
	EndLine     int       `json:"endLine"`
	EndColumn   int       `json:"endColumn"`
	Suggestion  string    `json:"suggestion,omitempty"`
	Fixes       []JSONFix `json:"fixes,omitempty"`
}

// JSONFix is a byte-offset replacement.
type JSONFix struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// JSONSummary holds the run totals.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesFormatted  int            `json:"filesFormatted"`
	FilesErrored    int            `json:"filesErrored"`
	Spans           int            `json:"spans"`
	Definitions     int            `json:"definitions"`
	Issues          int            `json:"issues"`
	Fixable         int            `json:"fixable"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter writes a JSONOutput document.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a JSONReporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	out := r.build(result)

	enc := json.NewEncoder(bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return out.Summary.Issues, nil
}

func (r *JSONReporter) build(result *runner.Result) *JSONOutput {
	out := &JSONOutput{
		Version: JSONVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: map[string]int{}},
	}
	if result == nil {
		return out
	}

	stats := result.Stats
	out.Summary.FilesChecked = stats.FilesProcessed
	out.Summary.FilesWithIssues = stats.FilesWithIssues
	out.Summary.FilesFormatted = stats.FilesFormatted
	out.Summary.FilesErrored = stats.FilesErrored
	out.Summary.Spans = stats.Spans
	out.Summary.Definitions = stats.Definitions
	out.Summary.Issues = stats.Diagnostics
	out.Summary.Fixable = stats.DiagnosticsFixable
	for sev, n := range stats.DiagnosticsBySeverity {
		out.Summary.BySeverity[string(sev)] = n
	}

	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:        DisplayPath(file.Path, r.opts.WorkingDir),
			Diagnostics: []JSONDiagnostic{},
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}

		if pr := file.Result; pr != nil {
			entry.Formatted = pr.Written
			if pr.Skipped {
				entry.Skipped = pr.SkipReason
			}
			if pr.FileResult != nil {
				if pr.Doc != nil {
					entry.Spans = len(pr.Doc.Spans)
					entry.Definitions = len(pr.Doc.Definitions)
				}
				for i := range pr.Diagnostics {
					entry.Diagnostics = append(entry.Diagnostics, newJSONDiagnostic(&pr.Diagnostics[i]))
				}
			}
		}

		out.Files = append(out.Files, entry)
	}
	return out
}

func newJSONDiagnostic(d *lint.Diagnostic) JSONDiagnostic {
	severity := d.Severity
	if severity == "" {
		severity = config.SeverityWarning
	}

	out := JSONDiagnostic{
		RuleID:      d.RuleID,
		RuleName:    d.RuleName,
		Severity:    string(severity),
		Message:     d.Message,
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
		Suggestion:  d.Suggestion,
	}
	for _, edit := range d.FixEdits {
		out.Fixes = append(out.Fixes, JSONFix{
			StartOffset: edit.StartOffset,
			EndOffset:   edit.EndOffset,
			NewText:     edit.NewText,
		})
	}
	return out
}
