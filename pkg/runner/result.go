package runner

import (
	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/lint"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	Path string

	// Result is nil when Error is set.
	Result *lint.PipelineResult

	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesWithIssues int

	// FilesSkipped had a fix computed but not written, because the file
	// changed on disk or the fix failed verification.
	FilesSkipped int

	// FilesFormatted were rewritten on disk.
	FilesFormatted int

	// FilesUnformatted have pending changes that were not written, as in
	// dry-run mode.
	FilesUnformatted int

	Spans       int
	Definitions int

	Diagnostics           int
	DiagnosticsFixable    int
	DiagnosticsBySeverity map[config.Severity]int

	// EditsApplied counts the edits applied across all files.
	EditsApplied int
}

// Result is the outcome of a run. Files are ordered by path.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasIssues reports whether any diagnostic was produced.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.Diagnostics > 0
}

// HasErrors reports whether any diagnostic has error severity or any file
// could not be processed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || r.Stats.DiagnosticsBySeverity[config.SeverityError] > 0
}

// NeedsFormatting reports whether some file has unwritten formatting
// changes.
func (r *Result) NeedsFormatting() bool {
	return r != nil && r.Stats.FilesUnformatted > 0
}

func newResult(files int) *Result {
	return &Result{
		Files: make([]FileOutcome, 0, files),
		Stats: Stats{
			FilesDiscovered:       files,
			DiagnosticsBySeverity: make(map[config.Severity]int),
		},
	}
}

func (r *Result) add(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	pr := outcome.Result
	if pr == nil {
		return
	}

	r.Stats.FilesProcessed++
	switch {
	case pr.Skipped:
		r.Stats.FilesSkipped++
	case pr.Written:
		r.Stats.FilesFormatted++
	case pr.Modified:
		r.Stats.FilesUnformatted++
	}
	r.Stats.EditsApplied += pr.TotalEditsApplied

	if pr.FileResult == nil {
		return
	}
	if pr.Doc != nil {
		r.Stats.Spans += len(pr.Doc.Spans)
		r.Stats.Definitions += len(pr.Doc.Definitions)
	}

	r.Stats.Diagnostics += len(pr.Diagnostics)
	r.Stats.DiagnosticsFixable += pr.FixableCount()
	if len(pr.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, d := range pr.Diagnostics {
		severity := d.Severity
		if severity == "" {
			severity = config.SeverityWarning
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
