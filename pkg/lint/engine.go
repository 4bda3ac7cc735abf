package lint

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/document"
	"github.com/yaklabco/mdannotate/pkg/fix"
)

// FileResult holds the outcome of linting one file.
type FileResult struct {
	// Doc is the parsed document.
	Doc *document.Document

	// Diagnostics are sorted by position.
	Diagnostics []Diagnostic

	// Edits are validated, sorted and non-overlapping. Empty unless fixing
	// was requested.
	Edits []fix.TextEdit

	// SkippedEdits overlapped an earlier edit and were left for a later pass.
	SkippedEdits []fix.TextEdit

	// EditConflicts is true if any edits were skipped or invalid.
	EditConflicts bool

	// RuleErrors maps rule IDs to internal rule failures.
	RuleErrors map[string]error
}

// HasIssues reports whether any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasFixes reports whether edits are available.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// FixableCount returns the number of diagnostics carrying edits.
func (fr *FileResult) FixableCount() int {
	count := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].HasFix() {
			count++
		}
	}
	return count
}

// CountBySeverity returns the number of diagnostics at severity.
func (fr *FileResult) CountBySeverity(severity config.Severity) int {
	count := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].Severity == severity {
			count++
		}
	}
	return count
}

// Engine parses documents and runs the resolved rules over them.
type Engine struct {
	Parser   Parser
	Registry *Registry
}

// NewEngine creates an Engine.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// LintFile parses content and runs every enabled rule over it.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	doc, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	result := &FileResult{
		Doc:        doc,
		RuleErrors: make(map[string]error),
	}

	// One validator run serves every rule.
	shared := NewRuleContext(ctx, doc, cfg, nil)

	var allEdits []fix.TextEdit
	for _, rr := range ResolveRules(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("linting cancelled: %w", err)
		}

		ruleCtx := NewRuleContext(ctx, doc, cfg, rr.Config)
		ruleCtx.Registry = e.Registry
		ruleCtx.shareWarnings(shared)

		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for i := range diags {
			diags[i].Severity = rr.Severity
			if diags[i].FilePath == "" {
				diags[i].FilePath = path
			}
			if diags[i].RuleName == "" {
				diags[i].RuleName = rr.Rule.Name()
			}
			if rr.AutoFix {
				allEdits = append(allEdits, diags[i].FixEdits...)
			}
		}
		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	SortDiagnostics(result.Diagnostics)

	if len(allEdits) > 0 {
		accepted, skipped, err := fix.PrepareEditsFiltered(allEdits, len(content))
		if err != nil {
			result.EditConflicts = true
		} else {
			result.Edits = accepted
			result.SkippedEdits = skipped
			result.EditConflicts = len(skipped) > 0
		}
	}

	return result, nil
}

// SortDiagnostics orders diagnostics by position, then rule ID. Validator
// order is not significant, so reports sort for stable output.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.StartLine, b.StartLine),
			cmp.Compare(a.StartColumn, b.StartColumn),
			cmp.Compare(a.RuleID, b.RuleID),
		)
	})
}
