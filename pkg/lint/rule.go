// Package lint turns annotation warnings into diagnostics. It holds the
// rule registry, the engine that runs rules over a parsed document, and
// the pipeline that reads, fixes and writes files.
package lint

import (
	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/document"
	"github.com/yaklabco/mdannotate/pkg/fix"
)

// Diagnostic is a single issue found in a file.
type Diagnostic struct {
	// RuleID identifies the rule that produced the diagnostic (e.g. "AN002").
	RuleID string

	// RuleName is the human-readable rule name (e.g. "undefined-reference").
	RuleName string

	Message  string
	Severity config.Severity
	FilePath string

	// Positions are 1-based.
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	// Suggestion is an optional human-readable hint.
	Suggestion string

	// FixEdits holds the edits that resolve the issue, if any.
	FixEdits []fix.TextEdit
}

// HasFix reports whether the diagnostic carries fix edits.
func (d *Diagnostic) HasFix() bool {
	return len(d.FixEdits) > 0
}

// SourcePosition returns the diagnostic range.
func (d *Diagnostic) SourcePosition() document.SourcePosition {
	return document.SourcePosition{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
	}
}

// Rule is a check run against a parsed document.
type Rule interface {
	// ID returns the unique identifier (e.g. "AN001").
	ID() string

	// Name returns the kebab-case name.
	Name() string

	Description() string
	DefaultEnabled() bool
	DefaultSeverity() config.Severity
	Tags() []string

	// CanFix reports whether diagnostics from this rule carry edits.
	CanFix() bool

	// Apply returns a diagnostic per violation. An error is returned only
	// for internal failures, including cancellation.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}
