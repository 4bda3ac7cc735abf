package lint

import (
	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/document"
	"github.com/yaklabco/mdannotate/pkg/fix"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts a diagnostic covering the byte range [start, end)
// of doc.
func NewDiagnostic(ruleID string, doc *document.Document, start, end int, message string) *DiagnosticBuilder {
	var path string
	var pos document.SourcePosition
	if doc != nil {
		path = doc.Path
		pos = doc.Position(start, end)
	}
	return NewDiagnosticAt(ruleID, path, pos, message)
}

// NewDiagnosticAt starts a diagnostic at an explicit position.
func NewDiagnosticAt(ruleID, filePath string, pos document.SourcePosition, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:      ruleID,
			Message:     message,
			FilePath:    filePath,
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
		},
	}
}

// WithRuleName sets the rule name.
func (b *DiagnosticBuilder) WithRuleName(name string) *DiagnosticBuilder {
	b.diag.RuleName = name
	return b
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithFix adds every edit accumulated in builder.
func (b *DiagnosticBuilder) WithFix(builder *fix.EditBuilder) *DiagnosticBuilder {
	if builder != nil {
		b.diag.FixEdits = append(b.diag.FixEdits, builder.Edits...)
	}
	return b
}

// WithEdit adds a single fix edit.
func (b *DiagnosticBuilder) WithEdit(edit fix.TextEdit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, edit)
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
