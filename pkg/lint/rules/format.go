package rules

import (
	"fmt"

	"github.com/yaklabco/mdannotate/pkg/fix"
	"github.com/yaklabco/mdannotate/pkg/lint"
)

// CanonicalFormatRule reports spans and definitions that are not written
// in canonical form (AN005). Fixing it is what `mdannotate fmt` does.
//
// Canonical spans have no whitespace around the body or between the
// brackets and identifiers, and identifiers are separated by one space.
// Canonical definitions start at column one, have one space between the
// identifier and the brace, and indent their body by two spaces.
type CanonicalFormatRule struct {
	lint.BaseRule
}

// NewCanonicalFormatRule creates the AN005 rule.
func NewCanonicalFormatRule() *CanonicalFormatRule {
	return &CanonicalFormatRule{
		BaseRule: lint.NewBaseRule(
			"AN005",
			"canonical-format",
			"Annotations should be written in canonical form",
			[]string{"format"},
			true,
		),
	}
}

// Apply emits one fixable diagnostic per non-canonical node.
func (r *CanonicalFormatRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Doc == nil {
		return nil, nil
	}

	spans := fix.CanonicalSpanEdits(ctx.Builder, ctx.Doc)
	fix.CanonicalDefinitionEdits(ctx.Builder, ctx.Doc)

	diags := make([]lint.Diagnostic, 0, ctx.Builder.Len())
	for i, edit := range ctx.Builder.Edits {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		what := "annotation definition"
		if i < spans {
			what = "annotation span"
		}
		diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.Doc, edit.StartOffset, edit.EndOffset,
			what+" is not in canonical form").
			WithSuggestion("Run mdannotate fmt --write").
			WithEdit(edit).
			Build())
	}
	return diags, nil
}
