package rules

import (
	"fmt"

	"github.com/yaklabco/mdannotate/pkg/annotation"
	"github.com/yaklabco/mdannotate/pkg/lint"
)

// MalformedDataRule reports definitions whose body is not a YAML mapping
// (AN003). Such definitions are still recognised and resolve references,
// but carry empty data.
type MalformedDataRule struct {
	lint.BaseRule
}

// NewMalformedDataRule creates the AN003 rule.
func NewMalformedDataRule() *MalformedDataRule {
	return &MalformedDataRule{
		BaseRule: lint.NewBaseRule(
			"AN003",
			"malformed-data",
			"Annotation definition bodies should be valid YAML mappings",
			[]string{"definitions", "data"},
			false,
		),
	}
}

// Apply surfaces the data parser error of each malformed definition.
func (r *MalformedDataRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Doc == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, w := range ctx.WarningsOf(annotation.WarnMalformedData) {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		start, end := warningRange(ctx.Doc, w)
		diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.Doc, start, end, w.Message).
			WithSuggestion("Write the body as key: value pairs indented under the identifier").
			Build())
	}
	return diags, nil
}
