package rules

import (
	"fmt"

	"github.com/yaklabco/mdannotate/pkg/annotation"
	"github.com/yaklabco/mdannotate/pkg/lint"
)

// DuplicateDefinitionRule reports definitions that reuse an identifier
// already defined earlier in the document (AN001). The first definition
// wins.
type DuplicateDefinitionRule struct {
	lint.BaseRule
}

// NewDuplicateDefinitionRule creates the AN001 rule.
func NewDuplicateDefinitionRule() *DuplicateDefinitionRule {
	return &DuplicateDefinitionRule{
		BaseRule: lint.NewBaseRule(
			"AN001",
			"duplicate-definition",
			"Each annotation identifier should be defined once",
			[]string{"definitions", "references"},
			false,
		),
	}
}

// Apply reports every definition after the first for an identifier.
func (r *DuplicateDefinitionRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Doc == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, w := range ctx.WarningsOf(annotation.WarnDuplicateDefinition) {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		start, end := warningRange(ctx.Doc, w)
		builder := lint.NewDiagnostic(r.ID(), ctx.Doc, start, end, w.Message)
		if first := ctx.Doc.DefinitionFor(w.ID); first != nil {
			line, _ := ctx.Doc.LineAt(first.Start)
			builder.WithSuggestion(fmt.Sprintf("Merge into the definition on line %d or rename one of them", line))
		}
		diags = append(diags, builder.Build())
	}
	return diags, nil
}

// UndefinedReferenceRule reports span identifiers with no definition in
// the document (AN002).
type UndefinedReferenceRule struct {
	lint.BaseRule
}

// NewUndefinedReferenceRule creates the AN002 rule.
func NewUndefinedReferenceRule() *UndefinedReferenceRule {
	return &UndefinedReferenceRule{
		BaseRule: lint.NewBaseRule(
			"AN002",
			"undefined-reference",
			"Annotation spans should only reference defined identifiers",
			[]string{"spans", "references"},
			false,
		),
	}
}

// Apply reports one diagnostic per missing identifier of each span.
func (r *UndefinedReferenceRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Doc == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, w := range ctx.WarningsOf(annotation.WarnUndefinedReference) {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		start, end := warningRange(ctx.Doc, w)
		diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.Doc, start, end, w.Message).
			WithSuggestion(fmt.Sprintf("Add a definition block starting with [%s] {", w.ID)).
			Build())
	}
	return diags, nil
}

// UnusedDefinitionRule reports definitions that no span references
// (AN004). It is off unless enabled or report_unused is set.
type UnusedDefinitionRule struct {
	lint.BaseRule
}

// NewUnusedDefinitionRule creates the AN004 rule.
func NewUnusedDefinitionRule() *UnusedDefinitionRule {
	return &UnusedDefinitionRule{
		BaseRule: lint.NewOptInRule(
			"AN004",
			"unused-definition",
			"Annotation definitions should be referenced by at least one span",
			[]string{"definitions", "references"},
			false,
		),
	}
}

// Apply reports each unreferenced definition.
func (r *UnusedDefinitionRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Doc == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, w := range ctx.WarningsOf(annotation.WarnUnusedDefinition) {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		start, end := warningRange(ctx.Doc, w)
		diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.Doc, start, end, w.Message).
			WithSuggestion("Remove the definition or reference it from a span").
			Build())
	}
	return diags, nil
}
