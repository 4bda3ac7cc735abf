package lint

import (
	"context"

	"github.com/yaklabco/mdannotate/pkg/annotation"
	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/document"
	"github.com/yaklabco/mdannotate/pkg/fix"
)

// RuleContext carries what a rule needs to check one document. It is
// created per rule invocation and holds Ctx as a field so Rule has a
// single Apply method.
type RuleContext struct {
	Ctx context.Context

	// Doc is the parsed document.
	Doc *document.Document

	// Config is the resolved configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Builder accumulates fix edits.
	Builder *fix.EditBuilder

	// Registry is used for rule name lookups.
	Registry *Registry

	// warnings is shared by every rule run over the same document.
	warnings *warningCache
}

// warningCache runs the validator once per document.
type warningCache struct {
	collected bool
	all       []annotation.Warning
}

// NewRuleContext creates a RuleContext for doc.
func NewRuleContext(
	ctx context.Context,
	doc *document.Document,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	return &RuleContext{
		Ctx:        ctx,
		Doc:        doc,
		Config:     cfg,
		RuleConfig: ruleCfg,
		Builder:    fix.NewEditBuilder(),
		warnings:   &warningCache{},
	}
}

// Cancelled reports whether Ctx is done.
func (rc *RuleContext) Cancelled() bool {
	return rc.Ctx.Err() != nil
}

// Warnings returns every validator warning for the document, including
// unused definitions, computing them on first use.
func (rc *RuleContext) Warnings() []annotation.Warning {
	if rc.warnings == nil {
		rc.warnings = &warningCache{}
	}
	if !rc.warnings.collected {
		var sink annotation.Collector
		if rc.Doc != nil {
			annotation.Validate(rc.Doc.Definitions, rc.Doc.Spans, &sink, annotation.WithUnusedDefinitions())
		}
		rc.warnings.all = sink.Warnings()
		rc.warnings.collected = true
	}
	return rc.warnings.all
}

// WarningsOf returns the validator warnings of one kind in source order.
func (rc *RuleContext) WarningsOf(kind annotation.WarningKind) []annotation.Warning {
	var out []annotation.Warning
	for _, w := range rc.Warnings() {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

// shareWarnings makes rc reuse the warning cache of other.
func (rc *RuleContext) shareWarnings(other *RuleContext) {
	rc.warnings = other.warnings
}
