package lint_test

import (
	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/lint"
	"github.com/yaklabco/mdannotate/pkg/lint/rules"
	"github.com/yaklabco/mdannotate/pkg/parser/goldmark"
)

// newTestEngine returns an engine with the built-in rules in a private
// registry.
func newTestEngine() *lint.Engine {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	return lint.NewEngine(goldmark.New(goldmark.FlavorCommonMark), registry)
}

// stubRule returns fixed diagnostics.
type stubRule struct {
	lint.BaseRule
	diags []lint.Diagnostic
	err   error
}

func newStubRule(id, name string, fixable bool, diags []lint.Diagnostic, err error) *stubRule {
	return &stubRule{
		BaseRule: lint.NewBaseRule(id, name, "stub", nil, fixable),
		diags:    diags,
		err:      err,
	}
}

func (r *stubRule) Apply(_ *lint.RuleContext) ([]lint.Diagnostic, error) {
	out := make([]lint.Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out, r.err
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func fixConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Fix = true
	return cfg
}
