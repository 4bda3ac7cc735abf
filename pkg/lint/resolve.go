package lint

import (
	"slices"

	"github.com/yaklabco/mdannotate/pkg/config"
)

// unusedDefinitionRule is switched on by the report_unused setting.
const unusedDefinitionRule = "AN004"

// ResolvedRule pairs a Rule with its effective settings.
type ResolvedRule struct {
	Rule     Rule
	Enabled  bool
	Severity config.Severity
	AutoFix  bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules returns the enabled rules of registry under cfg.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule
	for _, rule := range registry.Rules() {
		if rr := resolveRule(rule, cfg); rr.Enabled {
			resolved = append(resolved, rr)
		}
	}
	return resolved
}

// resolveRule applies, in increasing precedence: rule defaults,
// severity_default, report_unused, the rules map, then CLI enable and
// disable lists. Rules may be named by ID or name everywhere.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}
	if cfg == nil {
		return rr
	}

	if sev := config.Severity(cfg.SeverityDefault); sev.IsValid() {
		rr.Severity = sev
	}
	if cfg.ReportUnused && rule.ID() == unusedDefinitionRule {
		rr.Enabled = true
	}

	if ruleCfg, ok := lookupRuleConfig(rule, cfg.Rules); ok {
		rr.Config = &ruleCfg
		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && rule.CanFix()
		}
	}

	if names(rule, cfg.EnableRules) {
		rr.Enabled = true
	}
	if names(rule, cfg.DisableRules) {
		rr.Enabled = false
	}

	if len(cfg.FixRules) > 0 {
		rr.AutoFix = rule.CanFix() && names(rule, cfg.FixRules)
	}
	if !cfg.Fix {
		rr.AutoFix = false
	}

	return rr
}

func lookupRuleConfig(rule Rule, rules map[string]config.RuleConfig) (config.RuleConfig, bool) {
	if rc, ok := rules[rule.ID()]; ok {
		return rc, true
	}
	rc, ok := rules[rule.Name()]
	return rc, ok
}

func names(rule Rule, keys []string) bool {
	return slices.Contains(keys, rule.ID()) || slices.Contains(keys, rule.Name())
}
