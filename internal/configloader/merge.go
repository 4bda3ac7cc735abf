package configloader

import (
	"maps"

	"github.com/yaklabco/mdannotate/pkg/config"
)

// merge combines two configurations, with override taking precedence:
//   - scalars overwrite when override holds a non-zero value
//   - rule maps merge per rule and per field
//   - slices replace the base slice when override's is non-nil
//
// Booleans can only be switched on by a higher layer; a config file cannot
// unset report_unused once a lower layer set it. Environment variables can.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.SeverityDefault != "" {
		result.SeverityDefault = override.SeverityDefault
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.RuleFormat != "" {
		result.RuleFormat = override.RuleFormat
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.ReportUnused {
		result.ReportUnused = true
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}
	if override.Fix {
		result.Fix = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.Strict {
		result.Strict = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	result.Rules = mergeRules(base.Rules, override.Rules)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.EnableRules != nil {
		result.EnableRules = override.EnableRules
	}
	if override.DisableRules != nil {
		result.DisableRules = override.DisableRules
	}
	if override.FixRules != nil {
		result.FixRules = override.FixRules
	}

	return &result
}

// mergeRules merges rule maps into a fresh map; neither input is modified.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)
	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeRuleConfig(existing, val)
		} else {
			result[key] = val
		}
	}
	return result
}

func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base
	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	if override.AutoFix != nil {
		result.AutoFix = override.AutoFix
	}
	return result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}
	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
