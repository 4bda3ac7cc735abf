package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/lint"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.AN002.severity").
	Field string

	// Value is the invalid value.
	Value any

	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.fail("flavor", cfg.Flavor,
			"invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}

	if cfg.SeverityDefault != "" && !config.Severity(cfg.SeverityDefault).IsValid() {
		result.fail("severity_default", cfg.SeverityDefault,
			"invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format,
			"invalid format %q; must be one of: text, json, diff, summary", cfg.Format)
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	validateRules(cfg, result)

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}

func validateRules(cfg *config.Config, result *ValidationResult) {
	for key, ruleCfg := range cfg.Rules {
		if _, exists := lint.DefaultRegistry.Get(key); !exists {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "rules." + key,
				Value:   key,
				Message: fmt.Sprintf("unknown rule %q; it will be ignored", key),
			})
		}

		if ruleCfg.Severity != nil && !config.Severity(*ruleCfg.Severity).IsValid() {
			result.fail("rules."+key+".severity", *ruleCfg.Severity,
				"invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity)
		}
	}

	for _, list := range [][]string{cfg.EnableRules, cfg.DisableRules, cfg.FixRules} {
		for _, key := range list {
			if _, exists := lint.DefaultRegistry.Get(key); !exists {
				result.fail("rules", key, "unknown rule %q", key)
			}
		}
	}
}

// ValidateWithFile validates cfg and stamps filePath on every finding.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
