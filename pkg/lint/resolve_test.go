package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/lint"
	"github.com/yaklabco/mdannotate/pkg/lint/rules"
)

func resolvedIDs(resolved []lint.ResolvedRule) []string {
	ids := make([]string, 0, len(resolved))
	for _, rr := range resolved {
		ids = append(ids, rr.Rule.ID())
	}
	return ids
}

func findResolved(t *testing.T, resolved []lint.ResolvedRule, id string) lint.ResolvedRule {
	t.Helper()
	for _, rr := range resolved {
		if rr.Rule.ID() == id {
			return rr
		}
	}
	require.Failf(t, "rule not resolved", "%s", id)
	return lint.ResolvedRule{}
}

func TestResolveRules(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		resolved := lint.ResolveRules(registry, config.NewConfig())
		assert.Equal(t, []string{"AN001", "AN002", "AN003", "AN005"}, resolvedIDs(resolved))
		for _, rr := range resolved {
			assert.Equal(t, config.SeverityWarning, rr.Severity)
			assert.False(t, rr.AutoFix, "auto-fix needs Fix")
		}
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()
		resolved := lint.ResolveRules(registry, nil)
		assert.Len(t, resolved, 4)
		assert.True(t, findResolved(t, resolved, "AN005").AutoFix)
	})

	t.Run("report unused enables AN004", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.ReportUnused = true
		assert.Contains(t, resolvedIDs(lint.ResolveRules(registry, cfg)), "AN004")
	})

	t.Run("severity default", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.SeverityDefault = "error"
		for _, rr := range lint.ResolveRules(registry, cfg) {
			assert.Equal(t, config.SeverityError, rr.Severity)
		}
	})

	t.Run("rules map by id and name", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.Rules["AN002"] = config.RuleConfig{Severity: strPtr("error")}
		cfg.Rules["canonical-format"] = config.RuleConfig{Enabled: boolPtr(false)}
		cfg.Rules["unused-definition"] = config.RuleConfig{Enabled: boolPtr(true)}

		resolved := lint.ResolveRules(registry, cfg)
		assert.Equal(t, []string{"AN001", "AN002", "AN003", "AN004"}, resolvedIDs(resolved))
		rr := findResolved(t, resolved, "AN002")
		assert.Equal(t, config.SeverityError, rr.Severity)
		require.NotNil(t, rr.Config)
	})

	t.Run("cli enable and disable win", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.Rules["AN001"] = config.RuleConfig{Enabled: boolPtr(true)}
		cfg.DisableRules = []string{"duplicate-definition"}
		cfg.EnableRules = []string{"AN004"}

		ids := resolvedIDs(lint.ResolveRules(registry, cfg))
		assert.NotContains(t, ids, "AN001")
		assert.Contains(t, ids, "AN004")
	})

	t.Run("fix rules filter", func(t *testing.T) {
		t.Parallel()
		cfg := fixConfig()
		cfg.FixRules = []string{"AN002"}
		rr := findResolved(t, lint.ResolveRules(registry, cfg), "AN005")
		assert.False(t, rr.AutoFix)

		cfg.FixRules = []string{"canonical-format"}
		rr = findResolved(t, lint.ResolveRules(registry, cfg), "AN005")
		assert.True(t, rr.AutoFix)
	})

	t.Run("auto_fix false", func(t *testing.T) {
		t.Parallel()
		cfg := fixConfig()
		cfg.Rules["AN005"] = config.RuleConfig{AutoFix: boolPtr(false)}
		rr := findResolved(t, lint.ResolveRules(registry, cfg), "AN005")
		assert.False(t, rr.AutoFix)
	})
}
