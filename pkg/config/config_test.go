package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdannotate/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.Equal(t, "warning", cfg.SeverityDefault)
	assert.NotNil(t, cfg.Rules)
	assert.False(t, cfg.ReportUnused)
	assert.Equal(t, config.FormatText, cfg.Format)
}

func TestValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FlavorGFM.IsValid())
	assert.False(t, config.Flavor("markdown").IsValid())
	assert.True(t, config.SeverityInfo.IsValid())
	assert.False(t, config.Severity("fatal").IsValid())
	assert.True(t, config.FormatDiff.IsValid())
	assert.False(t, config.OutputFormat("xml").IsValid())
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("full file", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML([]byte(`
flavor: gfm
severity_default: error
report_unused: true
ignore:
  - "vendor/**"
rules:
  AN002:
    severity: info
  canonical-format:
    enabled: false
backups:
  enabled: true
`))
		require.NoError(t, err)
		assert.Equal(t, config.FlavorGFM, cfg.Flavor)
		assert.Equal(t, "error", cfg.SeverityDefault)
		assert.True(t, cfg.ReportUnused)
		assert.True(t, cfg.Backups.Enabled)
		assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
		require.Contains(t, cfg.Rules, "AN002")
		assert.Equal(t, "info", *cfg.Rules["AN002"].Severity)
		assert.False(t, *cfg.Rules["canonical-format"].Enabled)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML(nil)
		require.NoError(t, err)
		assert.NotNil(t, cfg.Rules)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		_, err := config.FromYAML([]byte("flavour: gfm\n"))
		require.Error(t, err)
	})
}

func TestToYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	enabled := true
	cfg := config.NewConfig()
	cfg.Flavor = config.FlavorGFM
	cfg.ReportUnused = true
	cfg.Rules["AN004"] = config.RuleConfig{Enabled: &enabled}
	cfg.Jobs = 8

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "jobs")

	back, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Flavor, back.Flavor)
	assert.True(t, back.ReportUnused)
	assert.True(t, *back.Rules["AN004"].Enabled)
	assert.Zero(t, back.Jobs)
}

func TestClone(t *testing.T) {
	t.Parallel()

	assert.Nil(t, (*config.Config)(nil).Clone())

	severity := "error"
	original := config.NewConfig()
	original.Rules["AN001"] = config.RuleConfig{Severity: &severity}
	original.Ignore = []string{"a"}
	original.EnableRules = []string{"AN004"}
	original.Strict = true

	clone := original.Clone()
	*clone.Rules["AN001"].Severity = "info"
	clone.Ignore[0] = "b"
	clone.EnableRules[0] = "AN005"

	assert.Equal(t, "error", *original.Rules["AN001"].Severity)
	assert.Equal(t, "a", original.Ignore[0])
	assert.Equal(t, "AN004", original.EnableRules[0])
	assert.True(t, clone.Strict)
}

func TestFormatRuleID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "AN002", config.FormatRuleID(config.RuleFormatID, "AN002", "undefined-reference"))
	assert.Equal(t, "undefined-reference", config.FormatRuleID(config.RuleFormatName, "AN002", "undefined-reference"))
	assert.Equal(t, "AN002/undefined-reference", config.FormatRuleID(config.RuleFormatCombined, "AN002", "undefined-reference"))
	assert.Equal(t, "AN002", config.FormatRuleID(config.RuleFormatName, "AN002", ""))
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	minimal := config.GenerateTemplate(config.TemplateOptions{})
	cfg, err := config.FromYAML(minimal)
	require.NoError(t, err, "minimal template must parse")
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)

	full := config.GenerateTemplate(config.TemplateOptions{
		Full: true,
		Rules: []config.RuleInfo{
			{ID: "AN002", Name: "undefined-reference", Enabled: true, Severity: config.SeverityWarning},
			{ID: "AN001", Name: "duplicate-definition", Enabled: true, Severity: config.SeverityWarning, CanFix: false},
		},
	})
	cfg, err = config.FromYAML(full)
	require.NoError(t, err, "full template must parse")
	assert.Len(t, cfg.Rules, 2)
	assert.Less(t, strings.Index(string(full), "AN001:"), strings.Index(string(full), "AN002:"))
}
