package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/mdannotate/pkg/config"
)

// envVarPrefix is the prefix for all mdannotate environment variables.
const envVarPrefix = "MDANNOTATE_"

// envVar describes one environment override.
type envVar struct {
	suffix string
	help   string
	apply  func(cfg *config.Config, value string) error
}

// envVars lists the supported overrides in documentation order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{
		suffix: "FLAVOR",
		help:   "Markdown flavor: commonmark or gfm",
		apply: func(cfg *config.Config, value string) error {
			cfg.Flavor = config.Flavor(value)
			return nil
		},
	},
	{
		suffix: "SEVERITY_DEFAULT",
		help:   "Default severity: error, warning, or info",
		apply: func(cfg *config.Config, value string) error {
			cfg.SeverityDefault = value
			return nil
		},
	},
	{
		suffix: "JOBS",
		help:   "Number of parallel workers (0 = auto)",
		apply: func(cfg *config.Config, value string) error {
			jobs, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid integer %q", value)
			}
			cfg.Jobs = jobs
			return nil
		},
	},
	{
		suffix: "IGNORE",
		help:   "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, value string) error {
			cfg.Ignore = parseSliceValue(value)
			return nil
		},
	},
	{
		suffix: "REPORT_UNUSED",
		help:   "Report definitions no span references: true or false",
		apply: func(cfg *config.Config, value string) error {
			b, err := parseBool(value)
			cfg.ReportUnused = b
			return err
		},
	},
	{
		suffix: "BACKUPS",
		help:   "Back up files before fmt --write: true or false",
		apply: func(cfg *config.Config, value string) error {
			b, err := parseBool(value)
			cfg.Backups.Enabled = b
			return err
		},
	},
}

// LoadFromEnv applies MDANNOTATE_* environment overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, ev := range envVars {
		name := envVarPrefix + ev.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func parseBool(value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
	}
	return b, nil
}

// parseSliceValue splits a comma-separated list, trimming each element and
// dropping empties.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// EnvVarHelp returns the supported environment variables and their
// descriptions, in documentation order.
func EnvVarHelp() [][2]string {
	help := make([][2]string, 0, len(envVars))
	for _, ev := range envVars {
		help = append(help, [2]string{envVarPrefix + ev.suffix, ev.help})
	}
	return help
}
