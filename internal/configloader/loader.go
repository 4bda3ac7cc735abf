// Package configloader resolves the effective mdannotate configuration.
// It discovers config files in XDG and project locations, merges them in
// precedence order, applies MDANNOTATE_* environment overrides and
// validates the result.
package configloader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/lint"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (MDANNOTATE_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.mdannotate.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/mdannotate/config.yaml)
//  6. System config (/etc/mdannotate/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result := &LoadResult{Paths: paths}

	cfg := config.NewConfig()

	sources := []struct {
		label string
		path  string
		skip  bool
	}{
		{label: "system", path: paths.System, skip: opts.IgnoreSystemConfig},
		{label: "user", path: paths.User, skip: opts.IgnoreUserConfig},
		{label: "project", path: paths.Project, skip: opts.IgnoreProjectConfig || opts.ExplicitPath != ""},
		{label: "explicit", path: opts.ExplicitPath},
	}
	for _, src := range sources {
		if src.skip || src.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(src.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", src.label, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, src.path)
	}
	if opts.ExplicitPath != "" {
		result.Paths.Explicit = opts.ExplicitPath
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	normalizeRuleKeys(cfg, lint.DefaultRegistry, result)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file. File-level
// validation errors carry the file path.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg := &config.Config{}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if validation := ValidateWithFile(cfg, path); !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig)
	}
	return cfg, nil
}

// WriteConfig writes content to path, refusing to overwrite an existing
// file unless force is set.
func WriteConfig(path string, content []byte, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// normalizeRuleKeys rewrites rule names to canonical IDs so that
// "undefined-reference" and "AN002" configure the same rule. When both
// forms are present the later key in sorted order wins and a warning is
// recorded.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seen := make(map[string]string)

	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		ruleCfg := cfg.Rules[key]
		rule, found := registry.Get(key)
		if !found {
			// Validation warns about unknown keys.
			normalized[key] = ruleCfg
			continue
		}

		id := rule.ID()
		if previous, dup := seen[id]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using last value",
					previous, key, id))
		}
		seen[id] = key
		normalized[id] = ruleCfg
	}

	cfg.Rules = normalized
}
