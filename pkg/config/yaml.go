package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// yamlIndent matches the indentation of annotation definitions.
const yamlIndent = 2

// ToYAML serializes the persisted part of the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// FromYAML parses a configuration file. Unknown keys are rejected so
// typos surface instead of being silently ignored.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	return cfg, nil
}

// Clone returns a deep copy of the configuration including CLI fields.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Ignore = slices.Clone(c.Ignore)
	clone.EnableRules = slices.Clone(c.EnableRules)
	clone.DisableRules = slices.Clone(c.DisableRules)
	clone.FixRules = slices.Clone(c.FixRules)

	if c.Rules != nil {
		clone.Rules = make(map[string]RuleConfig, len(c.Rules))
		for id, rc := range c.Rules {
			clone.Rules[id] = rc.clone()
		}
	}
	return &clone
}

func (rc RuleConfig) clone() RuleConfig {
	return RuleConfig{
		Enabled:  clonePtr(rc.Enabled),
		Severity: clonePtr(rc.Severity),
		AutoFix:  clonePtr(rc.AutoFix),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
