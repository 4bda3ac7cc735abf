package annotation

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLDataParser parses definition bodies as a YAML mapping.
type YAMLDataParser struct{}

// ParseData implements DataParser. Empty input yields a nil map; a
// document that is not a mapping is an error.
func (YAMLDataParser) ParseData(text string) (map[string]any, error) {
	var out map[string]any
	if err := yaml.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("parse annotation data: %w", err)
	}
	return out, nil
}
