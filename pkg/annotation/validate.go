package annotation

import (
	"fmt"
	"sync"
)

// WarningKind classifies a validation warning.
type WarningKind int

// Warning kinds.
const (
	WarnDuplicateDefinition WarningKind = iota + 1
	WarnMalformedData
	WarnUndefinedReference
	WarnUnusedDefinition
)

// String returns the kind's name.
func (k WarningKind) String() string {
	switch k {
	case WarnDuplicateDefinition:
		return "duplicate-definition"
	case WarnMalformedData:
		return "malformed-data"
	case WarnUndefinedReference:
		return "undefined-reference"
	case WarnUnusedDefinition:
		return "unused-definition"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning is a non-fatal semantic issue found in a parsed document.
type Warning struct {
	Kind WarningKind

	// Pos is the source offset of the node that triggered the warning.
	Pos int

	// ID is the identifier involved.
	ID string

	Message string

	// Err is the captured data parser error for WarnMalformedData.
	Err error
}

// Sink receives warnings as they are found.
type Sink interface {
	Warn(w Warning)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(w Warning)

// Warn implements Sink.
func (f SinkFunc) Warn(w Warning) {
	f(w)
}

// Collector is a Sink that keeps every warning. It is safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	warnings []Warning
}

// Warn implements Sink.
func (c *Collector) Warn(w Warning) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, w)
}

// Warnings returns a copy of the collected warnings.
func (c *Collector) Warnings() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Count returns the number of collected warnings of kind.
func (c *Collector) Count(kind WarningKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, w := range c.warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

type validateConfig struct {
	reportUnused bool
}

// ValidateOption configures Validate.
type ValidateOption func(*validateConfig)

// WithUnusedDefinitions also reports definitions no span references.
func WithUnusedDefinitions() ValidateOption {
	return func(c *validateConfig) {
		c.reportUnused = true
	}
}

// Validate checks the cross references between the definitions and spans of
// one document. It must run after every node of the document is collected.
// Warnings go to sink; processing never stops early.
func Validate(defs []*Definition, spans []*Span, sink Sink, opts ...ValidateOption) {
	var cfg validateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	defined := make(map[string]*Definition, len(defs))
	for _, def := range defs {
		if _, dup := defined[def.ID]; dup {
			sink.Warn(Warning{
				Kind:    WarnDuplicateDefinition,
				Pos:     def.Start,
				ID:      def.ID,
				Message: fmt.Sprintf("multiple definitions for annotation %q", def.ID),
			})
		} else {
			defined[def.ID] = def
		}

		if def.Diagnostic != nil {
			sink.Warn(Warning{
				Kind:    WarnMalformedData,
				Pos:     def.Start,
				ID:      def.ID,
				Message: fmt.Sprintf("malformed data in definition %q: %v", def.ID, def.Diagnostic),
				Err:     def.Diagnostic,
			})
		}
	}

	used := make(map[string]bool, len(defined))
	for _, span := range spans {
		for _, id := range span.IDs {
			if _, ok := defined[id]; ok {
				used[id] = true
				continue
			}
			sink.Warn(Warning{
				Kind:    WarnUndefinedReference,
				Pos:     span.Start,
				ID:      id,
				Message: fmt.Sprintf("annotation %q references a non-existent definition", id),
			})
		}
	}

	if !cfg.reportUnused {
		return
	}
	for _, def := range defs {
		if used[def.ID] || defined[def.ID] != def {
			continue
		}
		sink.Warn(Warning{
			Kind:    WarnUnusedDefinition,
			Pos:     def.Start,
			ID:      def.ID,
			Message: fmt.Sprintf("definition %q is never referenced", def.ID),
		})
	}
}
