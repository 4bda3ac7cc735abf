package lint

import (
	"cmp"
	"slices"
	"sync"
)

// Registry holds rules by ID and by name.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]Rule
	byName map[string]Rule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]Rule),
		byName: make(map[string]Rule),
	}
}

// Register adds rule, replacing any rule with the same ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byID[rule.ID()]; ok {
		delete(r.byName, old.Name())
	}
	r.byID[rule.ID()] = rule
	r.byName[rule.Name()] = rule
}

// Get looks a rule up by ID, then by name.
//
//nolint:ireturn // Registry stores rules by interface.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byID[key]; ok {
		return rule, true
	}
	rule, ok := r.byName[key]
	return rule, ok
}

// Rules returns all rules sorted by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.byID))
	for _, rule := range r.byID {
		result = append(result, rule)
	}
	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return result
}

// IDs returns all rule IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// DefaultRegistry holds the built-in rules, which register themselves
// from init in package rules.
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
