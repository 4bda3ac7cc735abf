package lint

import "github.com/yaklabco/mdannotate/pkg/config"

// BaseRule implements the descriptive half of Rule. Embed it and provide
// Apply.
type BaseRule struct {
	id       string
	name     string
	desc     string
	tags     []string
	fixable  bool
	disabled bool
}

// NewBaseRule creates a BaseRule that is enabled by default.
func NewBaseRule(id, name, desc string, tags []string, fixable bool) BaseRule {
	return BaseRule{
		id:      id,
		name:    name,
		desc:    desc,
		tags:    tags,
		fixable: fixable,
	}
}

// NewOptInRule creates a BaseRule that is disabled by default.
func NewOptInRule(id, name, desc string, tags []string, fixable bool) BaseRule {
	r := NewBaseRule(id, name, desc, tags, fixable)
	r.disabled = true
	return r
}

func (r *BaseRule) ID() string          { return r.id }
func (r *BaseRule) Name() string        { return r.name }
func (r *BaseRule) Description() string { return r.desc }
func (r *BaseRule) Tags() []string      { return r.tags }
func (r *BaseRule) CanFix() bool        { return r.fixable }

// DefaultEnabled reports whether the rule runs without configuration.
func (r *BaseRule) DefaultEnabled() bool {
	return !r.disabled
}

// DefaultSeverity returns warning. Annotation problems never stop parsing.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}
