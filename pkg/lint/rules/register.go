package rules

import "github.com/yaklabco/mdannotate/pkg/lint"

// RegisterAll registers the built-in rules with registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewDuplicateDefinitionRule()) // AN001
	registry.Register(NewUndefinedReferenceRule())  // AN002
	registry.Register(NewMalformedDataRule())       // AN003
	registry.Register(NewUnusedDefinitionRule())    // AN004
	registry.Register(NewCanonicalFormatRule())     // AN005
}

//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
}
