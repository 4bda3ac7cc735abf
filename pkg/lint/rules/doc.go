// Package rules provides the built-in annotation rules.
//
// Each rule maps one validator warning kind, or the canonical form, to
// diagnostics:
//
//   - AN001 duplicate-definition: an identifier is defined more than once
//   - AN002 undefined-reference: a span names an identifier with no definition
//   - AN003 malformed-data: a definition body is not a YAML mapping
//   - AN004 unused-definition: no span references a definition (opt-in)
//   - AN005 canonical-format: a span or definition is not canonical (fixable)
//
// Rules register with lint.DefaultRegistry from init. Import the package
// for its side effect:
//
//	import _ "github.com/yaklabco/mdannotate/pkg/lint/rules"
package rules
