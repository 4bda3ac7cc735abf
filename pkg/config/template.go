package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width of wrapped template comments.
const commentWrapWidth = 70

// RuleInfo describes a rule for template generation. The lint package
// supplies these so config does not import it.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	CanFix      bool
}

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every rule in Rules. Otherwise a short commented
	// template is produced.
	Full bool

	// Rules lists the rules to document when Full is set.
	Rules []RuleInfo
}

// TemplateHeader is the comment block at the top of generated configs.
const TemplateHeader = `# mdannotate configuration
# Place this file as .mdannotate.yml at the root of your project.
`

const templateBase = `
# Markdown flavor: commonmark or gfm
flavor: commonmark

# Severity for rules without their own: error, warning, or info
severity_default: warning

# Report definitions that no annotation span references
report_unused: false

# Keep a .mdannotate.bak copy of each file rewritten by fmt --write
backups:
  enabled: false

# File patterns to skip (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`

// GenerateTemplate renders a commented configuration file.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer
	buf.WriteString(TemplateHeader)
	buf.WriteString(templateBase)

	if !opts.Full {
		buf.WriteString(`
# Rule-specific configuration, keyed by rule ID or name
# rules:
#   AN002:
#     severity: error
#   unused-definition:
#     enabled: true
`)
		return buf.Bytes()
	}

	rules := slices.Clone(opts.Rules)
	slices.SortFunc(rules, func(a, b RuleInfo) int {
		return strings.Compare(a.ID, b.ID)
	})

	buf.WriteString("\n# Rule-specific configuration, keyed by rule ID or name\nrules:\n")
	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		if rule.Description != "" {
			fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		}
		if rule.CanFix {
			buf.WriteString("  # Auto-fix: yes\n")
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)
	}
	return buf.Bytes()
}

// wrapComment wraps text to maxWidth, continuing lines as indented comments.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxWidth:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return strings.Join(lines, "\n  # ")
}
