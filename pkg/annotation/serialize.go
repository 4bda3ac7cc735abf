package annotation

import "strings"

// CanonicalIndent is the body indentation of a canonical definition.
const CanonicalIndent = 2

// FormatSpan renders a span in canonical form: {body}[id1 id2].
func FormatSpan(renderedBody string, ids []string) string {
	var sb strings.Builder
	sb.WriteByte('{')
	sb.WriteString(renderedBody)
	sb.WriteString("}[")
	sb.WriteString(strings.Join(ids, " "))
	sb.WriteByte(']')
	return sb.String()
}

// FormatDefinition renders a definition in canonical form, with the body
// re-indented to CanonicalIndent spaces whatever its source indentation.
func FormatDefinition(id, raw string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(id)
	sb.WriteString("] {\n")
	sb.WriteString(Reindent(raw, CanonicalIndent))
	sb.WriteString("\n}")
	return sb.String()
}

// Reindent prefixes every non-blank line of text with n spaces. Blank
// lines are emitted empty.
func Reindent(text string, n int) string {
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if TrimHorizontal(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// Canonical renders the span using its source body text.
func (s *Span) Canonical() string {
	return FormatSpan(s.Body, s.IDs)
}

// Canonical renders the definition with a normalized body indent.
func (d *Definition) Canonical() string {
	return FormatDefinition(d.ID, d.Raw)
}
