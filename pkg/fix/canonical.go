package fix

import (
	"github.com/yaklabco/mdannotate/pkg/document"
)

// CanonicalSpanEdits adds an edit for every span of doc whose source text
// differs from its canonical form.
func CanonicalSpanEdits(b *EditBuilder, doc *document.Document) int {
	added := 0
	for _, span := range doc.Spans {
		if b.ReplaceIfChanged(doc.Content, span.Start, span.End, span.Canonical()) {
			added++
		}
	}
	return added
}

// CanonicalDefinitionEdits adds an edit for every definition of doc whose
// source text differs from its canonical form. The replaced range runs from
// the start of the opening line to the closing brace, so leading
// indentation is normalised as well.
func CanonicalDefinitionEdits(b *EditBuilder, doc *document.Document) int {
	added := 0
	for _, def := range doc.Definitions {
		if b.ReplaceIfChanged(doc.Content, def.Start, def.End, def.Canonical()) {
			added++
		}
	}
	return added
}
