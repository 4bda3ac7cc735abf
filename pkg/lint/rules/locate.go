package rules

import (
	"github.com/yaklabco/mdannotate/pkg/annotation"
	"github.com/yaklabco/mdannotate/pkg/document"
)

// spanAt returns the span starting at pos.
func spanAt(doc *document.Document, pos int) *annotation.Span {
	for _, span := range doc.Spans {
		if span.Start == pos {
			return span
		}
	}
	return nil
}

// definitionAt returns the definition starting at pos.
func definitionAt(doc *document.Document, pos int) *annotation.Definition {
	for _, def := range doc.Definitions {
		if def.Start == pos {
			return def
		}
	}
	return nil
}

// warningRange returns the byte range a warning should point at: the
// whole span or definition that raised it, or just pos when neither is
// found.
func warningRange(doc *document.Document, w annotation.Warning) (int, int) {
	if w.Kind == annotation.WarnUndefinedReference {
		if span := spanAt(doc, w.Pos); span != nil {
			return span.Start, span.End
		}
		return w.Pos, w.Pos
	}
	if def := definitionAt(doc, w.Pos); def != nil {
		return def.Start, def.End
	}
	return w.Pos, w.Pos
}
