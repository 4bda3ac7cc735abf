package goldmark

import (
	"github.com/yaklabco/mdannotate/pkg/annotation"
)

// InlineRenderer renders the inline content of an annotation span back to
// Markdown text.
type InlineRenderer interface {
	RenderInline(source []byte, node *Annotation) string
}

// InlineRendererFunc adapts a function to InlineRenderer.
type InlineRendererFunc func(source []byte, node *Annotation) string

// RenderInline implements InlineRenderer.
func (f InlineRendererFunc) RenderInline(source []byte, node *Annotation) string {
	return f(source, node)
}

// SourceRenderer renders a span body as written, minus outer whitespace.
type SourceRenderer struct{}

// RenderInline implements InlineRenderer.
func (SourceRenderer) RenderInline(source []byte, node *Annotation) string {
	seg := node.Span.BodySegment
	if seg.Stop > len(source) {
		return node.Span.Body
	}
	return string(source[seg.Start:seg.Stop])
}

// FormatAnnotation renders a span node in canonical form.
func FormatAnnotation(r InlineRenderer, source []byte, node *Annotation) string {
	if r == nil {
		r = SourceRenderer{}
	}
	return annotation.FormatSpan(r.RenderInline(source, node), node.Span.IDs)
}

// FormatAnnotationDefinition renders a definition node in canonical form.
func FormatAnnotationDefinition(node *AnnotationDefinition) string {
	return node.Definition.Canonical()
}
