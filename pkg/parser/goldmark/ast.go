package goldmark

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/mdannotate/pkg/annotation"
)

// Node kinds registered by the annotation extension.
//
//nolint:gochecknoglobals // goldmark node kinds are registered once at init.
var (
	KindAnnotation           = ast.NewNodeKind("Annotation")
	KindAnnotationDefinition = ast.NewNodeKind("AnnotationDefinition")
)

// Annotation is an inline annotation span. Its children are the parsed
// inline content of the span body.
type Annotation struct {
	ast.BaseInline

	Span *annotation.Span
}

// NewAnnotation returns an Annotation node for span.
func NewAnnotation(span *annotation.Span) *Annotation {
	return &Annotation{Span: span}
}

// IDs returns the identifiers the span references.
func (n *Annotation) IDs() []string {
	return n.Span.IDs
}

// Kind implements ast.Node.
func (n *Annotation) Kind() ast.NodeKind {
	return KindAnnotation
}

// Dump implements ast.Node.
func (n *Annotation) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"IDs": strings.Join(n.Span.IDs, " "),
	}, nil)
}

// AnnotationDefinition is a block annotation definition. It has no children.
type AnnotationDefinition struct {
	ast.BaseBlock

	Definition *annotation.Definition
}

// NewAnnotationDefinition returns an AnnotationDefinition node for def.
func NewAnnotationDefinition(def *annotation.Definition) *AnnotationDefinition {
	return &AnnotationDefinition{Definition: def}
}

// Kind implements ast.Node.
func (n *AnnotationDefinition) Kind() ast.NodeKind {
	return KindAnnotationDefinition
}

// Dump implements ast.Node.
func (n *AnnotationDefinition) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"ID":        n.Definition.ID,
		"Keys":      strconv.Itoa(len(n.Definition.Data)),
		"Malformed": strconv.FormatBool(n.Definition.Diagnostic != nil),
	}, nil)
}
