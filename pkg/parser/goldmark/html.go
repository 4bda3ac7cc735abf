package goldmark

import (
	"encoding/json"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// HTMLRenderer renders annotation nodes as HTML. Spans become a span
// element carrying their ids; definitions become an empty div carrying
// their data as JSON.
type HTMLRenderer struct {
	html.Config
}

// NewHTMLRenderer returns an HTMLRenderer.
//
//nolint:ireturn // goldmark registers renderers by interface.
func NewHTMLRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &HTMLRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *HTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindAnnotation, r.renderAnnotation)
	reg.Register(KindAnnotationDefinition, r.renderDefinition)
}

func (r *HTMLRenderer) renderAnnotation(
	w util.BufWriter, _ []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</span>")
		return ast.WalkContinue, nil
	}

	n, ok := node.(*Annotation)
	if !ok {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<span class="annotation" data-annotation-ids="`)
	_, _ = w.Write(util.EscapeHTML([]byte(strings.Join(n.Span.IDs, " "))))
	_, _ = w.WriteString(`">`)
	return ast.WalkContinue, nil
}

func (r *HTMLRenderer) renderDefinition(
	w util.BufWriter, _ []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n, ok := node.(*AnnotationDefinition)
	if !ok {
		return ast.WalkSkipChildren, nil
	}

	data, err := json.Marshal(n.Definition.Data)
	if err != nil {
		// Data with non-string map keys has no JSON form.
		data = []byte("{}")
	}

	_, _ = w.WriteString(`<div class="annotation-definition" data-annotation="`)
	_, _ = w.Write(util.EscapeHTML(data))
	_, _ = w.WriteString("\"></div>\n")
	return ast.WalkSkipChildren, nil
}
