// Package goldmark integrates annotation spans and definitions with the
// goldmark Markdown parser.
package goldmark

import (
	"context"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdannotate/pkg/annotation"
	"github.com/yaklabco/mdannotate/pkg/document"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// strikethroughPriority matches goldmark's GFM strikethrough registration.
const strikethroughPriority = 500

// Parser parses Markdown documents with annotation support.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string, opts ...ExtensionOption) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f, opts),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Markdown returns the underlying goldmark instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func (p *Parser) Markdown() goldmark.Markdown {
	return p.md
}

// Parse converts raw Markdown bytes into a Document holding the goldmark
// tree and every annotation span and definition in document order.
//
// Returns nil and an error if the context is cancelled.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc := document.New(path, copyContent(content))

	reader := text.NewReader(doc.Content)
	doc.Root = p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	err := ast.Walk(doc.Root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *Annotation:
			doc.Spans = append(doc.Spans, n.Span)
		case *AnnotationDefinition:
			doc.Definitions = append(doc.Definitions, n.Definition)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect annotations: %w", err)
	}

	return doc, nil
}

// Render writes the HTML form of a parsed document to w.
func (p *Parser) Render(w io.Writer, doc *document.Document) error {
	if err := p.md.Renderer().Render(w, doc.Content, doc.Root); err != nil {
		return fmt.Errorf("render %s: %w", doc.Path, err)
	}
	return nil
}

// Validate runs the cross-reference validator over a parsed document.
func Validate(doc *document.Document, sink annotation.Sink, opts ...annotation.ValidateOption) {
	annotation.Validate(doc.Definitions, doc.Spans, sink, opts...)
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string, opts []ExtensionOption) goldmark.Markdown {
	exts := []goldmark.Extender{}
	bodyParsers := parser.DefaultInlineParsers()

	switch flavor {
	case FlavorGFM:
		exts = append(exts, extension.GFM)
		bodyParsers = append(bodyParsers,
			util.Prioritized(extension.NewStrikethroughParser(), strikethroughPriority),
		)
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	all := append([]ExtensionOption{WithBodyInlineParsers(bodyParsers...)}, opts...)
	exts = append(exts, NewExtension(all...))

	return goldmark.New(goldmark.WithExtensions(exts...))
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
