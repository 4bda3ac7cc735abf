package goldmark

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdannotate/pkg/annotation"
)

// Registration priorities. goldmark runs lower values first.
const (
	// SpanParserPriority places the span parser before the link parser (200).
	SpanParserPriority = 199

	// DefinitionParserPriority places the definition parser before the
	// paragraph parser (1000), which accepts any line.
	DefinitionParserPriority = 999

	// HTMLRendererPriority is the priority of the annotation HTML renderer.
	HTMLRendererPriority = 500
)

// Extension registers annotation spans and definitions with goldmark.
type Extension struct {
	data        annotation.DataParser
	bodyParsers []util.PrioritizedValue
}

// ExtensionOption configures an Extension.
type ExtensionOption func(*Extension)

// WithDataParser sets the parser for definition bodies. The default is YAML.
func WithDataParser(data annotation.DataParser) ExtensionOption {
	return func(e *Extension) {
		e.data = data
	}
}

// WithBodyInlineParsers sets the inline parsers used for span bodies. The
// default is goldmark's built-in set.
func WithBodyInlineParsers(parsers ...util.PrioritizedValue) ExtensionOption {
	return func(e *Extension) {
		e.bodyParsers = parsers
	}
}

// NewExtension returns an annotation extension.
func NewExtension(opts ...ExtensionOption) *Extension {
	e := &Extension{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(NewSpanParser(e.bodyParsers), SpanParserPriority),
		),
		parser.WithBlockParsers(
			util.Prioritized(NewDefinitionParser(e.data), DefinitionParserPriority),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(NewHTMLRenderer(), HTMLRendererPriority),
		),
	)
}

// Annotations is the extension with default options.
//
//nolint:gochecknoglobals // Mirrors goldmark's exported extension values.
var Annotations = NewExtension()
