package goldmark

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdannotate/pkg/annotation"
)

// bodyParagraphPriority matches goldmark's own paragraph parser priority.
const bodyParagraphPriority = 1000

type spanParser struct {
	body parser.Parser
}

// NewSpanParser returns an inline parser for annotation spans. The span
// body is parsed with the given inline parsers; nil means goldmark's
// defaults.
//
//nolint:ireturn // goldmark registers parsers by interface.
func NewSpanParser(bodyParsers []util.PrioritizedValue) parser.InlineParser {
	if bodyParsers == nil {
		bodyParsers = parser.DefaultInlineParsers()
	}
	return &spanParser{
		body: parser.NewParser(
			parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), bodyParagraphPriority)),
			parser.WithInlineParsers(bodyParsers...),
		),
	}
}

// Trigger implements parser.InlineParser.
func (p *spanParser) Trigger() []byte {
	return []byte{'{'}
}

// Parse implements parser.InlineParser.
func (p *spanParser) Parse(_ ast.Node, block text.Reader, pc parser.Context) ast.Node {
	_, segment := block.PeekLine()
	src := sourceString(pc, block.Source())

	span, err := annotation.ParseSpan(src, segment.Start)
	if err != nil || span.End > segment.Stop {
		return nil
	}

	node := NewAnnotation(span)
	p.parseBody(node, block.Source(), pc)
	block.Advance(span.Len())
	return node
}

// parseBody parses the span body in place. The body reader indexes the
// document source so child segments stay valid for renderers.
func (p *spanParser) parseBody(node *Annotation, source []byte, pc parser.Context) {
	seg := node.Span.BodySegment
	if seg.IsEmpty() {
		return
	}

	lines := text.NewSegments()
	lines.Append(text.NewSegment(seg.Start, seg.Stop))

	bodyCtx := parser.NewContext()
	for _, ref := range pc.References() {
		bodyCtx.AddReference(ref)
	}

	doc := p.body.Parse(text.NewBlockReader(source, lines), parser.WithContext(bodyCtx))
	para := doc.FirstChild()
	if para == nil {
		return
	}
	for child := para.FirstChild(); child != nil; {
		next := child.NextSibling()
		node.AppendChild(node, child)
		child = next
	}
}
