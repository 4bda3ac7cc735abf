package goldmark

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdannotate/pkg/annotation"
)

type definitionParser struct {
	data annotation.DataParser
}

// NewDefinitionParser returns a block parser for annotation definitions.
// Definition bodies are decoded with data, or YAML when data is nil.
//
//nolint:ireturn // goldmark registers parsers by interface.
func NewDefinitionParser(data annotation.DataParser) parser.BlockParser {
	if data == nil {
		data = annotation.YAMLDataParser{}
	}
	return &definitionParser{data: data}
}

// Trigger implements parser.BlockParser.
func (p *definitionParser) Trigger() []byte {
	return []byte{'['}
}

// Open implements parser.BlockParser. Definitions are only recognised at
// the top level of a document.
func (p *definitionParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	if parent.Kind() != ast.KindDocument {
		return nil, parser.NoChildren
	}

	_, segment := reader.PeekLine()
	src := sourceString(pc, reader.Source())

	def, err := annotation.ParseDefinition(src, segment.Start, p.data)
	if err != nil {
		return nil, parser.NoChildren
	}

	return NewAnnotationDefinition(def), parser.NoChildren
}

// Continue implements parser.BlockParser. Every line up to the end of the
// matched definition belongs to the node.
func (p *definitionParser) Continue(node ast.Node, reader text.Reader, _ parser.Context) parser.State {
	defNode, ok := node.(*AnnotationDefinition)
	if !ok {
		return parser.Close
	}

	_, segment := reader.PeekLine()
	if segment.Start >= defNode.Definition.Next {
		return parser.Close
	}
	return parser.Continue | parser.NoChildren
}

// Close implements parser.BlockParser.
func (p *definitionParser) Close(_ ast.Node, _ text.Reader, _ parser.Context) {}

// CanInterruptParagraph implements parser.BlockParser. A bracketed line
// directly under paragraph text stays part of the paragraph.
func (p *definitionParser) CanInterruptParagraph() bool {
	return false
}

// CanAcceptIndentedLine implements parser.BlockParser. Lines indented four
// or more columns are code.
func (p *definitionParser) CanAcceptIndentedLine() bool {
	return false
}
