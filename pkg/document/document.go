// Package document holds a parsed Markdown file together with the
// annotation spans and definitions found in it.
package document

import (
	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/mdannotate/pkg/annotation"
)

// Document is a parsed Markdown file. Offsets held by its spans and
// definitions index Content.
type Document struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Spans lists annotation spans in document order.
	Spans []*annotation.Span

	// Definitions lists annotation definitions in document order.
	Definitions []*annotation.Definition

	// Root is the goldmark document node.
	Root ast.Node
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// New creates a Document from content with its line index built.
// Spans, definitions and root are filled in by a parser.
func New(path string, content []byte) *Document {
	return &Document{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// Source returns the content as a string, the form the annotation
// productions operate on.
func (d *Document) Source() string {
	return string(d.Content)
}

// DefinitionFor returns the first definition with id, or nil.
func (d *Document) DefinitionFor(id string) *annotation.Definition {
	for _, def := range d.Definitions {
		if def.ID == id {
			return def
		}
	}
	return nil
}
