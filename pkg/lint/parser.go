package lint

import (
	"context"

	"github.com/yaklabco/mdannotate/pkg/document"
)

// Parser turns Markdown content into a Document with its annotation spans
// and definitions collected. It is defined here, where it is consumed;
// parser/goldmark provides the implementation.
//
// Implementations must not retain or mutate content and must be safe for
// concurrent use.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*document.Document, error)
}
