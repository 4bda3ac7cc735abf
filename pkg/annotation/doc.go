// Package annotation parses, formats and validates Markdown annotations.
//
// # Syntax
//
// An annotation span marks a run of inline text with one or more
// identifiers:
//
//	{annotated text}[id other-id]
//
// An annotation definition attaches YAML data to an identifier. The body
// must start on its own line, be indented at least as far as the opening
// bracket, and be closed by a brace at exactly the bracket's indentation:
//
//	[id] {
//	  message: hello
//	}
//
// # Parsing
//
// ParseSpan and ParseDefinition attempt a match at a given offset. They
// return a *ParseError, never a panic, when the text there is not an
// annotation; the caller moves on to other productions. Both are built from
// the small combinator set in this package (Sequence, ListPlus, Block) over
// the cursor primitives (MeasureIndent, AdvanceChar, ScanUnescaped).
//
// # Validation
//
// Validate checks that every span identifier has a definition and reports
// duplicate definitions and malformed definition data as warnings through a
// Sink. Warnings never stop parsing.
package annotation
