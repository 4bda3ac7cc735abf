package annotation

import (
	"strings"
	"unicode/utf8"
)

// DataParser turns a definition body into a key/value mapping.
type DataParser interface {
	ParseData(text string) (map[string]any, error)
}

// DataParserFunc adapts a function to DataParser.
type DataParserFunc func(text string) (map[string]any, error)

// ParseData implements DataParser.
func (f DataParserFunc) ParseData(text string) (map[string]any, error) {
	return f(text)
}

// Definition is a block annotation definition:
//
//	[id] {
//	  key: value
//	}
type Definition struct {
	// ID is the identifier being defined.
	ID string

	// IDSegment locates ID in the source.
	IDSegment Segment

	// Raw is the de-indented body handed to the data parser.
	Raw string

	// Data is the parsed body. It is empty, never nil, when parsing failed.
	Data map[string]any

	// Diagnostic holds the data parser's error, if any.
	Diagnostic error

	// BlockIndent is the indentation of the line holding '['.
	BlockIndent int

	// DataIndent is the indentation of the first body line.
	DataIndent int

	// Start is the start of the line holding '['.
	Start int

	// End is the offset just past the closing brace and its trailing
	// horizontal whitespace.
	End int

	// Next is the offset just past the closing line's newline, or the end
	// of input. A host consumes [Start, Next).
	Next int
}

// Len returns the number of bytes the definition consumed.
func (d *Definition) Len() int {
	return d.Next - d.Start
}

// definitionHead is '[' id ']' space '{' hspace newline, with optional
// horizontal whitespace inside the brackets and before '['.
//
//nolint:gochecknoglobals // Immutable grammar built once.
var definitionHead = Sequence(
	Skip(IsWhitespace),
	Char('['),
	Skip(IsWhitespace),
	Capture(keyID, IsIdentifier),
	Skip(IsWhitespace),
	Char(']'),
	Skip(IsSpace),
	Char('{'),
	Skip(IsWhitespace),
	Char('\n'),
)

// ParseDefinition matches an annotation definition whose opening bracket is
// the first non-blank character of the line holding pos. The body is handed
// to data (YAMLDataParser when nil); a data failure is recorded on the
// definition rather than returned.
func ParseDefinition(src string, pos int, data DataParser) (*Definition, error) {
	if data == nil {
		data = YAMLDataParser{}
	}

	start := LineStart(src, pos)
	blockIndent, first := MeasureIndent(src, start)
	if first < pos {
		return nil, fail(first, ErrUnexpected, "expected '[' but got %s", describeAt(src, first))
	}

	headEnd, rec, err := Run(definitionHead, src, start)
	if err != nil {
		return nil, err
	}

	bodyStart := StripBlankLines(src, headEnd)
	if bodyStart >= len(src) {
		return nil, fail(bodyStart, ErrUnclosed, "unclosed block: missing closing '}'")
	}

	dataIndent, _ := MeasureIndent(src, bodyStart)
	if dataIndent < blockIndent {
		return nil, fail(bodyStart, ErrUnderIndented,
			"definition body indented %d, less than its opening bracket at %d", dataIndent, blockIndent)
	}

	lines, closeStart := extractBody(src, bodyStart, blockIndent, dataIndent)

	end, next, err := parseClose(src, closeStart, blockIndent)
	if err != nil {
		return nil, err
	}

	idSeg, _ := rec.First(keyID)
	def := &Definition{
		ID:          idSeg.Value(src),
		IDSegment:   idSeg,
		Raw:         TrimBlankLines(strings.Join(lines, "\n")),
		BlockIndent: blockIndent,
		DataIndent:  dataIndent,
		Start:       start,
		End:         end,
		Next:        next,
	}

	// The data parser sees a newline-terminated document so block scalars
	// keep their final line break.
	text := def.Raw
	if text != "" {
		text += "\n"
	}
	parsed, dataErr := data.ParseData(text)
	if dataErr != nil {
		def.Diagnostic = dataErr
		parsed = nil
	}
	if parsed == nil {
		parsed = map[string]any{}
	}
	def.Data = parsed

	return def, nil
}

// extractBody collects the body lines starting at pos, each de-indented by
// dataIndent. It stops at the first non-blank line indented less than
// dataIndent, or at a closing line indented exactly blockIndent, and
// returns the offset of that line.
func extractBody(src string, pos, blockIndent, dataIndent int) ([]string, int) {
	var lines []string
	for pos < len(src) {
		lineEnd := LineEnd(src, pos)
		width, textStart := MeasureIndent(src, pos)

		switch {
		case textStart >= lineEnd:
			lines = append(lines, "")
		case width == blockIndent && isClosingLine(src[textStart:lineEnd]):
			return lines, pos
		case width < dataIndent:
			return lines, pos
		default:
			lines = append(lines, dedent(src[pos:lineEnd], dataIndent))
		}

		if lineEnd >= len(src) {
			return lines, len(src)
		}
		pos = lineEnd + 1
	}
	return lines, pos
}

// parseClose requires '}' at exactly blockIndent, then optional horizontal
// whitespace and a newline or end of input.
func parseClose(src string, pos, blockIndent int) (int, int, error) {
	if pos >= len(src) {
		return 0, 0, fail(pos, ErrUnclosed, "unclosed block: missing closing '}'")
	}

	width, brace := MeasureIndent(src, pos)
	if width != blockIndent {
		return 0, 0, fail(brace, ErrUnexpected,
			"closing '}' indented %d, expected %d", width, blockIndent)
	}

	after, err := AdvanceChar(src, brace, '}')
	if err != nil {
		return 0, 0, err
	}

	end := AdvanceWhile(src, after, IsWhitespace)
	if end >= len(src) {
		return end, end, nil
	}

	next, err := AdvanceChar(src, end, '\n')
	if err != nil {
		return 0, 0, err
	}
	return end, next, nil
}

func isClosingLine(s string) bool {
	return TrimHorizontal(s) == "}"
}

// dedent strips exactly width columns of leading whitespace from line, plus
// a trailing carriage return. A tab straddling the boundary leaves its
// surplus columns behind as spaces.
func dedent(line string, width int) string {
	removed, idx := 0, 0
	for idx < len(line) && removed < width {
		r, size := utf8.DecodeRuneInString(line[idx:])
		if !IsWhitespace(r) {
			break
		}
		removed += IndentWeight(r)
		idx += size
	}
	rest := strings.TrimSuffix(line[idx:], "\r")
	if removed > width {
		return strings.Repeat(" ", removed-width) + rest
	}
	return rest
}
