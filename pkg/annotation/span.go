package annotation

import "strings"

// Record keys used by the two productions.
const (
	keyBody = "body"
	keyID   = "id"
)

// Span is an inline annotation span: {body}[id id ...].
type Span struct {
	// Body is the body text with outer horizontal whitespace removed.
	Body string

	// BodySegment locates Body in the source. Hosts parse this range into
	// the span's inline children.
	BodySegment Segment

	// IDs lists the referenced identifiers in source order. It is never
	// empty and duplicates are kept.
	IDs []string

	// Start and End delimit the consumed source, End exclusive.
	Start int
	End   int
}

// Len returns the number of bytes the span consumed.
func (s *Span) Len() int {
	return s.End - s.Start
}

// spanGrammar is '{' body '}' '[' ws? id {ws id} ws? ']'.
//
//nolint:gochecknoglobals // Immutable grammar built once.
var spanGrammar = Sequence(
	InlineBlock(keyBody, '{', '}'),
	Char('['),
	Skip(IsWhitespace),
	ListPlus(keyID, Capture(keyID, IsIdentifier), Skip1(IsWhitespace)),
	Skip(IsWhitespace),
	Char(']'),
)

// ParseSpan matches an annotation span starting exactly at pos. A non-nil
// error means there is no span at pos; it is a *ParseError describing why.
func ParseSpan(src string, pos int) (*Span, error) {
	if pos < len(src) && src[pos] == '{' && IsEscaped(src, pos) {
		return nil, fail(pos, ErrUnexpected, "escaped '{' does not open an annotation")
	}

	end, rec, err := Run(spanGrammar, src, pos)
	if err != nil {
		return nil, err
	}

	body, _ := rec.First(keyBody)
	body = body.TrimHorizontal(src)

	return &Span{
		Body:        body.Value(src),
		BodySegment: body,
		IDs:         rec.Strings(src, keyID),
		Start:       pos,
		End:         end,
	}, nil
}

// LocateSpan returns the offset of the next unescaped '{' at or after from,
// or -1. Spans are only attempted at these offsets.
func LocateSpan(src string, from int) int {
	for from < len(src) {
		idx := strings.IndexByte(src[from:], '{')
		if idx < 0 {
			return -1
		}
		pos := from + idx
		if !IsEscaped(src, pos) {
			return pos
		}
		from = pos + 1
	}
	return -1
}
