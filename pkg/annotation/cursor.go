package annotation

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Indentation weights. Tabs are not expanded to the next tab stop; every
// tab counts the same.
const (
	spaceWeight = 1
	tabWeight   = 4
)

// IsWhitespace reports whether r is whitespace other than a newline.
func IsWhitespace(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}

// IsNewline reports whether r is a line feed.
func IsNewline(r rune) bool {
	return r == '\n'
}

// IsSpace reports whether r is any whitespace, newlines included.
func IsSpace(r rune) bool {
	return IsWhitespace(r) || IsNewline(r)
}

// IsIdentifier reports whether r may appear in an annotation identifier.
func IsIdentifier(r rune) bool {
	switch r {
	case '{', '}', '[', ']':
		return false
	}
	return !unicode.IsSpace(r)
}

// IndentWeight returns the indentation width contributed by r.
func IndentWeight(r rune) int {
	if r == '\t' {
		return tabWeight
	}
	return spaceWeight
}

// MeasureIndent scans the horizontal whitespace starting at pos and returns
// its weighted width together with the offset of the first other character.
func MeasureIndent(src string, pos int) (int, int) {
	width := 0
	for pos < len(src) {
		r, size := utf8.DecodeRuneInString(src[pos:])
		if !IsWhitespace(r) {
			break
		}
		width += IndentWeight(r)
		pos += size
	}
	return width, pos
}

// AdvanceWhile moves past every rune satisfying pred and returns the new offset.
func AdvanceWhile(src string, pos int, pred func(rune) bool) int {
	for pos < len(src) {
		r, size := utf8.DecodeRuneInString(src[pos:])
		if !pred(r) {
			break
		}
		pos += size
	}
	return pos
}

// AdvanceChar requires the literal ch at pos and returns the offset after it.
func AdvanceChar(src string, pos int, ch byte) (int, error) {
	if pos < len(src) && src[pos] == ch {
		return pos + 1, nil
	}
	return pos, fail(pos, ErrUnexpected, "expected %s but got %s", describeByte(ch), describeAt(src, pos))
}

// StripBlankLines consumes whole lines that are empty or hold only
// horizontal whitespace, stopping at the first other line or end of input.
// The returned offset is always the start of a line.
func StripBlankLines(src string, pos int) int {
	for pos < len(src) {
		end := AdvanceWhile(src, pos, IsWhitespace)
		switch {
		case end >= len(src):
			return end
		case src[end] == '\n':
			pos = end + 1
		default:
			return pos
		}
	}
	return pos
}

// LineStart returns the offset of the first byte of the line holding pos.
func LineStart(src string, pos int) int {
	if pos > len(src) {
		pos = len(src)
	}
	return strings.LastIndexByte(src[:pos], '\n') + 1
}

// LineEnd returns the offset of the newline ending the line holding pos,
// or len(src) for the last line.
func LineEnd(src string, pos int) int {
	if pos >= len(src) {
		return len(src)
	}
	if idx := strings.IndexByte(src[pos:], '\n'); idx >= 0 {
		return pos + idx
	}
	return len(src)
}

// IsEscaped reports whether the byte at pos is preceded by an odd number
// of backslashes.
func IsEscaped(src string, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && src[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// ScanUnescaped returns the offset of the first unescaped delim at or after
// pos. It fails with ErrUnclosed at end of input, and with ErrUnexpected at
// the first unescaped byte listed in forbid.
func ScanUnescaped(src string, pos int, delim byte, forbid string) (int, error) {
	for i := pos; i < len(src); i++ {
		c := src[i]
		if c == '\\' {
			// The escaped byte is content whatever it is, newline aside.
			if i+1 < len(src) && src[i+1] != '\n' {
				i++
			}
			continue
		}
		if c == delim {
			return i, nil
		}
		if strings.IndexByte(forbid, c) >= 0 {
			return i, fail(i, ErrUnexpected, "unescaped %s before closing %s", describeByte(c), describeByte(delim))
		}
	}
	return len(src), fail(len(src), ErrUnclosed, "unclosed block: missing %s", describeByte(delim))
}

// TrimHorizontal removes leading and trailing non-newline whitespace.
func TrimHorizontal(s string) string {
	return strings.TrimFunc(s, IsWhitespace)
}

// TrimBlankLines removes leading and trailing lines that are blank.
func TrimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	first, last := 0, len(lines)
	for first < last && strings.TrimFunc(lines[first], IsWhitespace) == "" {
		first++
	}
	for last > first && strings.TrimFunc(lines[last-1], IsWhitespace) == "" {
		last--
	}
	return strings.Join(lines[first:last], "\n")
}

func describeAt(src string, pos int) string {
	if pos >= len(src) {
		return "end of input"
	}
	r, _ := utf8.DecodeRuneInString(src[pos:])
	return describeRune(r)
}

func describeByte(c byte) string {
	return describeRune(rune(c))
}

func describeRune(r rune) string {
	switch {
	case r == '\n':
		return "newline"
	case unicode.IsSpace(r):
		return "whitespace"
	default:
		return strconv.QuoteRune(r)
	}
}
