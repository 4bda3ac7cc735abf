package annotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdannotate/pkg/annotation"
)

func TestMeasureIndent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		pos       int
		wantWidth int
		wantEnd   int
	}{
		{name: "no indent", src: "abc", wantWidth: 0, wantEnd: 0},
		{name: "spaces", src: "   abc", wantWidth: 3, wantEnd: 3},
		{name: "tab counts four", src: "\tabc", wantWidth: 4, wantEnd: 1},
		{name: "mixed", src: "  \tabc", wantWidth: 6, wantEnd: 3},
		{name: "stops at newline", src: "  \n  x", wantWidth: 2, wantEnd: 2},
		{name: "from offset", src: "ab  c", pos: 2, wantWidth: 2, wantEnd: 4},
		{name: "non-breaking space", src: "\u00a0x", wantWidth: 1, wantEnd: 2},
		{name: "end of input", src: "   ", wantWidth: 3, wantEnd: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			width, end := annotation.MeasureIndent(tt.src, tt.pos)
			assert.Equal(t, tt.wantWidth, width)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestCharClasses(t *testing.T) {
	t.Parallel()

	assert.True(t, annotation.IsWhitespace(' '))
	assert.True(t, annotation.IsWhitespace('\t'))
	assert.False(t, annotation.IsWhitespace('\n'))
	assert.True(t, annotation.IsNewline('\n'))
	assert.True(t, annotation.IsSpace('\n'))
	assert.True(t, annotation.IsSpace(' '))

	for _, r := range "{}[] \t\n" {
		assert.False(t, annotation.IsIdentifier(r), "%q", r)
	}
	for _, r := range "az09-_.:éλ" {
		assert.True(t, annotation.IsIdentifier(r), "%q", r)
	}
}

func TestAdvanceChar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		pos     int
		ch      byte
		want    int
		wantMsg string
	}{
		{name: "match", src: "{x", ch: '{', want: 1},
		{name: "mismatch literal", src: "ab", pos: 1, ch: '}', wantMsg: "offset 1: expected '}' but got 'b'"},
		{name: "mismatch whitespace", src: "a b", pos: 1, ch: '}', wantMsg: "offset 1: expected '}' but got whitespace"},
		{name: "mismatch newline", src: "a\n", pos: 1, ch: '[', wantMsg: "offset 1: expected '[' but got newline"},
		{name: "expected newline", src: "}x", pos: 1, ch: '\n', wantMsg: "offset 1: expected newline but got 'x'"},
		{name: "end of input", src: "a", pos: 1, ch: ']', wantMsg: "offset 1: expected ']' but got end of input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := annotation.AdvanceChar(tt.src, tt.pos, tt.ch)
			if tt.wantMsg != "" {
				require.Error(t, err)
				require.ErrorIs(t, err, annotation.ErrUnexpected)
				assert.Equal(t, tt.wantMsg, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripBlankLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		pos  int
		want int
	}{
		{name: "nothing blank", src: "abc", want: 0},
		{name: "indented text is kept", src: "  abc", want: 0},
		{name: "blank lines", src: "\n  \n\t\nabc", want: 6},
		{name: "blank to end", src: "  \n  ", want: 5},
		{name: "from offset", src: "x\n\n  y", pos: 2, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, annotation.StripBlankLines(tt.src, tt.pos))
		})
	}
}

func TestLineBounds(t *testing.T) {
	t.Parallel()

	src := "one\ntwo\nthree"
	assert.Equal(t, 0, annotation.LineStart(src, 2))
	assert.Equal(t, 4, annotation.LineStart(src, 4))
	assert.Equal(t, 4, annotation.LineStart(src, 6))
	assert.Equal(t, 7, annotation.LineEnd(src, 4))
	assert.Equal(t, len(src), annotation.LineEnd(src, 9))
	assert.Equal(t, len(src), annotation.LineEnd(src, len(src)))
}

func TestIsEscaped(t *testing.T) {
	t.Parallel()

	assert.False(t, annotation.IsEscaped(`{`, 0))
	assert.True(t, annotation.IsEscaped(`a\{`, 2))
	assert.False(t, annotation.IsEscaped(`a\\{`, 3))
	assert.True(t, annotation.IsEscaped(`\\\{`, 3))
}

func TestScanUnescaped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		delim   byte
		forbid  string
		want    int
		wantErr error
	}{
		{name: "plain", src: "abc}", delim: '}', want: 3},
		{name: "escaped delimiter is content", src: `ab\}c}`, delim: '}', want: 5},
		{name: "escaped backslash", src: `ab\\}c}`, delim: '}', want: 4},
		{name: "unclosed", src: "abc", delim: '}', wantErr: annotation.ErrUnclosed},
		{name: "forbidden newline", src: "a\nb}", delim: '}', forbid: "\n", wantErr: annotation.ErrUnexpected},
		{name: "escaped forbidden byte", src: `a\{b}`, delim: '}', forbid: "{", want: 4},
		{name: "newline allowed", src: "a\nb}", delim: '}', want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := annotation.ScanUnescaped(tt.src, 0, tt.delim, tt.forbid)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrimBlankLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "foo\n  bar", annotation.TrimBlankLines("\n \nfoo\n  bar\n\n"))
	assert.Equal(t, "a\n\nb", annotation.TrimBlankLines("a\n\nb"))
	assert.Empty(t, annotation.TrimBlankLines("\n  \n"))
}
