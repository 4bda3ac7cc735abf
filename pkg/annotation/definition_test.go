package annotation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdannotate/pkg/annotation"
)

func TestParseDefinition(t *testing.T) {
	t.Parallel()

	t.Run("simple", func(t *testing.T) {
		t.Parallel()
		src := "[ok] {\n  msg: hi\n}"
		def, err := annotation.ParseDefinition(src, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, "ok", def.ID)
		assert.Equal(t, "ok", def.IDSegment.Value(src))
		assert.Equal(t, "msg: hi", def.Raw)
		assert.Equal(t, map[string]any{"msg": "hi"}, def.Data)
		require.NoError(t, def.Diagnostic)
		assert.Equal(t, 0, def.BlockIndent)
		assert.Equal(t, 2, def.DataIndent)
		assert.Equal(t, 0, def.Start)
		assert.Equal(t, len(src), def.End)
		assert.Equal(t, len(src), def.Next)
	})

	t.Run("consumes closing newline only", func(t *testing.T) {
		t.Parallel()
		src := "[ok] {\n  msg: hi\n}  \nafter"
		def, err := annotation.ParseDefinition(src, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, len(src)-len("\nafter"), def.End)
		assert.Equal(t, len(src)-len("after"), def.Next)
		assert.Equal(t, def.Next, def.Len())
	})

	t.Run("data indented more than bracket", func(t *testing.T) {
		t.Parallel()
		src := "  [ok] {\n      msg: hi\n      nested:\n        a: 1\n  }\n"
		def, err := annotation.ParseDefinition(src, 2, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, def.BlockIndent)
		assert.Equal(t, 6, def.DataIndent)
		assert.Equal(t, "msg: hi\nnested:\n  a: 1", def.Raw)
		assert.Equal(t, "hi", def.Data["msg"])
		assert.Equal(t, map[string]any{"a": 1}, def.Data["nested"])
		assert.Equal(t, 0, def.Start)
		assert.Equal(t, len(src), def.Next)
	})

	t.Run("weird spacing", func(t *testing.T) {
		t.Parallel()
		src := "\n  [   ok ]\n  {\n\n      message: |\n        there was a man in the corner\n" +
			"        eyes feverish\n        strange man was he\n\n  }"
		def, err := annotation.ParseDefinition(src, 3, nil)
		require.NoError(t, err)
		assert.Equal(t, "ok", def.ID)
		assert.Equal(t, 1, def.Start)
		assert.Equal(t,
			"there was a man in the corner\neyes feverish\nstrange man was he\n",
			def.Data["message"])
	})

	t.Run("body at bracket indent", func(t *testing.T) {
		t.Parallel()
		def, err := annotation.ParseDefinition("[ok] {\nmsg: hi\n}\n", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, def.DataIndent)
		assert.Equal(t, map[string]any{"msg": "hi"}, def.Data)
	})

	t.Run("tabs weigh four", func(t *testing.T) {
		t.Parallel()
		def, err := annotation.ParseDefinition("\t[ok] {\n\t\tmsg: hi\n\t}", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, 4, def.BlockIndent)
		assert.Equal(t, 8, def.DataIndent)
		assert.Equal(t, "msg: hi", def.Raw)
	})

	t.Run("no space before brace", func(t *testing.T) {
		t.Parallel()
		def, err := annotation.ParseDefinition("  [ok]{\n      beep: boop\n  }", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, "boop", def.Data["beep"])
	})

	t.Run("blank lines inside body", func(t *testing.T) {
		t.Parallel()
		def, err := annotation.ParseDefinition("[ok] {\n\n  a: 1\n\n  b: 2\n\n}", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, "a: 1\n\nb: 2", def.Raw)
		assert.Equal(t, map[string]any{"a": 1, "b": 2}, def.Data)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		def, err := annotation.ParseDefinition("[ok] {\n}", 0, nil)
		require.NoError(t, err)
		assert.Empty(t, def.Raw)
		assert.NotNil(t, def.Data)
		assert.Empty(t, def.Data)
		require.NoError(t, def.Diagnostic)
	})

	t.Run("block scalar keeps final newline", func(t *testing.T) {
		t.Parallel()
		def, err := annotation.ParseDefinition("[ok] {\n  msg: |\n    hello hello\n}\n", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, "msg: |\n  hello hello", def.Raw)
		assert.Equal(t, "hello hello\n", def.Data["msg"])
	})

	t.Run("tab straddling data indent", func(t *testing.T) {
		t.Parallel()
		def, err := annotation.ParseDefinition("[ok] {\n  a: |\n\tx\n}\n", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, def.DataIndent)
		assert.Equal(t, "a: |\n  x", def.Raw)
		require.NoError(t, def.Diagnostic)
		assert.Equal(t, "x\n", def.Data["a"])
	})

	t.Run("mixed tabs and spaces", func(t *testing.T) {
		t.Parallel()
		def, err := annotation.ParseDefinition("[ok] {\n      list:\n\t    - a\n\t    - b\n}", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, 6, def.DataIndent)
		assert.Equal(t, "list:\n  - a\n  - b", def.Raw)
		assert.Equal(t, []any{"a", "b"}, def.Data["list"])
	})

	t.Run("carriage returns stripped", func(t *testing.T) {
		t.Parallel()
		def, err := annotation.ParseDefinition("[ok] {\r\n  msg: hi\r\n}", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, "msg: hi", def.Raw)
	})
}

func TestParseDefinitionMalformedData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "unclosed flow sequence", src: "[ok] {\n  msg: [unclosed\n}"},
		{name: "not a mapping", src: "[ok] {\n  - a\n  - b\n}"},
		{name: "scalar", src: "[ok] {\n  just prose\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			def, err := annotation.ParseDefinition(tt.src, 0, nil)
			require.NoError(t, err, "malformed data must not block recognition")
			assert.Equal(t, "ok", def.ID)
			require.Error(t, def.Diagnostic)
			assert.NotNil(t, def.Data)
			assert.Empty(t, def.Data)
		})
	}
}

func TestParseDefinitionCustomDataParser(t *testing.T) {
	t.Parallel()

	errBad := errors.New("bad data")
	var seen string
	parser := annotation.DataParserFunc(func(text string) (map[string]any, error) {
		seen = text
		return nil, errBad
	})

	def, err := annotation.ParseDefinition("[ok] {\n    line one\n      line two\n}", 0, parser)
	require.NoError(t, err)
	assert.Equal(t, "line one\n  line two\n", seen)
	require.ErrorIs(t, def.Diagnostic, errBad)
	assert.Empty(t, def.Data)
}

func TestParseDefinitionNoMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		pos     int
		wantErr error
		wantMsg string
	}{
		{name: "under-indented body", src: "    [ok] {\n  msg: hi\n    }", wantErr: annotation.ErrUnderIndented},
		{name: "body on brace line", src: "[ok] { msg: hi }", wantErr: annotation.ErrUnexpected, wantMsg: "expected newline but got 'm'"},
		{name: "missing brace", src: "[ok]\n  msg: hi\n", wantErr: annotation.ErrUnexpected, wantMsg: "expected '{' but got 'm'"},
		{name: "unclosed", src: "[ok] {\n  msg: hi\n", wantErr: annotation.ErrUnclosed},
		{name: "nothing after brace", src: "[ok] {\n", wantErr: annotation.ErrUnclosed},
		{name: "close under-indented", src: "  [ok] {\n    msg: hi\n}", wantErr: annotation.ErrUnexpected, wantMsg: "closing '}' indented 0, expected 2"},
		{name: "text after close", src: "[ok] {\n  msg: hi\n} x", wantErr: annotation.ErrUnexpected, wantMsg: "expected newline but got 'x'"},
		{name: "empty id", src: "[] {\n  msg: hi\n}", wantErr: annotation.ErrUnexpected},
		{name: "two ids", src: "[a b] {\n  msg: hi\n}", wantErr: annotation.ErrUnexpected, wantMsg: "expected ']' but got 'b'"},
		{name: "text before bracket", src: "x [ok] {\n  msg: hi\n}", pos: 2, wantErr: annotation.ErrUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			def, err := annotation.ParseDefinition(tt.src, tt.pos, nil)
			require.Error(t, err)
			assert.Nil(t, def)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
