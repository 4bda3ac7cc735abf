package annotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdannotate/pkg/annotation"
)

func mustDefinition(t *testing.T, src string, start int) *annotation.Definition {
	t.Helper()
	def, err := annotation.ParseDefinition(src, 0, nil)
	require.NoError(t, err)
	def.Start = start
	return def
}

func mustSpan(t *testing.T, src string, start int) *annotation.Span {
	t.Helper()
	span, err := annotation.ParseSpan(src, 0)
	require.NoError(t, err)
	span.Start = start
	return span
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("resolved reference is clean", func(t *testing.T) {
		t.Parallel()
		var sink annotation.Collector
		annotation.Validate(
			[]*annotation.Definition{mustDefinition(t, "[ok] {\n  msg: hi\n}", 10)},
			[]*annotation.Span{mustSpan(t, "{hi}[ok]", 0)},
			&sink,
		)
		assert.Empty(t, sink.Warnings())
	})

	t.Run("missing definition", func(t *testing.T) {
		t.Parallel()
		var sink annotation.Collector
		annotation.Validate(nil, []*annotation.Span{mustSpan(t, "{hi}[missing]", 7)}, &sink)

		warnings := sink.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, annotation.WarnUndefinedReference, warnings[0].Kind)
		assert.Equal(t, 7, warnings[0].Pos)
		assert.Equal(t, "missing", warnings[0].ID)
		assert.Contains(t, warnings[0].Message, "non-existent definition")
	})

	t.Run("each missing id warns", func(t *testing.T) {
		t.Parallel()
		var sink annotation.Collector
		annotation.Validate(
			[]*annotation.Definition{mustDefinition(t, "[ok] {\n  a: 1\n}", 0)},
			[]*annotation.Span{mustSpan(t, "{x}[a ok b]", 20)},
			&sink,
		)
		assert.Equal(t, 2, sink.Count(annotation.WarnUndefinedReference))
	})

	t.Run("duplicate definitions", func(t *testing.T) {
		t.Parallel()
		var sink annotation.Collector
		annotation.Validate(
			[]*annotation.Definition{
				mustDefinition(t, "[ok] {\n  a: 1\n}", 0),
				mustDefinition(t, "[ok] {\n  a: 2\n}", 20),
			},
			nil,
			&sink,
		)

		warnings := sink.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, annotation.WarnDuplicateDefinition, warnings[0].Kind)
		assert.Equal(t, 20, warnings[0].Pos)
		assert.Equal(t, `multiple definitions for annotation "ok"`, warnings[0].Message)
	})

	t.Run("malformed data surfaces diagnostic", func(t *testing.T) {
		t.Parallel()
		def := mustDefinition(t, "[ok] {\n  msg: [oops\n}", 3)
		var sink annotation.Collector
		annotation.Validate([]*annotation.Definition{def}, []*annotation.Span{mustSpan(t, "{a}[ok]", 0)}, &sink)

		warnings := sink.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, annotation.WarnMalformedData, warnings[0].Kind)
		assert.Equal(t, 3, warnings[0].Pos)
		require.ErrorIs(t, warnings[0].Err, def.Diagnostic)
	})

	t.Run("spans before definitions", func(t *testing.T) {
		t.Parallel()
		var sink annotation.Collector
		annotation.Validate(
			[]*annotation.Definition{mustDefinition(t, "[late] {\n  a: 1\n}", 100)},
			[]*annotation.Span{mustSpan(t, "{x}[late]", 0)},
			&sink,
		)
		assert.Empty(t, sink.Warnings())
	})

	t.Run("unused definitions are opt-in", func(t *testing.T) {
		t.Parallel()
		defs := []*annotation.Definition{
			mustDefinition(t, "[used] {\n  a: 1\n}", 0),
			mustDefinition(t, "[spare] {\n  a: 1\n}", 20),
		}
		spans := []*annotation.Span{mustSpan(t, "{x}[used]", 40)}

		var quiet annotation.Collector
		annotation.Validate(defs, spans, &quiet)
		assert.Empty(t, quiet.Warnings())

		var loud annotation.Collector
		annotation.Validate(defs, spans, &loud, annotation.WithUnusedDefinitions())
		warnings := loud.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, annotation.WarnUnusedDefinition, warnings[0].Kind)
		assert.Equal(t, "spare", warnings[0].ID)
		assert.Equal(t, 20, warnings[0].Pos)
	})

	t.Run("sink func", func(t *testing.T) {
		t.Parallel()
		var kinds []annotation.WarningKind
		sink := annotation.SinkFunc(func(w annotation.Warning) {
			kinds = append(kinds, w.Kind)
		})
		annotation.Validate(nil, []*annotation.Span{mustSpan(t, "{x}[a]", 0)}, sink)
		assert.Equal(t, []annotation.WarningKind{annotation.WarnUndefinedReference}, kinds)
	})
}

func TestWarningKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "duplicate-definition", annotation.WarnDuplicateDefinition.String())
	assert.Equal(t, "malformed-data", annotation.WarnMalformedData.String())
	assert.Equal(t, "undefined-reference", annotation.WarnUndefinedReference.String())
	assert.Equal(t, "unused-definition", annotation.WarnUnusedDefinition.String())
	assert.Equal(t, "WarningKind(0)", annotation.WarningKind(0).String())
}
