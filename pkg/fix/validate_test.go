package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdannotate/pkg/fix"
)

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edit    fix.TextEdit
		wantMsg string
	}{
		{name: "negative start", edit: fix.TextEdit{StartOffset: -1, EndOffset: 2}, wantMsg: "start offset is negative"},
		{name: "inverted", edit: fix.TextEdit{StartOffset: 3, EndOffset: 2}, wantMsg: "end offset is before start offset"},
		{name: "past end", edit: fix.TextEdit{StartOffset: 0, EndOffset: 11}, wantMsg: "end offset 11 exceeds content length 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := fix.ValidateEdits([]fix.TextEdit{tt.edit}, 10)
			var verr *fix.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.edit, verr.Edit)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	require.NoError(t, fix.ValidateEdits([]fix.TextEdit{{StartOffset: 10, EndOffset: 10}}, 10))
}

func TestPrepareEdits(t *testing.T) {
	t.Parallel()

	t.Run("sorts", func(t *testing.T) {
		t.Parallel()
		in := []fix.TextEdit{
			{StartOffset: 5, EndOffset: 6, NewText: "b"},
			{StartOffset: 0, EndOffset: 1, NewText: "a"},
		}
		got, err := fix.PrepareEdits(in, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, got[0].StartOffset)
		assert.Equal(t, 5, got[1].StartOffset)
		assert.Equal(t, 5, in[0].StartOffset, "input must not be reordered")
	})

	t.Run("rejects overlap", func(t *testing.T) {
		t.Parallel()
		_, err := fix.PrepareEdits([]fix.TextEdit{
			{StartOffset: 0, EndOffset: 4},
			{StartOffset: 2, EndOffset: 6},
		}, 10)
		var cerr *fix.ConflictError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "overlapping edits: [0:4] and [2:6]", err.Error())
	})

	t.Run("adjacent edits do not conflict", func(t *testing.T) {
		t.Parallel()
		got, err := fix.PrepareEdits([]fix.TextEdit{
			{StartOffset: 2, EndOffset: 4},
			{StartOffset: 0, EndOffset: 2},
		}, 10)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestPrepareEditsFiltered(t *testing.T) {
	t.Parallel()

	accepted, skipped, err := fix.PrepareEditsFiltered([]fix.TextEdit{
		{StartOffset: 6, EndOffset: 9, NewText: "c"},
		{StartOffset: 0, EndOffset: 5, NewText: "a"},
		{StartOffset: 3, EndOffset: 7, NewText: "b"},
	}, 10)
	require.NoError(t, err)
	require.Len(t, accepted, 2)
	assert.Equal(t, "a", accepted[0].NewText)
	assert.Equal(t, "c", accepted[1].NewText)
	require.Len(t, skipped, 1)
	assert.Equal(t, "b", skipped[0].NewText)

	_, _, err = fix.PrepareEditsFiltered([]fix.TextEdit{{StartOffset: 0, EndOffset: 20}}, 10)
	require.Error(t, err)

	accepted, skipped, err = fix.PrepareEditsFiltered(nil, 10)
	require.NoError(t, err)
	assert.Nil(t, accepted)
	assert.Nil(t, skipped)
}
