// Package fix builds, validates and applies text edits, and renders the
// difference between original and edited content as a unified diff.
package fix

// TextEdit replaces the bytes [StartOffset, EndOffset) of a file with NewText.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Len returns the number of source bytes the edit replaces.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// EditBuilder accumulates text edits for one file.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{Edits: make([]TextEdit, 0)}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// ReplaceIfChanged adds a replacement only when newText differs from the
// bytes currently in [start, end). It reports whether an edit was added.
func (b *EditBuilder) ReplaceIfChanged(content []byte, start, end int, newText string) bool {
	if start < 0 || end > len(content) || start > end {
		return false
	}
	if string(content[start:end]) == newText {
		return false
	}
	b.ReplaceRange(start, end, newText)
	return true
}

// Len returns the number of accumulated edits.
func (b *EditBuilder) Len() int {
	return len(b.Edits)
}
