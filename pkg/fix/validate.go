package fix

import (
	"fmt"
	"slices"
)

// ValidationError describes an edit whose range does not fit the content.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ConflictError describes two overlapping edits.
type ConflictError struct {
	First  TextEdit
	Second TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.StartOffset, e.First.EndOffset,
		e.Second.StartOffset, e.Second.EndOffset)
}

// ValidateEdits checks every edit range against contentLen and returns the
// first invalid one.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits orders edits by start offset, then end offset. The sort is
// stable so edits at the same range keep the order they were added in.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if a.StartOffset != b.StartOffset {
			return a.StartOffset - b.StartOffset
		}
		return a.EndOffset - b.EndOffset
	})
}

// PrepareEdits validates and sorts edits and fails on the first overlap.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)

	for i := 1; i < len(sorted); i++ {
		if sorted[i].StartOffset < sorted[i-1].EndOffset {
			return nil, &ConflictError{First: sorted[i-1], Second: sorted[i]}
		}
	}
	return sorted, nil
}

// FilterConflicts splits sorted edits into those that can be applied
// together and those that overlap an earlier accepted edit.
func FilterConflicts(edits []TextEdit) ([]TextEdit, []TextEdit) {
	if len(edits) == 0 {
		return nil, nil
	}

	accepted := make([]TextEdit, 0, len(edits))
	var skipped []TextEdit

	end := -1
	for _, edit := range edits {
		if edit.StartOffset < end {
			skipped = append(skipped, edit)
			continue
		}
		accepted = append(accepted, edit)
		end = edit.EndOffset
	}
	return accepted, skipped
}

// PrepareEditsFiltered validates and sorts edits like PrepareEdits but
// drops conflicting edits instead of failing. Skipped edits are retried by
// the caller on a later pass. Only validation failures return an error.
func PrepareEditsFiltered(edits []TextEdit, contentLen int) ([]TextEdit, []TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, nil, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)

	accepted, skipped := FilterConflicts(sorted)
	return accepted, skipped, nil
}
