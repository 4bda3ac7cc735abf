package fix

import "bytes"

// ApplyEdits applies edits that were prepared by PrepareEdits or
// PrepareEditsFiltered (sorted and non-overlapping) to content.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	grow := 0
	for _, e := range edits {
		grow += len(e.NewText) - e.Len()
	}

	var out bytes.Buffer
	out.Grow(len(content) + grow)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}
