package document

import "sort"

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the file.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (d *Document) LineAt(offset int) (int, int) {
	if offset < 0 || len(d.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(d.Content) {
		last := d.Lines[len(d.Lines)-1]
		return len(d.Lines), offset - last.StartOffset + 1
	}

	lineIdx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(d.Lines) {
		lineIdx = len(d.Lines) - 1
	}

	info := d.Lines[lineIdx]
	if offset < info.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, offset - info.StartOffset + 1
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (d *Document) LineContent(line int) []byte {
	if line < 1 || line > len(d.Lines) {
		return nil
	}

	info := d.Lines[line-1]
	return d.Content[info.StartOffset:info.NewlineStart]
}
