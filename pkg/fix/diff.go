package fix

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// DiffLineKind classifies a line of a diff hunk.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line present only in the modified content.
	DiffLineAdd

	// DiffLineRemove is a line present only in the original content.
	DiffLineRemove
)

// DiffLine is one line of a hunk without its prefix character.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffHunk is a contiguous group of changes with surrounding context.
// Start fields are 1-based line numbers.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// Diff is the line-level difference between two versions of a file.
type Diff struct {
	// Path is the file path used in headers.
	Path string

	Original []byte
	Modified []byte

	Hunks []DiffHunk

	// Additions and Deletions count changed lines across all hunks.
	Additions int
	Deletions int
}

// GenerateDiff computes a unified diff between original and modified.
// It returns nil when the two are line-for-line identical.
func GenerateDiff(path string, original, modified []byte) *Diff {
	origLines := splitLines(original)
	modLines := splitLines(modified)

	ops := diffOps(origLines, modLines)
	hunks := groupHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	diff := &Diff{
		Path:     path,
		Original: original,
		Modified: modified,
		Hunks:    hunks,
	}
	for _, op := range ops {
		switch op.Kind {
		case DiffLineAdd:
			diff.Additions++
		case DiffLineRemove:
			diff.Deletions++
		case DiffLineContext:
		}
	}
	return diff
}

// HasChanges reports whether the diff contains any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String renders the diff in unified format without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)
	for _, hunk := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)
		for _, line := range hunk.Lines {
			sb.WriteByte(linePrefix(line.Kind))
			sb.WriteString(line.Content)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// FullString renders the diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

func linePrefix(kind DiffLineKind) byte {
	switch kind {
	case DiffLineAdd:
		return '+'
	case DiffLineRemove:
		return '-'
	case DiffLineContext:
	}
	return ' '
}

// splitLines splits content on newlines, dropping the empty element a
// trailing newline would produce.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// diffOps aligns orig and mod on their longest common subsequence and
// returns the resulting edit script. Removals precede additions within a
// changed region.
func diffOps(orig, mod []string) []DiffLine {
	rows, cols := len(orig), len(mod)

	// lcs[i][j] is the LCS length of orig[i:] and mod[j:].
	lcs := make([][]int, rows+1)
	for i := range lcs {
		lcs[i] = make([]int, cols+1)
	}
	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]DiffLine, 0, rows+cols)
	i, j := 0, 0
	for i < rows && j < cols {
		switch {
		case orig[i] == mod[j]:
			ops = append(ops, DiffLine{Kind: DiffLineContext, Content: orig[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, DiffLine{Kind: DiffLineRemove, Content: orig[i]})
			i++
		default:
			ops = append(ops, DiffLine{Kind: DiffLineAdd, Content: mod[j]})
			j++
		}
	}
	for ; i < rows; i++ {
		ops = append(ops, DiffLine{Kind: DiffLineRemove, Content: orig[i]})
	}
	for ; j < cols; j++ {
		ops = append(ops, DiffLine{Kind: DiffLineAdd, Content: mod[j]})
	}
	return ops
}

// groupHunks cuts the edit script into hunks, merging changes separated by
// at most 2*contextLines unchanged lines.
func groupHunks(ops []DiffLine) []DiffHunk {
	var hunks []DiffHunk

	origLine, modLine := 1, 1
	idx := 0
	for idx < len(ops) {
		if ops[idx].Kind == DiffLineContext {
			origLine++
			modLine++
			idx++
			continue
		}

		// Back up over leading context.
		lead := 0
		for lead < contextLines && idx-lead-1 >= 0 && ops[idx-lead-1].Kind == DiffLineContext {
			lead++
		}
		hunk := DiffHunk{
			OriginalStart: origLine - lead,
			ModifiedStart: modLine - lead,
		}
		start := idx - lead

		// Extend while the next change is close enough.
		end := idx
		for end < len(ops) {
			if ops[end].Kind != DiffLineContext {
				end++
				continue
			}
			run := 0
			for end+run < len(ops) && ops[end+run].Kind == DiffLineContext {
				run++
			}
			if end+run == len(ops) || run > 2*contextLines {
				end += min(run, contextLines)
				break
			}
			end += run
		}

		for _, op := range ops[start:end] {
			hunk.Lines = append(hunk.Lines, op)
			switch op.Kind {
			case DiffLineContext:
				hunk.OriginalCount++
				hunk.ModifiedCount++
			case DiffLineRemove:
				hunk.OriginalCount++
			case DiffLineAdd:
				hunk.ModifiedCount++
			}
		}
		hunks = append(hunks, hunk)

		// Advance line counters over the ops consumed after the lead.
		for _, op := range ops[idx:end] {
			if op.Kind != DiffLineAdd {
				origLine++
			}
			if op.Kind != DiffLineRemove {
				modLine++
			}
		}
		idx = end
	}
	return hunks
}
