package annotation

import "unicode/utf8"

// Segment is a half-open byte range [Start, Stop) of a source string.
type Segment struct {
	Start int
	Stop  int
}

// Value returns the text covered by the segment.
func (s Segment) Value(src string) string {
	return src[s.Start:s.Stop]
}

// Len returns the segment length in bytes.
func (s Segment) Len() int {
	return s.Stop - s.Start
}

// IsEmpty reports whether the segment covers nothing.
func (s Segment) IsEmpty() bool {
	return s.Start == s.Stop
}

// TrimHorizontal narrows the segment past outer non-newline whitespace.
func (s Segment) TrimHorizontal(src string) Segment {
	s.Start = AdvanceWhile(src[:s.Stop], s.Start, IsWhitespace)
	for s.Stop > s.Start {
		r, size := utf8.DecodeLastRuneInString(src[s.Start:s.Stop])
		if !IsWhitespace(r) {
			break
		}
		s.Stop -= size
	}
	return s
}

// Record accumulates the segments captured while a sequence runs.
// A plain capture stores one segment; ListPlus stores one per item.
type Record map[string][]Segment

// First returns the first segment captured under key.
func (r Record) First(key string) (Segment, bool) {
	segs := r[key]
	if len(segs) == 0 {
		return Segment{}, false
	}
	return segs[0], true
}

// All returns every segment captured under key.
func (r Record) All(key string) []Segment {
	return r[key]
}

// Strings returns the text of every segment captured under key.
func (r Record) Strings(src, key string) []string {
	segs := r[key]
	out := make([]string, len(segs))
	for i, seg := range segs {
		out[i] = seg.Value(src)
	}
	return out
}

// Merge copies the entries of other into r, replacing existing keys.
func (r Record) Merge(other Record) {
	for k, v := range other {
		r[k] = v
	}
}

// Step is one parse step. Given the source, the current offset and the
// record accumulated so far, it returns the offset after whatever it
// consumed, or an error when it does not match.
type Step func(src string, pos int, rec Record) (int, error)

// Sequence runs steps in order, threading the offset and record through
// them. Each step's captures are merged into rec only once it succeeds.
// The first failure aborts the sequence and is returned unchanged; there
// is no backtracking.
func Sequence(steps ...Step) Step {
	return func(src string, pos int, rec Record) (int, error) {
		for _, step := range steps {
			captured := make(Record)
			next, err := step(src, pos, captured)
			if err != nil {
				return next, err
			}
			rec.Merge(captured)
			pos = next
		}
		return pos, nil
	}
}

// Run applies step at pos with a fresh record.
func Run(step Step, src string, pos int) (int, Record, error) {
	rec := make(Record)
	end, err := step(src, pos, rec)
	if err != nil {
		return end, nil, err
	}
	return end, rec, nil
}

// ListPlus matches one or more items separated by delim. Each item step
// must capture under key; the captured segments are appended to rec[key]
// in order. Matching stops at the first failure of either step and
// succeeds only if at least one item matched.
func ListPlus(key string, item, delim Step) Step {
	return func(src string, pos int, rec Record) (int, error) {
		var items []Segment
		for {
			scratch := make(Record)
			next, err := item(src, pos, scratch)
			if err != nil {
				break
			}
			items = append(items, scratch.All(key)...)
			pos = next

			next, err = delim(src, pos, scratch)
			if err != nil {
				break
			}
			pos = next
		}
		if len(items) == 0 {
			return pos, fail(pos, ErrEmptyList, "need at least one item in list")
		}
		rec[key] = items
		return pos, nil
	}
}

// Block matches the literal open byte followed by everything up to an
// unescaped close byte. The content between the delimiters is captured
// under key; the returned offset is just past close.
func Block(key string, openCh, closeCh byte) Step {
	return block(key, openCh, closeCh, "")
}

// InlineBlock is Block confined to one line: an unescaped newline or an
// unescaped nested open byte ends the match with a failure.
func InlineBlock(key string, openCh, closeCh byte) Step {
	return block(key, openCh, closeCh, "\n"+string(openCh))
}

func block(key string, openCh, closeCh byte, forbid string) Step {
	return func(src string, pos int, rec Record) (int, error) {
		start, err := AdvanceChar(src, pos, openCh)
		if err != nil {
			return pos, err
		}
		end, err := ScanUnescaped(src, start, closeCh, forbid)
		if err != nil {
			return end, err
		}
		rec[key] = []Segment{{Start: start, Stop: end}}
		return end + 1, nil
	}
}

// Char matches the literal byte ch.
func Char(ch byte) Step {
	return func(src string, pos int, _ Record) (int, error) {
		return AdvanceChar(src, pos, ch)
	}
}

// Skip consumes zero or more runes satisfying pred. It never fails.
func Skip(pred func(rune) bool) Step {
	return func(src string, pos int, _ Record) (int, error) {
		return AdvanceWhile(src, pos, pred), nil
	}
}

// Skip1 consumes one or more runes satisfying pred.
func Skip1(pred func(rune) bool) Step {
	return func(src string, pos int, _ Record) (int, error) {
		end := AdvanceWhile(src, pos, pred)
		if end == pos {
			return pos, fail(pos, ErrUnexpected, "unexpected %s", describeAt(src, pos))
		}
		return end, nil
	}
}

// Capture consumes one or more runes satisfying pred and records them
// under key.
func Capture(key string, pred func(rune) bool) Step {
	return func(src string, pos int, rec Record) (int, error) {
		end := AdvanceWhile(src, pos, pred)
		if end == pos {
			return pos, fail(pos, ErrUnexpected, "expected %s but got %s", key, describeAt(src, pos))
		}
		rec[key] = []Segment{{Start: pos, Stop: end}}
		return end, nil
	}
}
