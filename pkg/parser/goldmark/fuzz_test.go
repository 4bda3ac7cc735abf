package goldmark

import (
	"bytes"
	"context"
	"testing"

	"github.com/yaklabco/mdannotate/pkg/annotation"
)

// FuzzParse fuzzes the full parser with random input.
func FuzzParse(f *testing.F) {
	// Add seed corpus.
	seeds := []string{
		"",
		"Hello, world!",
		"{hi}[ok]",
		"{_hi_}[a b]",
		`\{hi}[ok]`,
		"{hi}[]",
		"[ok] {\n  msg: hi\n}",
		"  [ok]{\n      beep: boop\n  }\n",
		"[ok] {\n  msg: [bad\n}\n",
		"> {q}[x]\n\n- {l}[y]\n",
		"{a}[x]\n\n[x] {\n\n  k: v\n\n}\ntrailing {b}[x]",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		ctx := context.Background()
		p := New(FlavorCommonMark)

		// Parse should never panic.
		doc, err := p.Parse(ctx, "fuzz.md", data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !bytes.Equal(doc.Content, data) {
			t.Error("content mismatch")
		}

		for _, span := range doc.Spans {
			if span.Start < 0 || span.End > len(data) || span.Start >= span.End {
				t.Errorf("span range [%d, %d) out of bounds", span.Start, span.End)
			}
			if len(span.IDs) == 0 {
				t.Error("span without ids")
			}
		}

		for _, def := range doc.Definitions {
			if def.Start < 0 || def.Next > len(data) || def.Start >= def.Next {
				t.Errorf("definition range [%d, %d) out of bounds", def.Start, def.Next)
			}
			if def.Data == nil {
				t.Error("definition with nil data")
			}
		}

		// Validation never fails, it only warns.
		var sink annotation.Collector
		Validate(doc, &sink)
	})
}

// FuzzParseGFM fuzzes the GFM parser with random input.
func FuzzParseGFM(f *testing.F) {
	seeds := []string{
		"",
		"| {a}[x] | b |\n|---|---|\n| 1 | 2 |",
		"{~~gone~~}[ok]",
		"- [x] {done}[task]",
		"https://example.com {link}[ok]",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		doc, err := New(FlavorGFM).Parse(context.Background(), "fuzz.md", data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Root == nil {
			t.Error("expected non-nil root")
		}
	})
}

// FuzzDefinitionCanonical verifies canonical definitions reparse to the
// same canonical text.
func FuzzDefinitionCanonical(f *testing.F) {
	seeds := []string{
		"[ok] {\n  msg: hi\n}",
		"  [ok]{\n      beep: boop\n      msg: |\n        hello hello\n  }",
		"\t[t] {\n\t\tlist:\n\t\t  - a\n\t}",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		def, err := annotation.ParseDefinition(src, annotation.StripBlankLines(src, 0), nil)
		if err != nil {
			return
		}

		once := def.Canonical()
		again, err := annotation.ParseDefinition(once, 0, nil)
		if err != nil {
			t.Fatalf("canonical form %q does not parse: %v", once, err)
		}
		if again.Canonical() != once {
			t.Errorf("canonical form not stable:\n%q\n%q", once, again.Canonical())
		}
	})
}
