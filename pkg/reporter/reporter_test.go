package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/lint"
	"github.com/yaklabco/mdannotate/pkg/lint/rules"
	"github.com/yaklabco/mdannotate/pkg/parser/goldmark"
	"github.com/yaklabco/mdannotate/pkg/reporter"
	"github.com/yaklabco/mdannotate/pkg/runner"
)

const (
	cleanDoc = "Some {text}[note].\n\n[note] {\n  msg: hi\n}\n"
	messyDoc = "Some { text }[note missing].\n\n[note] {\n  msg: hi\n}\n"
)

// run processes files in a temp dir and returns the result and the dir.
func run(t *testing.T, cfg *config.Config, files map[string]string) (*runner.Result, string) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	r := runner.New(lint.NewPipeline(lint.NewEngine(goldmark.New(goldmark.FlavorCommonMark), registry)))

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	return result, dir
}

func report(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"
	rep, err := reporter.New(opts)
	require.NoError(t, err)

	n, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return buf.String(), n
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range []config.OutputFormat{"", config.FormatText, config.FormatJSON, config.FormatDiff, config.FormatSummary} {
		rep, err := reporter.New(reporter.Options{Format: format, Writer: &bytes.Buffer{}})
		require.NoError(t, err, format)
		assert.NotNil(t, rep, format)
	}

	_, err := reporter.New(reporter.Options{Format: "sarif"})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	result, dir := run(t, config.NewConfig(), map[string]string{"clean.md": cleanDoc, "messy.md": messyDoc})

	opts := reporter.DefaultOptions()
	opts.WorkingDir = dir
	opts.RuleFormat = config.RuleFormatCombined
	out, n := report(t, opts, result)

	assert.Equal(t, 2, n)
	assert.Contains(t, out, "messy.md (2 issues)\n")
	assert.Contains(t, out, "  messy.md:1:6  warning  annotation \"missing\" references a non-existent definition  (AN002/undefined-reference)\n")
	assert.Contains(t, out, "      Some { text }[note missing].\n")
	assert.Contains(t, out, "(AN005/canonical-format)")
	assert.Contains(t, out, "hint: Run mdannotate fmt --write")
	assert.NotContains(t, out, "clean.md")
	assert.Contains(t, out, "2 issues (2 warnings) in 1 file, 1 fixable\n")
}

func TestTextReporterEmpty(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.DefaultOptions(), &runner.Result{})
	assert.Zero(t, n)
	assert.Equal(t, "No Markdown files found.\n", out)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	result, dir := run(t, config.NewConfig(), map[string]string{"clean.md": cleanDoc, "messy.md": messyDoc})

	out, n := report(t, reporter.Options{Format: config.FormatJSON, WorkingDir: dir}, result)
	assert.Equal(t, 2, n)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, reporter.JSONVersion, decoded.Version)
	require.Len(t, decoded.Files, 2)

	assert.Equal(t, "clean.md", decoded.Files[0].Path)
	assert.Empty(t, decoded.Files[0].Diagnostics)
	assert.Equal(t, 1, decoded.Files[0].Spans)

	messy := decoded.Files[1]
	assert.Equal(t, "messy.md", messy.Path)
	require.Len(t, messy.Diagnostics, 2)
	assert.Equal(t, "AN002", messy.Diagnostics[0].RuleID)
	assert.Equal(t, "warning", messy.Diagnostics[0].Severity)
	assert.Empty(t, messy.Diagnostics[0].Fixes)
	assert.Equal(t, "AN005", messy.Diagnostics[1].RuleID)
	require.Len(t, messy.Diagnostics[1].Fixes, 1)
	assert.Equal(t, "{text}[note missing]", messy.Diagnostics[1].Fixes[0].NewText)

	assert.Equal(t, 2, decoded.Summary.FilesChecked)
	assert.Equal(t, 2, decoded.Summary.Issues)
	assert.Equal(t, 1, decoded.Summary.Fixable)
	assert.Equal(t, map[string]int{"warning": 2}, decoded.Summary.BySeverity)
}

func TestJSONReporterCompact(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: config.FormatJSON, Compact: true}, nil)
	assert.Equal(t,
		`{"version":"1","files":[],"summary":{"filesChecked":0,"filesWithIssues":0,"filesFormatted":0,`+
			`"filesErrored":0,"spans":0,"definitions":0,"issues":0,"fixable":0,"bySeverity":{}}}`+"\n",
		out)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.DryRun = true
	result, dir := run(t, cfg, map[string]string{"clean.md": cleanDoc, "messy.md": messyDoc})

	out, n := report(t, reporter.Options{Format: config.FormatDiff, WorkingDir: dir, ShowSummary: true}, result)
	assert.Equal(t, 1, n)
	assert.Equal(t, "diff --git a/messy.md b/messy.md\n"+
		"--- a/messy.md\n"+
		"+++ b/messy.md\n"+
		"@@ -1,4 +1,4 @@\n"+
		"-Some { text }[note missing].\n"+
		"+Some {text}[note missing].\n"+
		" \n"+
		" [note] {\n"+
		"   msg: hi\n"+
		"\n"+
		"1 file changed, 1 insertion(+), 1 deletion(-)\n",
		out)
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	result, dir := run(t, config.NewConfig(), map[string]string{
		"clean.md": cleanDoc,
		"messy.md": messyDoc,
		"undef.md": "{a}[b]\n",
	})

	out, n := report(t, reporter.Options{Format: config.FormatSummary, WorkingDir: dir, RuleFormat: config.RuleFormatID}, result)
	assert.Equal(t, 3, n)
	assert.Regexp(t, `(?m)^Rules\s+Issues\s+Errors\s+Warnings\s+Fixable$`, out)
	assert.Regexp(t, `(?m)^AN002\s+2\s+0\s+2\s*$`, out)
	assert.Regexp(t, `(?m)^AN005\s+1\s+0\s+1\s+yes$`, out)
	assert.Regexp(t, `(?m)^messy\.md\s+2\s+0\s+2$`, out)
	assert.Regexp(t, `(?m)^undef\.md\s+1\s+0\s+1$`, out)
	assert.Contains(t, out, "Total: 3 issues (3 warnings) in 2 files, 1 fixable\n")

	clean, _ := run(t, config.NewConfig(), map[string]string{"clean.md": cleanDoc})
	out, n = report(t, reporter.Options{Format: config.FormatSummary}, clean)
	assert.Zero(t, n)
	assert.Contains(t, out, "No issues found")
}
