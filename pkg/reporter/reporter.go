// Package reporter writes run results as text, JSON, diffs or summary
// tables.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/runner"
)

// Reporter writes a run result.
type Reporter interface {
	// Report writes result and returns the number of issues reported.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New returns the Reporter for opts.Format.
//
//nolint:ireturn // the format picks the implementation.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	switch opts.Format {
	case config.FormatText, "":
		return NewTextReporter(opts), nil
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatDiff:
		return NewDiffReporter(opts), nil
	case config.FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", opts.Format)
	}
}

// DisplayPath returns path relative to workDir when that does not climb out
// of it.
func DisplayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
