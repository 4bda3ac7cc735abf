package lint

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/document"
	"github.com/yaklabco/mdannotate/pkg/fix"
	"github.com/yaklabco/mdannotate/pkg/fsutil"
)

// DefaultMaxFixPasses bounds the fix loop. Canonical edits converge in one
// pass; further passes only pick up edits skipped for overlapping.
const DefaultMaxFixPasses = 5

// Pipeline error categories, checked with errors.Is.
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrParseFailure      = errors.New("parse failure")
	ErrWriteFailure      = errors.New("write failure")
	ErrFixChangedMeaning = errors.New("fix changed annotation content")
)

// PipelineResult is the outcome of processing one file.
type PipelineResult struct {
	// FileResult is the lint result of the final pass.
	*FileResult

	Path string

	// OriginalInfo is the file state before processing (nil for content).
	OriginalInfo *fsutil.FileInfo

	// Modified is true if fixes changed the content.
	Modified bool

	// ModifiedContent is the fixed content, nil when unmodified.
	ModifiedContent []byte

	// Diff is set in dry-run mode when the content changed.
	Diff *fix.Diff

	// Skipped is true when a fix was computed but not written.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool

	FixPasses         int
	TotalEditsApplied int
}

// Summary returns a short human-readable status.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "formatted (backup created)"
	case pr.Written:
		return "formatted"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls pipeline behavior.
type PipelineOptions struct {
	// Fix applies fixable diagnostics.
	Fix bool

	// DryRun produces a diff instead of writing.
	DryRun bool

	// Backup writes a sidecar copy before overwriting a file.
	Backup bool

	// VerifyFix re-parses fixed content and refuses the fix unless every
	// span and definition survived with the same identifiers and data.
	VerifyFix bool

	// MaxFixPasses limits fix iterations; 0 means DefaultMaxFixPasses.
	MaxFixPasses int
}

// DefaultPipelineOptions returns lint-only options.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{VerifyFix: true}
}

// PipelineOptionsFromConfig derives options from cfg.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := DefaultPipelineOptions()
	if cfg == nil {
		return opts
	}
	opts.Fix = cfg.Fix
	opts.DryRun = cfg.DryRun
	opts.Backup = cfg.Backups.Enabled && !cfg.NoBackups
	return opts
}

// Pipeline runs the engine over a file and safely writes fixes back.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline creates a Pipeline.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile lints path and, in fix mode, rewrites it:
//  1. Read and hash the file.
//  2. Lint and apply edits in memory until no edits remain.
//  3. Verify the fixed content still means the same.
//  4. In dry-run mode, stop with a diff.
//  5. Skip the write if the file changed on disk meanwhile.
//  6. Back up, then write atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, original, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || result.Skipped || opts.DryRun {
		return result, nil
	}

	changed, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup {
		created, err := fsutil.CreateBackup(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent runs the lint and fix loop over in-memory content without
// touching the file system.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	original []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	content := original
	var first *document.Document
	for range maxPasses {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		fileResult, err := p.Engine.LintFile(ctx, path, content, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		result.FileResult = fileResult
		if first == nil {
			first = fileResult.Doc
		}

		if !opts.Fix || len(fileResult.Edits) == 0 {
			break
		}

		content = fix.ApplyEdits(content, fileResult.Edits)
		result.FixPasses++
		result.TotalEditsApplied += len(fileResult.Edits)
		result.Modified = true
	}

	if !result.Modified {
		return result, nil
	}

	// The last pass may have applied edits without relinting.
	if len(result.Edits) > 0 {
		fileResult, err := p.Engine.LintFile(ctx, path, content, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		result.FileResult = fileResult
	}

	if opts.VerifyFix {
		if err := SameAnnotations(first, result.Doc); err != nil {
			result.Skipped = true
			result.SkipReason = err.Error()
			result.Modified = false
			return result, nil
		}
	}

	result.ModifiedContent = content
	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, original, content)
	}
	return result, nil
}

// SameAnnotations reports an ErrFixChangedMeaning error unless before and
// after hold the same spans (body and IDs) and definitions (ID and data) in
// the same order.
func SameAnnotations(before, after *document.Document) error {
	if len(before.Spans) != len(after.Spans) {
		return fmt.Errorf("%w: %d spans became %d",
			ErrFixChangedMeaning, len(before.Spans), len(after.Spans))
	}
	for i, span := range before.Spans {
		got := after.Spans[i]
		if span.Body != got.Body || !slices.Equal(span.IDs, got.IDs) {
			return fmt.Errorf("%w: span %q changed", ErrFixChangedMeaning, span.Body)
		}
	}

	if len(before.Definitions) != len(after.Definitions) {
		return fmt.Errorf("%w: %d definitions became %d",
			ErrFixChangedMeaning, len(before.Definitions), len(after.Definitions))
	}
	for i, def := range before.Definitions {
		got := after.Definitions[i]
		if def.ID != got.ID || !reflect.DeepEqual(def.Data, got.Data) {
			return fmt.Errorf("%w: definition %q changed", ErrFixChangedMeaning, def.ID)
		}
	}
	return nil
}

// categorizeError wraps file errors with the pipeline category.
func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError reports whether err belongs to a pipeline category.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrWriteFailure)
}
