package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdannotate/internal/logging"
	"github.com/yaklabco/mdannotate/pkg/lint"
)

// Runner processes many files through a lint.Pipeline. Per-file debug
// output goes to the logger carried by the run context.
type Runner struct {
	Pipeline *lint.Pipeline
}

// New creates a Runner.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files and processes them with up to opts.Jobs workers.
// Per-file failures are recorded in the outcome rather than aborting the
// run; the returned error is for discovery failures and cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, files, opts)
}

// RunFiles processes an already discovered file list. Outcomes keep the
// order of files.
func (r *Runner) RunFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	result := newResult(len(files))
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.process(groupCtx, path, opts, pipelineOpts)
			done[i] = true
			return nil
		})
	}
	// Workers only return context errors, reported below.
	_ = group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.add(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) process(ctx context.Context, path string, opts Options, pipelineOpts lint.PipelineOptions) FileOutcome {
	outcome := FileOutcome{Path: path}
	logger := logging.FromContext(ctx)

	pr, err := r.Pipeline.ProcessFile(ctx, path, opts.Config, pipelineOpts)
	if err != nil {
		outcome.Error = err
		logger.Debug("file failed", logging.FieldPath, path, logging.FieldError, err)
		return outcome
	}

	outcome.Result = pr
	logger.Debug("file processed",
		logging.FieldPath, path,
		logging.FieldSpans, len(pr.Doc.Spans),
		logging.FieldDefinitions, len(pr.Doc.Definitions),
		logging.FieldDiagnostics, len(pr.Diagnostics),
		logging.FieldStatus, pr.Summary(),
	)
	return outcome
}
