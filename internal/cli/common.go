package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdannotate/internal/configloader"
	"github.com/yaklabco/mdannotate/internal/logging"
	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/lint"
	_ "github.com/yaklabco/mdannotate/pkg/lint/rules" // Register built-in rules
	goldmarkparser "github.com/yaklabco/mdannotate/pkg/parser/goldmark"
	"github.com/yaklabco/mdannotate/pkg/runner"
)

// runFlags are shared by commands that walk a file tree.
type runFlags struct {
	flavor string
	ignore []string
	jobs   int
}

func addRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
}

// apply copies explicitly set flags into cli so they override config files.
func (f *runFlags) apply(cmd *cobra.Command, cli *config.Config) {
	if cmd.Flags().Changed("flavor") {
		cli.Flavor = config.Flavor(f.flavor)
	}
	if cmd.Flags().Changed("ignore") {
		cli.Ignore = f.ignore
	}
	cli.Jobs = f.jobs
}

// session is the resolved state a command runs with.
type session struct {
	ctx     context.Context //nolint:containedctx // Scoped to one command invocation.
	cfg     *config.Config
	workDir string
	color   string
	logger  *log.Logger
}

// newSession loads configuration with cli applied as the top layer.
func newSession(cmd *cobra.Command, cli *config.Config) (*session, error) {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")
	logger.SetLevel(logging.Default().GetLevel())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	color, err := cmd.Flags().GetString("color")
	if err != nil {
		color = "auto"
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, exitError(ExitConfigError, fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, loaded.LoadedFrom)
	}

	cfg := loaded.Config
	logger.Debug("configuration resolved",
		logging.FieldCommand, cmd.Name(),
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	return &session{
		ctx:     ctx,
		cfg:     cfg,
		workDir: workDir,
		color:   color,
		logger:  logger,
	}, nil
}

// run lints the files under paths with the session configuration.
func (s *session) run(paths []string) (*runner.Result, error) {
	parser := goldmarkparser.New(string(s.cfg.Flavor))
	engine := lint.NewEngine(parser, lint.DefaultRegistry)

	lintRunner := runner.New(lint.NewPipeline(engine))

	opts := runner.OptionsFromConfig(s.cfg, paths)
	opts.WorkingDir = s.workDir

	s.logger.Debug("starting run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := lintRunner.Run(logging.WithLogger(s.ctx, s.logger), opts)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}

	s.logger.Debug("run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldFilesFormatted, result.Stats.FilesFormatted,
	)
	return result, nil
}
