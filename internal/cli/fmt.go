package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdannotate/internal/logging"
	"github.com/yaklabco/mdannotate/internal/ui/pretty"
	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/reporter"
	"github.com/yaklabco/mdannotate/pkg/runner"
)

// canonicalFormatRule is the only rule whose fixes fmt applies.
const canonicalFormatRule = "canonical-format"

type fmtFlags struct {
	runFlags
	write  bool
	check  bool
	backup bool
}

const fmtLongDescription = `Rewrite annotations into canonical layout.

Spans become {text}[id other] with single spaces between identifiers.
Definitions move to column zero with their YAML body indented by two
spaces:

  [id] {
    key: value
  }

Only annotation syntax is touched; surrounding Markdown is left as is. A
file is never rewritten if formatting would change what any annotation
says.

By default the changes are printed as a unified diff.

Examples:
  mdannotate fmt                 # Show what would change
  mdannotate fmt --write docs/   # Rewrite files in place
  mdannotate fmt --check         # Exit 1 if anything is not canonical`

func newFmtCommand() *cobra.Command {
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Format annotations into canonical layout",
		Long:  fmtLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, flags)
		},
	}

	addRunFlags(cmd, &flags.runFlags)
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVar(&flags.check, "check", false, "list unformatted files and exit 1 if any")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a .mdannotate.bak copy of rewritten files")
	cmd.MarkFlagsMutuallyExclusive("write", "check")

	return cmd
}

func runFmt(cmd *cobra.Command, args []string, flags *fmtFlags) error {
	cli := &config.Config{
		Fix:         true,
		DryRun:      !flags.write,
		EnableRules: []string{canonicalFormatRule},
		FixRules:    []string{canonicalFormatRule},
		Format:      config.FormatDiff,
	}
	if flags.backup {
		cli.Backups.Enabled = true
	}
	if cmd.Flags().Changed("backup") && !flags.backup {
		cli.NoBackups = true
	}
	flags.apply(cmd, cli)

	sess, err := newSession(cmd, cli)
	if err != nil {
		return err
	}

	result, err := sess.run(args)
	if err != nil {
		return err
	}

	logFailures(sess, result)

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(sess.color, out))

	switch {
	case flags.check:
		listUnformatted(out, result, sess.workDir)
		fmt.Fprint(out, styles.FormatFormatSummary(result.Stats))
		if result.NeedsFormatting() {
			return exitError(ExitIssues, ErrUnformatted)
		}
	case flags.write:
		fmt.Fprint(out, styles.FormatFormatSummary(result.Stats))
	default:
		rep := reporter.NewDiffReporter(reporter.Options{
			Writer:      out,
			Format:      config.FormatDiff,
			Color:       sess.color,
			ShowSummary: true,
			WorkingDir:  sess.workDir,
		})
		if _, err := rep.Report(sess.ctx, result); err != nil {
			return exitError(ExitInternalError, fmt.Errorf("report diff: %w", err))
		}
	}

	if result.Stats.FilesErrored > 0 {
		return exitError(ExitIOError, ErrFilesFailed)
	}
	return nil
}

// logFailures reports files that could not be read, written or safely
// formatted.
func logFailures(sess *session, result *runner.Result) {
	for _, file := range result.Files {
		switch {
		case file.Error != nil:
			sess.logger.Error("format failed", logging.FieldPath, file.Path, logging.FieldError, file.Error)
		case file.Result != nil && file.Result.Skipped:
			sess.logger.Warn("file left unchanged",
				logging.FieldPath, file.Path,
				logging.FieldStatus, file.Result.SkipReason)
		}
	}
}

func listUnformatted(w io.Writer, result *runner.Result, workDir string) {
	for _, file := range result.Files {
		if file.Result != nil && file.Result.Modified && !file.Result.Written && !file.Result.Skipped {
			fmt.Fprintln(w, reporter.DisplayPath(file.Path, workDir))
		}
	}
}
