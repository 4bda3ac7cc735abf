package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/reporter"
)

type checkFlags struct {
	runFlags
	format       string
	ruleFormat   string
	enable       []string
	disable      []string
	reportUnused bool
	strict       bool
	noContext    bool
	compact      bool
}

const checkLongDescription = `Check annotated Markdown files.

By default, checks all .md and .markdown files in the current directory
and subdirectories. Each file is parsed, every span is matched against the
definitions in the same file, and the following are reported:

  AN001 duplicate-definition   an identifier is defined more than once
  AN002 undefined-reference    a span names an identifier with no definition
  AN003 malformed-data         a definition body is not a YAML mapping
  AN004 unused-definition      a definition is never referenced (opt-in)
  AN005 canonical-format       an annotation is not in canonical layout

Examples:
  mdannotate check                       # Check current directory
  mdannotate check docs/ README.md       # Check specific paths
  mdannotate check --format json         # Machine-readable output for CI
  mdannotate check --enable unused-definition
  mdannotate check --strict              # Fail on warnings too`

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report annotation problems in Markdown files",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	addRunFlags(cmd, &flags.runFlags)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff, summary")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rules to enable, by ID or name")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rules to disable, by ID or name")
	cmd.Flags().BoolVar(&flags.reportUnused, "report-unused", false, "report definitions no span references")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	format := config.OutputFormat(flags.format)
	if !format.IsValid() {
		return exitError(ExitInvalidUsage,
			fmt.Errorf("invalid format %q: must be text, json, diff or summary", flags.format))
	}

	cli := &config.Config{
		Format:       format,
		RuleFormat:   config.RuleFormat(flags.ruleFormat),
		EnableRules:  flags.enable,
		DisableRules: flags.disable,
		ReportUnused: flags.reportUnused,
		Strict:       flags.strict,
	}
	flags.apply(cmd, cli)

	// The diff format shows what fmt would change.
	if format == config.FormatDiff {
		cli.Fix = true
		cli.DryRun = true
		cli.FixRules = []string{canonicalFormatRule}
	}

	sess, err := newSession(cmd, cli)
	if err != nil {
		return err
	}

	result, err := sess.run(args)
	if err != nil {
		return err
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      sess.cfg.Format,
		Color:       sess.color,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
		RuleFormat:  sess.cfg.RuleFormat,
		WorkingDir:  sess.workDir,
	})
	if err != nil {
		return exitError(ExitInvalidUsage, fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(sess.ctx, result); err != nil {
		return exitError(ExitInternalError, fmt.Errorf("report results: %w", err))
	}

	switch code := ExitCodeFromResult(result, sess.cfg.Strict); code {
	case ExitSuccess:
		return nil
	case ExitIOError:
		return exitError(code, ErrFilesFailed)
	default:
		return exitError(code, ErrIssuesFound)
	}
}
