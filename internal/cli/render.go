package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdannotate/internal/logging"
	"github.com/yaklabco/mdannotate/internal/ui/pretty"
	"github.com/yaklabco/mdannotate/pkg/annotation"
	"github.com/yaklabco/mdannotate/pkg/config"
	goldmarkparser "github.com/yaklabco/mdannotate/pkg/parser/goldmark"
)

// stdinPath names standard input on the command line.
const stdinPath = "-"

type renderFlags struct {
	flavor string
	output string
	quiet  bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render an annotated Markdown file to HTML",
		Long: `Render an annotated Markdown file to HTML.

Each span becomes a <span class="annotation"> listing its identifiers, and
each definition becomes an empty <div class="annotation-definition"> holding
the JSON form of its data. Reads standard input when the file is "-" or
omitted.

Validation problems are logged to standard error but never stop rendering.

Examples:
  mdannotate render notes.md > notes.html
  cat notes.md | mdannotate render -o notes.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := stdinPath
			if len(args) == 1 {
				path = args[0]
			}
			return runRender(cmd, path, flags)
		},
	}

	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write HTML to file instead of stdout")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "do not log validation warnings")

	return cmd
}

func runRender(cmd *cobra.Command, path string, flags *renderFlags) (err error) {
	cli := &config.Config{}
	if cmd.Flags().Changed("flavor") {
		cli.Flavor = config.Flavor(flags.flavor)
	}

	sess, err := newSession(cmd, cli)
	if err != nil {
		return err
	}

	if f, ok := cmd.InOrStdin().(*os.File); ok && path == stdinPath && pretty.IsInteractive(f) {
		sess.logger.Info("reading from standard input, end with Ctrl-D")
	}

	content, err := readSource(cmd.InOrStdin(), path)
	if err != nil {
		return exitError(ExitIOError, err)
	}

	parser := goldmarkparser.New(string(sess.cfg.Flavor))
	doc, err := parser.Parse(sess.ctx, path, content)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if !flags.quiet {
		var opts []annotation.ValidateOption
		if sess.cfg.ReportUnused {
			opts = append(opts, annotation.WithUnusedDefinitions())
		}
		goldmarkparser.Validate(doc, annotation.SinkFunc(func(w annotation.Warning) {
			line, col := doc.LineAt(w.Pos)
			sess.logger.Warn(w.Message,
				logging.FieldPath, fmt.Sprintf("%s:%d:%d", path, line, col))
		}), opts...)
	}

	out := cmd.OutOrStdout()
	if flags.output != "" {
		file, createErr := os.Create(flags.output)
		if createErr != nil {
			return exitError(ExitIOError, fmt.Errorf("create output: %w", createErr))
		}
		defer func() {
			if closeErr := file.Close(); err == nil && closeErr != nil {
				err = exitError(ExitIOError, fmt.Errorf("close output: %w", closeErr))
			}
		}()
		out = file
	}

	bw := bufio.NewWriter(out)
	if err := parser.Render(bw, doc); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return exitError(ExitIOError, fmt.Errorf("write output: %w", err))
	}
	return nil
}

func readSource(stdin io.Reader, path string) ([]byte, error) {
	if path == stdinPath {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return content, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return content, nil
}
