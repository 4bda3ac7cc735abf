// Package cli provides the Cobra command structure for mdannotate.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdannotate/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdannotate command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdannotate",
		Short: "Check, format and render Markdown annotations",
		Long: `mdannotate works with annotated Markdown: inline spans such as
{some text}[note] that point at YAML definitions elsewhere in the document:

  [note] {
    message: shown next to the text
  }

It reports spans whose definitions are missing, duplicate definitions and
malformed data, rewrites annotations into their canonical layout, and renders
annotated documents to HTML.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newFmtCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
