package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdannotate/internal/configloader"
	"github.com/yaklabco/mdannotate/internal/logging"
	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/lint"
)

type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .mdannotate.yml configuration file",
		Long: `Create a commented .mdannotate.yml in the current directory with the
default settings.

Examples:
  mdannotate init                    Create a minimal .mdannotate.yml
  mdannotate init --full             Document every rule in the file
  mdannotate init -o custom.yml      Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every rule in the template")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFiles[0],
		"output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	path, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content := config.GenerateTemplate(config.TemplateOptions{
		Full:  flags.full,
		Rules: ruleInfos(lint.DefaultRegistry),
	})

	if err := configloader.WriteConfig(path, content, flags.force); err != nil {
		return exitError(ExitIOError, err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'mdannotate rules' to see all available rules")
	return nil
}

func ruleInfos(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			CanFix:      rule.CanFix(),
		})
	}
	return infos
}
