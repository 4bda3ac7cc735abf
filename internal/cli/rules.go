package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdannotate/internal/ui/pretty"
	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Fixable     bool     `json:"fixable"`
	Tags        []string `json:"tags,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available rules",
		Long: `List all rules with their IDs, default severity, whether they run by
default and whether fmt can fix what they report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := lint.DefaultRegistry.Rules()
			out := cmd.OutOrStdout()

			switch flags.format {
			case formatJSON:
				return writeRulesJSON(out, rules)
			case "text":
				color, err := cmd.Flags().GetString("color")
				if err != nil {
					color = "auto"
				}
				styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))
				writeRulesText(out, styles, rules, config.RuleFormat(flags.ruleFormat))
				return nil
			default:
				return exitError(ExitInvalidUsage,
					fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func writeRulesText(w io.Writer, styles *pretty.Styles, rules []lint.Rule, format config.RuleFormat) {
	if len(rules) == 0 {
		fmt.Fprintln(w, styles.Dim.Render("No rules registered."))
		return
	}

	idWidth := 0
	for _, rule := range rules {
		idWidth = max(idWidth, len(config.FormatRuleID(format, rule.ID(), rule.Name())))
	}

	for _, rule := range rules {
		id := config.FormatRuleID(format, rule.ID(), rule.Name())
		var notes []string
		if !rule.DefaultEnabled() {
			notes = append(notes, "opt-in")
		}
		if rule.CanFix() {
			notes = append(notes, "fixable")
		}

		line := styles.RuleID.Render(id+strings.Repeat(" ", idWidth-len(id))) + "  " +
			styles.FormatSeverity(rule.DefaultSeverity()) + "  " +
			rule.Description()
		if len(notes) > 0 {
			line += styles.Dim.Render(" (" + strings.Join(notes, ", ") + ")")
		}
		fmt.Fprintln(w, line)
	}
}

func writeRulesJSON(w io.Writer, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			Fixable:     rule.CanFix(),
			Tags:        rule.Tags(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
