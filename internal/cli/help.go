package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdannotate/internal/ui/pretty"
)

// flagGap is the minimum run of spaces pflag puts between a flag and its
// description.
const flagGap = "  "

// HelpFormatter renders Cobra help and usage with the CLI's styles.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":    h.styles.Bold.Render,
		"command":    h.styles.FilePath.Render,
		"subcommand": h.styles.RuleID.Render,
		"dim":        h.styles.Dim.Render,
		"flags":      h.flagUsages,
		"rpad":       rpad,
		"trimRight":  trimTrailingWhitespace,
	}
}

// flagUsages styles pflag's usage block: flag names highlighted, value
// types dimmed, descriptions untouched.
func (h *HelpFormatter) flagUsages(fs *pflag.FlagSet) string {
	lines := strings.Split(strings.TrimSuffix(fs.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	names, desc, ok := strings.Cut(trimmed, flagGap)
	if !ok || names == "" {
		return line
	}
	desc = strings.TrimLeft(desc, " ")

	tokens := strings.Fields(names)
	for i, token := range tokens {
		if clean, found := strings.CutSuffix(token, ","); strings.HasPrefix(token, "-") {
			tokens[i] = h.styles.RuleID.Render(clean)
			if found {
				tokens[i] += ","
			}
		} else {
			tokens[i] = h.styles.Dim.Render(token)
		}
	}

	return indent + strings.Join(tokens, " ") + "   " + desc
}

// ApplyToCommand installs the styled help and usage on cmd and, through
// inheritance, on every subcommand.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStderr(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func rpad(s string, padding int) string {
	if len(s) >= padding {
		return s
	}
	return s + strings.Repeat(" ", padding-len(s))
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
