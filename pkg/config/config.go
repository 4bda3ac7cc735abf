// Package config defines the configuration data types for mdannotate.
// Loading, discovery and merging live in internal/configloader.
package config

// Severity is the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule settings. Nil fields defer to the rule's
// defaults.
type RuleConfig struct {
	Enabled  *bool   `yaml:"enabled,omitempty"`
	Severity *string `yaml:"severity,omitempty"`
	AutoFix  *bool   `yaml:"auto_fix,omitempty"`
}

// BackupsConfig controls sidecar backups written before fmt rewrites a file.
type BackupsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// OutputFormat selects how results are reported.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "undefined-reference"
	RuleFormatID       RuleFormat = "id"       // "AN002"
	RuleFormatCombined RuleFormat = "combined" // "AN002/undefined-reference"
)

// Flavor is the Markdown flavor used for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid reports whether f is a supported flavor.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// Config is the root configuration.
type Config struct {
	// Flavor is the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// SeverityDefault applies to rules without an explicit severity.
	SeverityDefault string `yaml:"severity_default"`

	// Rules holds per-rule settings keyed by rule ID or name.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// Ignore holds glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// ReportUnused enables the unused-definition rule.
	ReportUnused bool `yaml:"report_unused"`

	// Backups configures backups when formatting in place.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Fix rewrites files with fixable diagnostics applied.
	Fix bool `yaml:"-"`

	// DryRun computes fixes and reports them as diffs without writing.
	DryRun bool `yaml:"-"`

	// Strict turns warnings into a failing exit status.
	Strict bool `yaml:"-"`

	// Format is the output format.
	Format OutputFormat `yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-"`

	// Jobs is the number of parallel workers; 0 means GOMAXPROCS.
	Jobs int `yaml:"-"`

	// EnableRules and DisableRules force rules on or off by ID or name.
	EnableRules  []string `yaml:"-"`
	DisableRules []string `yaml:"-"`

	// FixRules limits fixing to the listed rules.
	FixRules []string `yaml:"-"`

	// NoBackups suppresses backups for this run.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		Flavor:          FlavorCommonMark,
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Format:          FormatText,
		RuleFormat:      RuleFormatName,
	}
}
