package logging

// Structured log keys.
const (
	FieldError      = "err"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldConfig     = "config"
	FieldWorkingDir = "working_dir"
	FieldCommand    = "command"

	FieldFlavor = "flavor"
	FieldFix    = "fix"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"

	FieldSpans       = "spans"
	FieldDefinitions = "definitions"
	FieldDiagnostics = "diagnostics"
	FieldStatus      = "status"

	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithIssues = "files_with_issues"
	FieldFilesFormatted  = "files_formatted"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
