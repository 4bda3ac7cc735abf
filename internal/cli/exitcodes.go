package cli

import (
	"errors"

	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/runner"
)

// Exit codes for mdannotate.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssues indicates errors were found, or files need formatting
	// under fmt --check.
	ExitIssues = 1

	// ExitWarnings indicates only warnings were found under --strict.
	ExitWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates some files could not be read or written.
	ExitIOError = 74
)

// Sentinel errors that only carry an exit status. They are not printed.
var (
	ErrIssuesFound = errors.New("annotation issues found")
	ErrUnformatted = errors.New("files need formatting")
	ErrFilesFailed = errors.New("some files could not be processed")
)

// ExitError attaches a process exit code to an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func exitError(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitIssues
}

// IsSilent reports whether err only signals an exit status.
func IsSilent(err error) bool {
	return errors.Is(err, ErrIssuesFound) || errors.Is(err, ErrUnformatted)
}

// ExitCodeFromResult determines the exit code of a check run.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	switch {
	case result.Stats.DiagnosticsBySeverity[config.SeverityError] > 0:
		return ExitIssues
	case result.Stats.FilesErrored > 0:
		return ExitIOError
	case strict && result.Stats.DiagnosticsBySeverity[config.SeverityWarning] > 0:
		return ExitWarnings
	default:
		return ExitSuccess
	}
}
