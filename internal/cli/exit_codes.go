package cli

import (
	"errors"
	"fmt"

	apperrors "github.com/ariel-frischer/folio/internal/errors"
)

// Exit codes for the folio CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates content validation failed
	ExitValidationFailed = 1

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = 3

	// ExitMissingContent indicates the content directory does not exist
	ExitMissingContent = 4
)

// exitError carries an exit code for a failure the command already reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	if cliErr := apperrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case apperrors.Argument, apperrors.Configuration:
			return ExitInvalidArguments
		case apperrors.Prerequisite:
			return ExitMissingContent
		}
	}
	return ExitValidationFailed
}

func isExitError(err error) bool {
	var e *exitError
	return errors.As(err, &e)
}
