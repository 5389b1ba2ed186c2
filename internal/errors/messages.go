package errors

import "fmt"

// ContentDirNotFound is returned when the content directory is missing.
func ContentDirNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("content directory not found: %s", path),
		"Run folio from your site root, or pass the site root as an argument",
		"Set content_dir in folio.yaml if your content lives elsewhere",
	)
}

// InvalidContentType is returned for an unknown content type argument.
func InvalidContentType(value string, valid []string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unknown content type: %q", value),
		"folio schema [type]",
		fmt.Sprintf("Use one of: %v", valid),
	)
}

// InvalidFormat is returned for an unsupported --format value.
func InvalidFormat(value string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unsupported output format: %q", value),
		"folio validate --format text|json",
	)
}

// ConfigLoadFailed wraps a configuration loading failure.
func ConfigLoadFailed(err error) *CLIError {
	return WrapWithMessage(err, Configuration, "failed to load configuration",
		"Check folio.yaml for syntax errors",
		"Run 'folio config' to see the effective configuration",
	)
}

// ValidationBlocksBuild is returned when build is refused because of errors.
func ValidationBlocksBuild(errorCount int) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("content has %d validation error(s); site not built", errorCount),
		"Run 'folio validate' to see the errors",
	)
}
