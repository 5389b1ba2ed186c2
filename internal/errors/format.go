package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// FormatError renders err with colors for terminal display.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	return format(err, red, yellow, cyan)
}

// FormatErrorPlain renders err without ANSI escape codes.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	plain := func(a ...interface{}) string { return fmt.Sprint(a...) }
	return format(err, plain, plain, plain)
}

func format(err *CLIError, title, label, accent func(a ...interface{}) string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s: %s\n", title(err.Category.String()), err.Message))

	if err.Usage != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n  %s\n", label("Usage:"), err.Usage))
	}

	if len(err.Remediation) > 0 {
		sb.WriteString(fmt.Sprintf("\n%s\n", label("To fix this:")))
		for i, step := range err.Remediation {
			sb.WriteString(fmt.Sprintf("  %s %s\n", accent(fmt.Sprintf("%d.", i+1)), step))
		}
	}

	return sb.String()
}

// PrintError writes err to stderr.
func PrintError(err *CLIError) {
	FprintError(os.Stderr, err)
}

// FprintError writes err to w.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FormatSimpleError formats a plain error under the given category.
func FormatSimpleError(err error, category ErrorCategory) string {
	if err == nil {
		return ""
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		return FormatError(cliErr)
	}
	return FormatError(&CLIError{Category: category, Message: err.Error()})
}
