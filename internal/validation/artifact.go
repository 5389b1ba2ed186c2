package validation

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/folio/internal/content"
)

// Severity classifies a finding. Errors fail the batch; warnings are reported
// but never change the outcome.
type Severity string

const (
	// SeverityError is a schema violation or a missing required file.
	SeverityError Severity = "error"
	// SeverityWarning is advisory: short content, a missing asset, and so on.
	SeverityWarning Severity = "warning"
)

// ValidationError represents a single finding with location and context.
type ValidationError struct {
	Severity Severity `json:"severity"`
	Path     string   `json:"path,omitempty"`     // field location (e.g., "social[0].url")
	Line     int      `json:"line,omitempty"`     // 1-based line number in source file
	Column   int      `json:"column,omitempty"`   // 1-based column number in source file
	Message  string   `json:"message"`            // Human-readable description
	Expected string   `json:"expected,omitempty"` // What was expected (type, value, format)
	Actual   string   `json:"actual,omitempty"`   // What was found
	Hint     string   `json:"hint,omitempty"`     // Suggestion for fixing the problem
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("line %d", e.Line))
		if e.Column > 0 {
			sb.WriteString(fmt.Sprintf(":%d", e.Column))
		}
		sb.WriteString(": ")
	}
	if e.Path != "" {
		sb.WriteString(fmt.Sprintf("%s: ", e.Path))
	}
	sb.WriteString(e.Message)
	return sb.String()
}

// IsWarning reports whether the finding is advisory.
func (e *ValidationError) IsWarning() bool {
	return e.Severity == SeverityWarning
}

// FormatFull returns a detailed formatted message.
func (e *ValidationError) FormatFull() string {
	var sb strings.Builder

	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("  Line %d", e.Line))
		if e.Column > 0 {
			sb.WriteString(fmt.Sprintf(", Column %d", e.Column))
		}
		sb.WriteString("\n")
	}

	if e.Path != "" {
		sb.WriteString(fmt.Sprintf("  Path: %s\n", e.Path))
	}

	label := "Error"
	if e.IsWarning() {
		label = "Warning"
	}
	sb.WriteString(fmt.Sprintf("  %s: %s\n", label, e.Message))

	if e.Expected != "" {
		sb.WriteString(fmt.Sprintf("  Expected: %s\n", e.Expected))
	}
	if e.Actual != "" {
		sb.WriteString(fmt.Sprintf("  Got: %s\n", e.Actual))
	}

	if e.Hint != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", e.Hint))
	}

	return sb.String()
}

// FileResult is the outcome of validating one content file.
type FileResult struct {
	Path     string             `json:"path"`
	Type     content.Type       `json:"type"`
	Findings []*ValidationError `json:"findings"`
}

// Valid reports whether the file has no error-level findings.
func (r *FileResult) Valid() bool {
	return r.ErrorCount() == 0
}

// HasErrors returns true if there are any error-level findings.
func (r *FileResult) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of error-level findings.
func (r *FileResult) ErrorCount() int {
	return countSeverity(r.Findings, SeverityError)
}

// WarningCount returns the number of warning-level findings.
func (r *FileResult) WarningCount() int {
	return countSeverity(r.Findings, SeverityWarning)
}

// AddError records an error-level finding.
func (r *FileResult) AddError(err *ValidationError) {
	err.Severity = SeverityError
	r.Findings = append(r.Findings, err)
}

// AddWarning records a warning-level finding.
func (r *FileResult) AddWarning(err *ValidationError) {
	err.Severity = SeverityWarning
	r.Findings = append(r.Findings, err)
}

// Errors returns only the error-level findings.
func (r *FileResult) Errors() []*ValidationError {
	return filterSeverity(r.Findings, SeverityError)
}

// Warnings returns only the warning-level findings.
func (r *FileResult) Warnings() []*ValidationError {
	return filterSeverity(r.Findings, SeverityWarning)
}

func countSeverity(findings []*ValidationError, sev Severity) int {
	n := 0
	for _, f := range findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

func filterSeverity(findings []*ValidationError, sev Severity) []*ValidationError {
	var out []*ValidationError
	for _, f := range findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}
