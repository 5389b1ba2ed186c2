// Package report combines a validation result and a completeness score into
// the outcome of a validate run, and prints it as text or JSON.
package report

import (
	"fmt"

	"github.com/ariel-frischer/folio/internal/score"
	"github.com/ariel-frischer/folio/internal/validation"
)

// Format selects a printer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat parses a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported format %q (valid: text, json)", s)
}

// Report is the outcome of one validation pass over a site.
type Report struct {
	Root       string
	Validation *validation.Result
	Score      *score.Result

	// Strict makes warnings fail the report.
	Strict bool
	// MinScore fails the report when the completeness percentage is lower.
	// Zero disables the check.
	MinScore int
}

// ErrorCount returns the number of error-level findings.
func (r *Report) ErrorCount() int {
	if r.Validation == nil {
		return 0
	}
	return r.Validation.ErrorCount()
}

// WarningCount returns the number of warning-level findings.
func (r *Report) WarningCount() int {
	if r.Validation == nil {
		return 0
	}
	return r.Validation.WarningCount()
}

// Passed reports whether the run succeeds under the report's policy.
func (r *Report) Passed() bool {
	return len(r.FailureReasons()) == 0
}

// FailureReasons lists why the report fails, in a fixed order.
func (r *Report) FailureReasons() []string {
	var reasons []string
	if n := r.ErrorCount(); n > 0 {
		reasons = append(reasons, fmt.Sprintf("%d error(s)", n))
	}
	if r.Strict {
		if n := r.WarningCount(); n > 0 {
			reasons = append(reasons, fmt.Sprintf("%d warning(s) in strict mode", n))
		}
	}
	if r.MinScore > 0 && r.Score != nil && r.Score.Percent < r.MinScore {
		reasons = append(reasons, fmt.Sprintf("score %d%% is below the minimum of %d%%", r.Score.Percent, r.MinScore))
	}
	return reasons
}
