package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/folio/internal/content"
	"github.com/ariel-frischer/folio/internal/score"
	"github.com/ariel-frischer/folio/internal/validation"
	"github.com/fatih/color"
)

// maxSuggestions is the number of score suggestions shown without --verbose.
const maxSuggestions = 3

// TextOptions tunes the text printer.
type TextOptions struct {
	// Verbose prints every scoring criterion and all suggestions.
	Verbose bool
}

// PrintText writes a human-readable report to w.
func PrintText(w io.Writer, r *Report, opts TextOptions) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if r.Validation != nil {
		for _, file := range r.Validation.Files {
			switch {
			case file.HasErrors():
				fmt.Fprintf(w, "%s %s %s\n", red("✗"), file.Path, countsSuffix(file.ErrorCount(), file.WarningCount()))
			case file.WarningCount() > 0:
				fmt.Fprintf(w, "%s %s %s\n", yellow("!"), file.Path, countsSuffix(0, file.WarningCount()))
			default:
				fmt.Fprintf(w, "%s %s\n", green("✓"), file.Path)
				continue
			}
			printFindings(w, file.Findings)
		}

		if len(r.Validation.Collection) > 0 {
			fmt.Fprintf(w, "\n%s\n", bold("Site:"))
			printFindings(w, r.Validation.Collection)
		}
	}

	fmt.Fprintln(w)
	fileCount := 0
	if r.Validation != nil {
		fileCount = len(r.Validation.Files)
	}
	summary := fmt.Sprintf("%d file(s) checked: %d error(s), %d warning(s)", fileCount, r.ErrorCount(), r.WarningCount())
	if r.Passed() {
		fmt.Fprintf(w, "%s %s\n", green("✓"), summary)
	} else {
		fmt.Fprintf(w, "%s %s\n", red("✗"), summary)
	}

	if r.Score != nil {
		fmt.Fprintln(w)
		PrintScore(w, r.Score, opts)
	}

	if reasons := r.FailureReasons(); len(reasons) > 0 {
		fmt.Fprintf(w, "\n%s %s\n", red("Validation failed:"), strings.Join(reasons, "; "))
	}
}

// PrintScore writes the completeness score, the per-section breakdown and the
// top suggestions to w.
func PrintScore(w io.Writer, s *score.Result, opts TextOptions) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	fmt.Fprintf(w, "%s %s (%d/%d)\n", bold("Completeness:"), scoreColor(s.Percent)(fmt.Sprintf("%d%%", s.Percent)), s.Earned, s.Possible)

	if opts.Verbose {
		for _, section := range sections(s) {
			earned, possible := s.Section(section)
			fmt.Fprintf(w, "  %-12s %d/%d\n", section, earned, possible)
			for _, c := range s.Criteria {
				if c.Section != section {
					continue
				}
				mark := "-"
				if c.Met {
					mark = green("✓")
				}
				fmt.Fprintf(w, "    %s %s (%d)\n", mark, c.ID, c.Points)
			}
		}
	}

	suggestions := s.Suggestions()
	if len(suggestions) == 0 {
		return
	}
	if !opts.Verbose && len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	fmt.Fprintf(w, "\n%s\n", bold("Suggestions:"))
	for i, suggestion := range suggestions {
		fmt.Fprintf(w, "  %s %s\n", cyan(fmt.Sprintf("%d.", i+1)), suggestion)
	}
}

func printFindings(w io.Writer, findings []*validation.ValidationError) {
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	for _, f := range findings {
		label := red("error")
		if f.IsWarning() {
			label = yellow("warning")
		}

		location := ""
		if f.Line > 0 {
			location = fmt.Sprintf("%d", f.Line)
			if f.Column > 0 {
				location += fmt.Sprintf(":%d", f.Column)
			}
			location += " "
		}

		fmt.Fprintf(w, "  %s%s: %s\n", location, label, f.Message)

		if f.Path != "" && !strings.Contains(f.Message, f.Path) {
			fmt.Fprintf(w, "      Path: %s\n", f.Path)
		}
		if f.Expected != "" {
			fmt.Fprintf(w, "      Expected: %s\n", f.Expected)
		}
		if f.Actual != "" {
			fmt.Fprintf(w, "      Got: %s\n", f.Actual)
		}
		if f.Hint != "" {
			fmt.Fprintf(w, "      %s %s\n", yellow("Hint:"), f.Hint)
		}
	}
}

func countsSuffix(errors, warnings int) string {
	var parts []string
	if errors > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", errors))
	}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", warnings))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// sections returns the criterion sections in first-seen order.
func sections(s *score.Result) []content.Type {
	var out []content.Type
	seen := make(map[content.Type]bool)
	for _, c := range s.Criteria {
		if !seen[c.Section] {
			seen[c.Section] = true
			out = append(out, c.Section)
		}
	}
	return out
}

func scoreColor(percent int) func(a ...interface{}) string {
	switch {
	case percent >= 80:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	case percent >= 50:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}
