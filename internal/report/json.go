package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ariel-frischer/folio/internal/score"
	"github.com/ariel-frischer/folio/internal/validation"
)

// jsonReport is the stable machine-readable shape of a Report.
type jsonReport struct {
	Root           string                        `json:"root"`
	Passed         bool                          `json:"passed"`
	Errors         int                           `json:"errors"`
	Warnings       int                           `json:"warnings"`
	FailureReasons []string                      `json:"failure_reasons"`
	Files          []*validation.FileResult      `json:"files"`
	Collection     []*validation.ValidationError `json:"collection"`
	Score          *jsonScore                    `json:"score,omitempty"`
}

type jsonScore struct {
	*score.Result
	Suggestions []string `json:"suggestions"`
}

// PrintJSON writes r to w as indented JSON.
func PrintJSON(w io.Writer, r *Report) error {
	out := jsonReport{
		Root:           r.Root,
		Passed:         r.Passed(),
		Errors:         r.ErrorCount(),
		Warnings:       r.WarningCount(),
		FailureReasons: nonNil(r.FailureReasons()),
		Files:          []*validation.FileResult{},
		Collection:     []*validation.ValidationError{},
	}
	if r.Validation != nil {
		if r.Validation.Files != nil {
			out.Files = r.Validation.Files
		}
		if r.Validation.Collection != nil {
			out.Collection = r.Validation.Collection
		}
	}
	if r.Score != nil {
		out.Score = &jsonScore{Result: r.Score, Suggestions: nonNil(r.Score.Suggestions())}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// PrintScoreJSON writes a score and its suggestions to w as indented JSON.
func PrintScoreJSON(w io.Writer, s *score.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonScore{Result: s, Suggestions: nonNil(s.Suggestions())}); err != nil {
		return fmt.Errorf("encoding score: %w", err)
	}
	return nil
}

// Print dispatches to the printer for format.
func Print(w io.Writer, r *Report, format Format, opts TextOptions) error {
	if format == FormatJSON {
		return PrintJSON(w, r)
	}
	PrintText(w, r, opts)
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
