// Package validation checks portfolio content files against per-type schemas.
// It is a single-pass batch validator: every problem becomes a recorded
// finding with a severity, and nothing is retried.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ariel-frischer/folio/internal/content"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Options configures a Validator.
type Options struct {
	// Root is the site root that asset references resolve against.
	Root string
	// MinWords is the body length below which a "short content" warning is
	// reported, per content type. Nil uses DefaultMinWords.
	MinWords map[content.Type]int
	Logger   *zap.Logger
}

// DefaultMinWords returns the default body length thresholds.
func DefaultMinWords() map[content.Type]int {
	return map[content.Type]int{
		content.TypeProfile: 20,
		content.TypeProject: 15,
	}
}

// Validator validates documents and whole sites. It holds no state between
// calls beyond its configuration.
type Validator struct {
	root     string
	minWords map[content.Type]int
	logger   *zap.Logger
	validate *validator.Validate
}

// New creates a Validator.
func New(opts Options) *Validator {
	minWords := opts.MinWords
	if minWords == nil {
		minWords = DefaultMinWords()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{
		root:     opts.Root,
		minWords: minWords,
		logger:   logger,
		validate: validator.New(),
	}
}

// Result is the outcome of validating a site.
type Result struct {
	Files      []*FileResult      `json:"files"`
	Collection []*ValidationError `json:"collection"`
}

// Passed reports whether no error-level finding was recorded.
func (r *Result) Passed() bool {
	return r.ErrorCount() == 0
}

// ErrorCount returns the number of error-level findings across the site.
func (r *Result) ErrorCount() int {
	n := countSeverity(r.Collection, SeverityError)
	for _, f := range r.Files {
		n += f.ErrorCount()
	}
	return n
}

// WarningCount returns the number of warning-level findings across the site.
func (r *Result) WarningCount() int {
	n := countSeverity(r.Collection, SeverityWarning)
	for _, f := range r.Files {
		n += f.WarningCount()
	}
	return n
}

// ValidateDocument applies the schema for doc's type and the content rules.
// It never panics; an unexpected failure is recorded as an error finding.
func (v *Validator) ValidateDocument(doc *content.Document) (result *FileResult) {
	result = &FileResult{Path: doc.Rel, Type: doc.Type}

	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("validator panic", zap.String("file", doc.Rel), zap.Any("panic", r))
			result.AddError(&ValidationError{
				Message: fmt.Sprintf("internal validator error: %v", r),
				Hint:    "This is a bug in folio; please report it with the offending file",
			})
		}
	}()

	schema, err := GetSchema(doc.Type)
	if err != nil {
		result.AddError(&ValidationError{Message: err.Error()})
		return result
	}

	checker := &fieldChecker{v: v, doc: doc, result: result}
	checker.checkMapping(doc.Root, schema.Fields, "", true)

	switch doc.Type {
	case content.TypeExperience, content.TypeEducation:
		checkDateOrder(doc, result)
	}

	if schema.HasBody {
		v.checkBody(doc, result)
	}

	v.logger.Debug("validated file",
		zap.String("file", doc.Rel),
		zap.Int("errors", result.ErrorCount()),
		zap.Int("warnings", result.WarningCount()))

	return result
}

// ValidateSite validates every loaded document, converts parse failures into
// error findings, and appends collection-level findings.
func (v *Validator) ValidateSite(site *content.Site) *Result {
	result := &Result{}

	for _, doc := range site.Documents {
		result.Files = append(result.Files, v.ValidateDocument(doc))
	}

	for _, failure := range site.Failures {
		fileType, _ := content.TypeForPath(failure.Path)
		file := &FileResult{Path: failure.Path, Type: fileType}
		file.AddError(&ValidationError{
			Line:    failure.Line,
			Column:  failure.Column,
			Message: fmt.Sprintf("failed to parse: %s", failure.Message),
			Hint:    parseHint(failure),
		})
		result.Files = append(result.Files, file)
	}

	sort.SliceStable(result.Files, func(i, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	result.Collection = v.checkCollections(site)

	v.logger.Info("validation complete",
		zap.Int("files", len(result.Files)),
		zap.Int("errors", result.ErrorCount()),
		zap.Int("warnings", result.WarningCount()))

	return result
}

// checkCollections reports missing required files, empty optional
// collections, ignored duplicate single files and duplicate titles.
func (v *Validator) checkCollections(site *content.Site) []*ValidationError {
	var findings []*ValidationError

	for _, missing := range site.Missing {
		layout, _ := content.LayoutFor(missing)
		findings = append(findings, &ValidationError{
			Severity: SeverityError,
			Path:     displayPattern(layout),
			Message:  fmt.Sprintf("missing required file: %s", displayPattern(layout)),
			Hint:     fmt.Sprintf("Create %s in the content directory (see 'folio schema %s')", displayPattern(layout), missing),
		})
	}

	for _, layout := range content.Layouts {
		if layout.Required || layout.Single {
			continue
		}
		if site.Discovered[layout.Type] == 0 {
			dir := strings.SplitN(layout.Pattern, "/", 2)[0]
			findings = append(findings, &ValidationError{
				Severity: SeverityWarning,
				Path:     dir + "/",
				Message:  fmt.Sprintf("no %s files found", layout.Type),
				Hint:     fmt.Sprintf("Add Markdown files under %s/ to populate this section", dir),
			})
		}
	}

	for _, ignored := range site.Ignored {
		findings = append(findings, &ValidationError{
			Severity: SeverityWarning,
			Path:     ignored.Path,
			Message:  fmt.Sprintf("ignored %s file: %s (using %s)", ignored.Type, ignored.Path, ignored.Using),
			Hint:     fmt.Sprintf("Only one %s file is read; merge or remove %s", ignored.Type, ignored.Path),
		})
	}

	findings = append(findings, duplicateTitles(site, content.TypeProject)...)
	findings = append(findings, duplicateTitles(site, content.TypePublication)...)

	return findings
}

func duplicateTitles(site *content.Site, t content.Type) []*ValidationError {
	var findings []*ValidationError
	seen := make(map[string]string)
	for _, doc := range site.OfType(t) {
		node := doc.Field("title")
		if isEmpty(node) {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(node.Value))
		if first, ok := seen[key]; ok {
			findings = append(findings, &ValidationError{
				Severity: SeverityWarning,
				Path:     doc.Rel,
				Line:     doc.Line(node),
				Message:  fmt.Sprintf("duplicate %s title %q (also in %s)", t, node.Value, first),
			})
			continue
		}
		seen[key] = doc.Rel
	}
	return findings
}

func displayPattern(layout content.Layout) string {
	if layout.Type == content.TypeSkills {
		return "skills.yaml"
	}
	return layout.Pattern
}

func parseHint(failure *content.ParseError) string {
	switch failure.Err {
	case content.ErrNoFrontMatter:
		return "Start the file with a line containing only '---', then the YAML fields, then another '---'"
	case content.ErrUnterminatedFrontMatter:
		return "Close the front-matter block with a line containing only '---'"
	}
	return "Check the YAML syntax for errors"
}
