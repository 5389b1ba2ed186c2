package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ariel-frischer/folio/internal/content"
	"gopkg.in/yaml.v3"
)

// dateLayouts are the accepted date forms, most specific first.
var dateLayouts = []string{"2006-01-02", "2006-01"}

// ParseDate parses a YYYY-MM or YYYY-MM-DD date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsPresent reports whether s marks an ongoing period.
func IsPresent(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "present")
}

// checkFormat validates value against a named format. On failure it returns a
// description of what was expected.
func (v *Validator) checkFormat(value string, format Format) (string, bool) {
	switch format {
	case FormatURL:
		if err := v.validate.Var(value, "required,http_url"); err != nil {
			return "an absolute http(s) URL", false
		}
	case FormatEmail:
		if err := v.validate.Var(value, "required,email"); err != nil {
			return "an email address", false
		}
	case FormatDate:
		if _, ok := ParseDate(value); !ok {
			return "a date in YYYY-MM or YYYY-MM-DD form", false
		}
	case FormatDateOrPresent:
		if _, ok := ParseDate(value); !ok && !IsPresent(value) {
			return "a date in YYYY-MM or YYYY-MM-DD form, or \"present\"", false
		}
	}
	return "", true
}

// checkAsset warns when a referenced local asset does not exist under the
// site root. Remote URLs are not checked.
func (v *Validator) checkAsset(doc *content.Document, node *yaml.Node, path string, result *FileResult) {
	ref := strings.TrimSpace(node.Value)
	if isRemote(ref) {
		return
	}

	local := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(ref, "/")))
	if local == ".." || strings.HasPrefix(local, ".."+string(filepath.Separator)) {
		result.AddWarning(&ValidationError{
			Path:    path,
			Line:    doc.Line(node),
			Column:  node.Column,
			Message: fmt.Sprintf("asset path escapes the site root: %s", ref),
			Hint:    "Keep assets inside the site root, e.g. assets/avatar.png",
		})
		return
	}

	full := filepath.Join(v.root, local)
	info, err := os.Stat(full)
	if err != nil {
		result.AddWarning(&ValidationError{
			Path:    path,
			Line:    doc.Line(node),
			Column:  node.Column,
			Message: fmt.Sprintf("referenced asset not found: %s", ref),
			Hint:    fmt.Sprintf("Add the file at %s or fix the path", filepath.ToSlash(filepath.Join(filepath.Base(v.root), local))),
		})
		return
	}
	if info.IsDir() {
		result.AddWarning(&ValidationError{
			Path:    path,
			Line:    doc.Line(node),
			Column:  node.Column,
			Message: fmt.Sprintf("referenced asset is a directory: %s", ref),
		})
	}
}

func isRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "//")
}

// checkDateOrder reports an end date that precedes the start date. Either
// value failing to parse is left to the format check.
func checkDateOrder(doc *content.Document, result *FileResult) {
	startNode := doc.Field("start")
	endNode := doc.Field("end")
	if isEmpty(startNode) || isEmpty(endNode) || IsPresent(endNode.Value) {
		return
	}
	start, ok := ParseDate(startNode.Value)
	if !ok {
		return
	}
	end, ok := ParseDate(endNode.Value)
	if !ok {
		return
	}
	if end.Before(start) {
		result.AddError(&ValidationError{
			Path:     "end",
			Line:     doc.Line(endNode),
			Column:   endNode.Column,
			Message:  "end date is before start date",
			Expected: fmt.Sprintf("a date on or after %s", startNode.Value),
			Actual:   endNode.Value,
		})
	}
}

// checkBody warns when the Markdown body is shorter than the configured
// minimum word count for the type.
func (v *Validator) checkBody(doc *content.Document, result *FileResult) {
	min := v.minWords[doc.Type]
	if min <= 0 {
		return
	}
	words := len(strings.Fields(doc.Body))
	if words >= min {
		return
	}
	result.AddWarning(&ValidationError{
		Line:     doc.BodyLine,
		Message:  "short content",
		Expected: fmt.Sprintf("at least %d words", min),
		Actual:   fmt.Sprintf("%d words", words),
		Hint:     "Expand the Markdown body below the front-matter",
	})
}
