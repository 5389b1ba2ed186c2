package content

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Site is the result of loading a content directory: every file that parsed,
// every file that did not, and the required types that have no file at all.
type Site struct {
	Root      string // site root, asset paths resolve against it
	Dir       string // content directory
	Documents []*Document
	Failures  []*ParseError
	Missing   []Type
	// Discovered counts matched files per type, parsed or not.
	Discovered map[Type]int
	// Ignored lists extra matches of single-file layouts that were not read.
	Ignored []IgnoredFile
}

// IgnoredFile is a second match for a single-file layout, such as
// skills.yml next to skills.yaml.
type IgnoredFile struct {
	Path  string
	Type  Type
	Using string
}

// OfType returns the parsed documents of type t in discovery order.
func (s *Site) OfType(t Type) []*Document {
	var docs []*Document
	for _, d := range s.Documents {
		if d.Type == t {
			docs = append(docs, d)
		}
	}
	return docs
}

// First returns the first parsed document of type t, or nil.
func (s *Site) First(t Type) *Document {
	for _, d := range s.Documents {
		if d.Type == t {
			return d
		}
	}
	return nil
}

// Load discovers and parses every content file under dir. Asset references
// resolve against root. Files that cannot be read or parsed are recorded in
// Failures; Load itself only fails when dir is not a readable directory.
func Load(root, dir string) (*Site, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path is not a directory: %s", dir)
	}

	site := &Site{
		Root:       root,
		Dir:        dir,
		Discovered: make(map[Type]int),
	}
	fsys := os.DirFS(dir)

	for _, layout := range Layouts {
		matches, err := discoverAll(fsys, layout)
		if err != nil {
			return nil, fmt.Errorf("discovering %s files: %w", layout.Type, err)
		}
		if layout.Single && len(matches) > 1 {
			for _, extra := range matches[1:] {
				site.Ignored = append(site.Ignored, IgnoredFile{Path: extra, Type: layout.Type, Using: matches[0]})
			}
			matches = matches[:1]
		}
		site.Discovered[layout.Type] = len(matches)
		if len(matches) == 0 && layout.Required {
			site.Missing = append(site.Missing, layout.Type)
			continue
		}

		for _, rel := range matches {
			data, err := fs.ReadFile(fsys, rel)
			if err != nil {
				site.Failures = append(site.Failures, &ParseError{Path: rel, Message: fmt.Sprintf("failed to read file: %v", err), Err: err})
				continue
			}
			doc, err := Parse(rel, layout.Type, layout.Format, data)
			if err != nil {
				site.Failures = append(site.Failures, asParseError(rel, err))
				continue
			}
			doc.Path = filepath.Join(dir, filepath.FromSlash(rel))
			site.Documents = append(site.Documents, doc)
		}
	}

	return site, nil
}

// Discover returns the files matching layout inside fsys, sorted, with
// hidden and draft files (leading "." or "_") removed. Single layouts keep
// only the first match.
func Discover(fsys fs.FS, layout Layout) ([]string, error) {
	kept, err := discoverAll(fsys, layout)
	if err != nil {
		return nil, err
	}
	if layout.Single && len(kept) > 1 {
		kept = kept[:1]
	}
	return kept, nil
}

func discoverAll(fsys fs.FS, layout Layout) ([]string, error) {
	matches, err := doublestar.Glob(fsys, layout.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	kept := matches[:0]
	for _, m := range matches {
		if isHidden(m) {
			continue
		}
		kept = append(kept, m)
	}
	sort.Strings(kept)
	return kept, nil
}

// MatchesAny reports whether rel (relative to the content dir) belongs to any
// content layout.
func MatchesAny(rel string) bool {
	rel = filepath.ToSlash(rel)
	if isHidden(rel) {
		return false
	}
	_, ok := TypeForPath(rel)
	return ok
}

// TypeForPath returns the content type whose layout matches rel.
func TypeForPath(rel string) (Type, bool) {
	rel = filepath.ToSlash(rel)
	for _, layout := range Layouts {
		if ok, err := doublestar.Match(layout.Pattern, rel); err == nil && ok {
			return layout.Type, true
		}
	}
	return "", false
}

func isHidden(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") || strings.HasPrefix(part, "_") {
			return true
		}
	}
	return false
}

func asParseError(rel string, err error) *ParseError {
	if pe, ok := err.(*ParseError); ok {
		return pe
	}
	return &ParseError{Path: rel, Message: err.Error(), Err: err}
}
