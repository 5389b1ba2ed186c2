// Package content loads portfolio content files. Markdown files carry a YAML
// front-matter block followed by a Markdown body; data files are plain YAML.
package content

import (
	"fmt"
	"strings"
)

// Type identifies a kind of content file.
type Type string

const (
	// TypeProfile is the single profile.md file.
	TypeProfile Type = "profile"
	// TypeSkills is the single skills.yaml data file.
	TypeSkills Type = "skills"
	// TypeProject is one file under projects/.
	TypeProject Type = "project"
	// TypePublication is one file under publications/.
	TypePublication Type = "publication"
	// TypeExperience is one file under experience/.
	TypeExperience Type = "experience"
	// TypeEducation is one file under education/.
	TypeEducation Type = "education"
)

// Format is the on-disk encoding of a content file.
type Format int

const (
	// FormatMarkdown is a front-matter block followed by a Markdown body.
	FormatMarkdown Format = iota
	// FormatYAML is a plain YAML document with no body.
	FormatYAML
)

// Layout describes where files of one content type live inside the content
// directory and whether at least one must exist.
type Layout struct {
	Type     Type
	Pattern  string // doublestar pattern relative to the content dir
	Format   Format
	Required bool
	Single   bool // exactly one file, not a collection
}

// Layouts lists every content type in display order.
var Layouts = []Layout{
	{Type: TypeProfile, Pattern: "profile.md", Format: FormatMarkdown, Required: true, Single: true},
	{Type: TypeSkills, Pattern: "skills.{yaml,yml}", Format: FormatYAML, Required: true, Single: true},
	{Type: TypeProject, Pattern: "projects/**/*.md", Format: FormatMarkdown},
	{Type: TypePublication, Pattern: "publications/**/*.md", Format: FormatMarkdown},
	{Type: TypeExperience, Pattern: "experience/**/*.md", Format: FormatMarkdown},
	{Type: TypeEducation, Pattern: "education/**/*.md", Format: FormatMarkdown},
}

// LayoutFor returns the layout registered for t.
func LayoutFor(t Type) (Layout, bool) {
	for _, l := range Layouts {
		if l.Type == t {
			return l, true
		}
	}
	return Layout{}, false
}

// ParseType converts a string into a Type. Plural collection names are
// accepted so "projects" and "project" both work.
func ParseType(s string) (Type, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, l := range Layouts {
		if normalized == string(l.Type) || normalized == string(l.Type)+"s" {
			return l.Type, nil
		}
	}
	if normalized == "skill" {
		return TypeSkills, nil
	}
	return "", fmt.Errorf("invalid content type: %q (valid types: %s)", s, strings.Join(ValidTypes(), ", "))
}

// ValidTypes returns all content type names.
func ValidTypes() []string {
	types := make([]string, 0, len(Layouts))
	for _, l := range Layouts {
		types = append(types, string(l.Type))
	}
	return types
}

// SocialLink is one entry in the profile's social list.
type SocialLink struct {
	Platform string `yaml:"platform"`
	URL      string `yaml:"url"`
}

// Profile is the owner of the portfolio. Bio holds the Markdown body.
type Profile struct {
	Name     string       `yaml:"name"`
	Title    string       `yaml:"title"`
	Tagline  string       `yaml:"tagline"`
	Email    string       `yaml:"email"`
	Location string       `yaml:"location"`
	Avatar   string       `yaml:"avatar"`
	Resume   string       `yaml:"resume"`
	Website  string       `yaml:"website"`
	Social   []SocialLink `yaml:"social"`
	Bio      string       `yaml:"-"`
}

// Skill is a single named skill with an optional 1-5 level.
type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
	Years int    `yaml:"years"`
}

// SkillCategory groups related skills.
type SkillCategory struct {
	Name   string  `yaml:"name"`
	Skills []Skill `yaml:"skills"`
}

// Skills is the decoded skills.yaml file.
type Skills struct {
	Categories []SkillCategory `yaml:"categories"`
}

// Count returns the number of skills across all categories.
func (s *Skills) Count() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, c := range s.Categories {
		n += len(c.Skills)
	}
	return n
}

// Project is a portfolio project.
type Project struct {
	Slug     string   `yaml:"-"`
	Title    string   `yaml:"title"`
	Summary  string   `yaml:"summary"`
	Status   string   `yaml:"status"`
	Tech     []string `yaml:"tech"`
	Repo     string   `yaml:"repo"`
	Demo     string   `yaml:"demo"`
	Image    string   `yaml:"image"`
	Year     int      `yaml:"year"`
	Featured bool     `yaml:"featured"`
	Order    int      `yaml:"order"`
	Body     string   `yaml:"-"`
}

// Publication is a paper, thesis, book or similar work.
type Publication struct {
	Slug    string   `yaml:"-"`
	Title   string   `yaml:"title"`
	Authors []string `yaml:"authors"`
	Venue   string   `yaml:"venue"`
	Year    int      `yaml:"year"`
	Kind    string   `yaml:"kind"`
	DOI     string   `yaml:"doi"`
	URL     string   `yaml:"url"`
	PDF     string   `yaml:"pdf"`
	Body    string   `yaml:"-"`
}

// Experience is a position held at a company.
type Experience struct {
	Slug       string   `yaml:"-"`
	Company    string   `yaml:"company"`
	Role       string   `yaml:"role"`
	Start      string   `yaml:"start"`
	End        string   `yaml:"end"`
	Location   string   `yaml:"location"`
	Employment string   `yaml:"employment"`
	Highlights []string `yaml:"highlights"`
	Body       string   `yaml:"-"`
}

// Education is a degree or course of study.
type Education struct {
	Slug        string   `yaml:"-"`
	Institution string   `yaml:"institution"`
	Degree      string   `yaml:"degree"`
	Field       string   `yaml:"field"`
	Start       string   `yaml:"start"`
	End         string   `yaml:"end"`
	GPA         float64  `yaml:"gpa"`
	Honors      []string `yaml:"honors"`
	Body        string   `yaml:"-"`
}
