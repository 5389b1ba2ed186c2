// Package site renders a validated portfolio into a static site: one
// index.html page plus a copy of the assets directory.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/ariel-frischer/folio/internal/content"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

//go:embed templates/index.html.tmpl
var templates embed.FS

// RenderOptions configures page rendering.
type RenderOptions struct {
	// Title overrides the page title. Empty uses the profile name.
	Title   string
	BaseURL string
	Version string
}

// Renderer converts Markdown bodies to sanitised HTML and executes the page
// template.
type Renderer struct {
	opts   RenderOptions
	md     goldmark.Markdown
	policy *bluemonday.Policy
	tmpl   *template.Template
}

// NewRenderer parses the embedded page template.
func NewRenderer(opts RenderOptions) (*Renderer, error) {
	tmpl, err := template.New("index.html.tmpl").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templates, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	return &Renderer{
		opts: opts,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: bluemonday.UGCPolicy(),
		tmpl:   tmpl,
	}, nil
}

// Markdown converts src to HTML and strips anything the UGC policy does not
// allow.
func (r *Renderer) Markdown(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

type profileView struct {
	content.Profile
	Bio template.HTML
}

type projectView struct {
	content.Project
	Body template.HTML
}

type publicationView struct {
	content.Publication
	Body template.HTML
	Link string
}

type experienceView struct {
	content.Experience
	Body template.HTML
}

type educationView struct {
	content.Education
	Body template.HTML
}

type page struct {
	Title        string
	BaseURL      string
	Version      string
	Profile      *profileView
	Skills       []content.SkillCategory
	Projects     []projectView
	Experience   []experienceView
	Education    []educationView
	Publications []publicationView
}

// Render writes the index page for p to w.
func (r *Renderer) Render(w io.Writer, p *content.Portfolio) error {
	view, err := r.page(p)
	if err != nil {
		return err
	}
	if err := r.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("executing page template: %w", err)
	}
	return nil
}

func (r *Renderer) page(p *content.Portfolio) (*page, error) {
	view := &page{Title: r.opts.Title, BaseURL: r.opts.BaseURL, Version: r.opts.Version}

	if p.Profile != nil {
		bio, err := r.Markdown(p.Profile.Bio)
		if err != nil {
			return nil, fmt.Errorf("profile.md: %w", err)
		}
		view.Profile = &profileView{Profile: *p.Profile, Bio: bio}
		if view.Title == "" {
			view.Title = p.Profile.Name
		}
	}
	if view.Title == "" {
		view.Title = "Portfolio"
	}

	if p.Skills != nil {
		view.Skills = p.Skills.Categories
	}

	for _, rec := range SortProjects(p.Projects) {
		body, err := r.Markdown(rec.Body)
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", rec.Slug, err)
		}
		view.Projects = append(view.Projects, projectView{Project: rec, Body: body})
	}

	for _, rec := range SortExperience(p.Experience) {
		body, err := r.Markdown(rec.Body)
		if err != nil {
			return nil, fmt.Errorf("experience %s: %w", rec.Slug, err)
		}
		view.Experience = append(view.Experience, experienceView{Experience: rec, Body: body})
	}

	for _, rec := range SortEducation(p.Education) {
		body, err := r.Markdown(rec.Body)
		if err != nil {
			return nil, fmt.Errorf("education %s: %w", rec.Slug, err)
		}
		view.Education = append(view.Education, educationView{Education: rec, Body: body})
	}

	for _, rec := range SortPublications(p.Publications) {
		body, err := r.Markdown(rec.Body)
		if err != nil {
			return nil, fmt.Errorf("publication %s: %w", rec.Slug, err)
		}
		view.Publications = append(view.Publications, publicationView{Publication: rec, Body: body, Link: publicationLink(rec)})
	}

	return view, nil
}

func publicationLink(p content.Publication) string {
	if p.URL != "" {
		return p.URL
	}
	if p.DOI != "" {
		return "https://doi.org/" + strings.TrimPrefix(p.DOI, "https://doi.org/")
	}
	return ""
}

// SortProjects orders projects by explicit order (set values first,
// ascending), then featured first, then newest year, then title.
func SortProjects(in []content.Project) []content.Project {
	out := append([]content.Project(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.Order > 0) != (b.Order > 0) {
			return a.Order > 0
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		if a.Featured != b.Featured {
			return a.Featured
		}
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
	return out
}

// SortExperience orders positions by start date, most recent first.
func SortExperience(in []content.Experience) []content.Experience {
	out := append([]content.Experience(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start > out[j].Start
	})
	return out
}

// SortEducation orders entries by start date, most recent first. Entries
// without a start date go last.
func SortEducation(in []content.Education) []content.Education {
	out := append([]content.Education(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start > out[j].Start
	})
	return out
}

// SortPublications orders publications by year, newest first, then title.
func SortPublications(in []content.Publication) []content.Publication {
	out := append([]content.Publication(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
	return out
}
