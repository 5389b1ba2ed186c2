// Package score computes a completeness percentage for a portfolio from the
// presence of profile fields and the number of files in each collection.
package score

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ariel-frischer/folio/internal/content"
)

// Criterion is one weighted presence check.
type Criterion struct {
	ID         string       `json:"id"`
	Section    content.Type `json:"section"`
	Points     int          `json:"points"`
	Met        bool         `json:"met"`
	Suggestion string       `json:"suggestion,omitempty"`
}

// Result is the computed score with the per-criterion breakdown.
type Result struct {
	Earned   int         `json:"earned"`
	Possible int         `json:"possible"`
	Percent  int         `json:"percent"`
	Criteria []Criterion `json:"criteria"`
}

// Suggestions returns the suggestions of unmet criteria, heaviest first.
func (r *Result) Suggestions() []string {
	var unmet []Criterion
	for _, c := range r.Criteria {
		if !c.Met && c.Suggestion != "" {
			unmet = append(unmet, c)
		}
	}
	sort.SliceStable(unmet, func(i, j int) bool {
		return unmet[i].Points > unmet[j].Points
	})

	out := make([]string, 0, len(unmet))
	for _, c := range unmet {
		out = append(out, c.Suggestion)
	}
	return out
}

// Section returns the earned and possible points for one content type.
func (r *Result) Section(t content.Type) (earned, possible int) {
	for _, c := range r.Criteria {
		if c.Section != t {
			continue
		}
		possible += c.Points
		if c.Met {
			earned += c.Points
		}
	}
	return earned, possible
}

const (
	pointsPerProject = 3
	maxScoredProject = 5
)

// Score evaluates the fixed criteria against a decoded portfolio. Every
// criterion is a presence check or a capped count, so adding a field or a
// file never lowers the result.
func Score(p *content.Portfolio) *Result {
	if p == nil {
		p = &content.Portfolio{}
	}

	var criteria []Criterion
	add := func(section content.Type, id string, points int, met bool, suggestion string) {
		criteria = append(criteria, Criterion{ID: id, Section: section, Points: points, Met: met, Suggestion: suggestion})
	}

	profile := p.Profile
	if profile == nil {
		profile = &content.Profile{}
	}
	add(content.TypeProfile, "profile.name", 5, filled(profile.Name), "Add your name to profile.md")
	add(content.TypeProfile, "profile.title", 5, filled(profile.Title), "Add a professional title to profile.md")
	add(content.TypeProfile, "profile.bio", 10, filled(profile.Bio), "Write a bio in the body of profile.md")
	add(content.TypeProfile, "profile.avatar", 5, filled(profile.Avatar), "Add an avatar image to profile.md")
	add(content.TypeProfile, "profile.email", 5, filled(profile.Email), "Add a contact email to profile.md")
	add(content.TypeProfile, "profile.location", 2, filled(profile.Location), "Add a location to profile.md")
	add(content.TypeProfile, "profile.tagline", 3, filled(profile.Tagline), "Add a tagline to profile.md")
	add(content.TypeProfile, "profile.social", 5, len(profile.Social) > 0, "Link at least one social profile")
	add(content.TypeProfile, "profile.resume", 5, filled(profile.Resume), "Attach a resume PDF to profile.md")

	categories := 0
	if p.Skills != nil {
		categories = len(p.Skills.Categories)
	}
	add(content.TypeSkills, "skills", 5, categories >= 1, "Add a skill category to skills.yaml")
	add(content.TypeSkills, "skills.categories", 5, categories >= 3, "Group skills into at least 3 categories")
	add(content.TypeSkills, "skills.count", 5, p.Skills.Count() >= 10, "List at least 10 skills")

	// Each project up to the cap is its own criterion so the score grows with
	// every file added.
	for i := 1; i <= maxScoredProject; i++ {
		suggestion := ""
		if i == len(p.Projects)+1 {
			suggestion = "Add another project under projects/"
		}
		add(content.TypeProject, "projects."+strconv.Itoa(i), pointsPerProject, len(p.Projects) >= i, suggestion)
	}
	add(content.TypeProject, "projects.image", 5, anyProjectImage(p.Projects), "Add an image to at least one project")

	add(content.TypePublication, "publications", 5, len(p.Publications) >= 1, "Add a publication under publications/")

	add(content.TypeExperience, "experience", 5, len(p.Experience) >= 1, "Add a position under experience/")
	add(content.TypeExperience, "experience.three", 5, len(p.Experience) >= 3, "Document at least 3 positions")

	add(content.TypeEducation, "education", 5, len(p.Education) >= 1, "Add an entry under education/")

	result := &Result{Criteria: criteria}
	for _, c := range criteria {
		result.Possible += c.Points
		if c.Met {
			result.Earned += c.Points
		}
	}
	if result.Possible > 0 {
		result.Percent = result.Earned * 100 / result.Possible
	}
	return result
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

func anyProjectImage(projects []content.Project) bool {
	for _, p := range projects {
		if filled(p.Image) {
			return true
		}
	}
	return false
}
