package content

import (
	"errors"

	"gopkg.in/yaml.v3"
)

// Portfolio holds the typed records decoded from a Site. A field whose value
// does not fit the record type is left at its zero value and the document is
// listed in Partial; the rest of the record is kept. Documents that cannot be
// decoded at all are listed in Skipped. Validation reports the underlying
// schema problems separately.
type Portfolio struct {
	Profile      *Profile
	Skills       *Skills
	Projects     []Project
	Publications []Publication
	Experience   []Experience
	Education    []Education
	Partial      []string
	Skipped      []string
}

// Portfolio decodes every parsed document into its record type.
func (s *Site) Portfolio() *Portfolio {
	p := &Portfolio{}

	if doc := s.First(TypeProfile); doc != nil {
		var profile Profile
		if p.decode(doc, &profile) {
			profile.Bio = doc.Body
			p.Profile = &profile
		}
	}

	if doc := s.First(TypeSkills); doc != nil {
		var skills Skills
		if p.decode(doc, &skills) {
			p.Skills = &skills
		}
	}

	for _, doc := range s.OfType(TypeProject) {
		var rec Project
		if !p.decode(doc, &rec) {
			continue
		}
		rec.Slug, rec.Body = doc.Slug, doc.Body
		p.Projects = append(p.Projects, rec)
	}

	for _, doc := range s.OfType(TypePublication) {
		var rec Publication
		if !p.decode(doc, &rec) {
			continue
		}
		rec.Slug, rec.Body = doc.Slug, doc.Body
		p.Publications = append(p.Publications, rec)
	}

	for _, doc := range s.OfType(TypeExperience) {
		var rec Experience
		if !p.decode(doc, &rec) {
			continue
		}
		rec.Slug, rec.Body = doc.Slug, doc.Body
		p.Experience = append(p.Experience, rec)
	}

	for _, doc := range s.OfType(TypeEducation) {
		var rec Education
		if !p.decode(doc, &rec) {
			continue
		}
		rec.Slug, rec.Body = doc.Slug, doc.Body
		p.Education = append(p.Education, rec)
	}

	return p
}

// decode fills v from doc and reports whether the record should be kept.
// yaml.v3 still assigns every field it can when some values have the wrong
// type, so a *yaml.TypeError keeps the record.
func (p *Portfolio) decode(doc *Document, v any) bool {
	err := doc.Decode(v)
	if err == nil {
		return true
	}
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		p.Partial = append(p.Partial, doc.Rel)
		return true
	}
	p.Skipped = append(p.Skipped, doc.Rel)
	return false
}
