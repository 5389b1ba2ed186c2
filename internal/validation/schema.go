package validation

import (
	"fmt"

	"github.com/ariel-frischer/folio/internal/content"
)

// FieldType represents the expected type of a schema field.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeInt    FieldType = "int"
	FieldTypeNumber FieldType = "number"
	FieldTypeBool   FieldType = "bool"
	FieldTypeArray  FieldType = "array"
	FieldTypeObject FieldType = "object"
)

// Format is a named string format checked after the type check.
type Format string

const (
	FormatNone          Format = ""
	FormatURL           Format = "url"
	FormatEmail         Format = "email"
	FormatDate          Format = "date"
	FormatDateOrPresent Format = "date-or-present"
)

// Range bounds a numeric field, inclusive on both ends.
type Range struct {
	Min float64
	Max float64
}

// SchemaField defines a field in a content schema.
type SchemaField struct {
	Name        string        // Field name in YAML
	Type        FieldType     // Expected type
	Required    bool          // Whether field must be present and non-empty
	MinLength   int           // Minimum rune count for strings, item count for arrays
	Enum        []string      // Valid values for enum fields (optional)
	Format      Format        // String format (optional)
	Range       *Range        // Numeric bounds (optional)
	Asset       bool          // Value is a path that must exist under the site root
	Items       FieldType     // Element type for arrays of scalars
	Description string        // Human-readable description
	Children    []SchemaField // Nested fields for objects and arrays of objects
}

// Schema represents the complete schema for a content type.
type Schema struct {
	Type        content.Type
	Description string
	Fields      []SchemaField
	// HasBody is set for Markdown types whose body is rendered.
	HasBody bool
}

var socialPlatforms = []string{"github", "gitlab", "linkedin", "twitter", "mastodon", "bluesky", "scholar", "orcid", "website", "other"}

// ProfileSchema defines the schema for profile.md.
var ProfileSchema = Schema{
	Type:        content.TypeProfile,
	Description: "Portfolio owner profile; the Markdown body is the bio",
	HasBody:     true,
	Fields: []SchemaField{
		{Name: "name", Type: FieldTypeString, Required: true, MinLength: 2, Description: "Full name"},
		{Name: "title", Type: FieldTypeString, Required: true, MinLength: 2, Description: "Professional title"},
		{Name: "tagline", Type: FieldTypeString, Description: "One-line introduction"},
		{Name: "email", Type: FieldTypeString, Format: FormatEmail, Description: "Contact email address"},
		{Name: "location", Type: FieldTypeString, Description: "City or region"},
		{Name: "avatar", Type: FieldTypeString, Asset: true, Description: "Profile image path"},
		{Name: "resume", Type: FieldTypeString, Asset: true, Description: "Resume PDF path"},
		{Name: "website", Type: FieldTypeString, Format: FormatURL, Description: "Personal website URL"},
		{
			Name:        "social",
			Type:        FieldTypeArray,
			Description: "Social profile links",
			Children: []SchemaField{
				{Name: "platform", Type: FieldTypeString, Required: true, Enum: socialPlatforms, Description: "Link platform"},
				{Name: "url", Type: FieldTypeString, Required: true, Format: FormatURL, Description: "Profile URL"},
			},
		},
	},
}

// SkillsSchema defines the schema for skills.yaml.
var SkillsSchema = Schema{
	Type:        content.TypeSkills,
	Description: "Skill categories with named skills and optional proficiency",
	Fields: []SchemaField{
		{
			Name:        "categories",
			Type:        FieldTypeArray,
			Required:    true,
			MinLength:   1,
			Description: "Skill categories",
			Children: []SchemaField{
				{Name: "name", Type: FieldTypeString, Required: true, MinLength: 2, Description: "Category name"},
				{
					Name:        "skills",
					Type:        FieldTypeArray,
					Required:    true,
					MinLength:   1,
					Description: "Skills in this category",
					Children: []SchemaField{
						{Name: "name", Type: FieldTypeString, Required: true, Description: "Skill name"},
						{Name: "level", Type: FieldTypeInt, Range: &Range{Min: 1, Max: 5}, Description: "Proficiency from 1 to 5"},
						{Name: "years", Type: FieldTypeInt, Range: &Range{Min: 0, Max: 60}, Description: "Years of experience"},
					},
				},
			},
		},
	},
}

// ProjectSchema defines the schema for projects/*.md.
var ProjectSchema = Schema{
	Type:        content.TypeProject,
	Description: "Portfolio project; the Markdown body is the write-up",
	HasBody:     true,
	Fields: []SchemaField{
		{Name: "title", Type: FieldTypeString, Required: true, MinLength: 3, Description: "Project title"},
		{Name: "summary", Type: FieldTypeString, Required: true, MinLength: 10, Description: "One or two sentence summary"},
		{Name: "status", Type: FieldTypeString, Enum: []string{"active", "completed", "archived", "wip"}, Description: "Project status"},
		{Name: "tech", Type: FieldTypeArray, Items: FieldTypeString, Description: "Technologies used"},
		{Name: "repo", Type: FieldTypeString, Format: FormatURL, Description: "Source repository URL"},
		{Name: "demo", Type: FieldTypeString, Format: FormatURL, Description: "Live demo URL"},
		{Name: "image", Type: FieldTypeString, Asset: true, Description: "Screenshot or cover image path"},
		{Name: "year", Type: FieldTypeInt, Range: &Range{Min: 1970, Max: 2100}, Description: "Year of the project"},
		{Name: "featured", Type: FieldTypeBool, Description: "Show in the featured section"},
		{Name: "order", Type: FieldTypeInt, Range: &Range{Min: 1, Max: 1000}, Description: "Sort order from 1, lower first"},
	},
}

// PublicationSchema defines the schema for publications/*.md.
var PublicationSchema = Schema{
	Type:        content.TypePublication,
	Description: "Published work; the Markdown body is the abstract",
	HasBody:     true,
	Fields: []SchemaField{
		{Name: "title", Type: FieldTypeString, Required: true, MinLength: 3, Description: "Publication title"},
		{Name: "authors", Type: FieldTypeArray, Required: true, MinLength: 1, Items: FieldTypeString, Description: "Author names in order"},
		{Name: "venue", Type: FieldTypeString, Description: "Journal, conference or publisher"},
		{Name: "year", Type: FieldTypeInt, Required: true, Range: &Range{Min: 1800, Max: 2100}, Description: "Publication year"},
		{Name: "kind", Type: FieldTypeString, Enum: []string{"journal", "conference", "workshop", "preprint", "thesis", "book", "chapter", "patent", "other"}, Description: "Publication kind"},
		{Name: "doi", Type: FieldTypeString, Description: "Digital Object Identifier"},
		{Name: "url", Type: FieldTypeString, Format: FormatURL, Description: "Landing page URL"},
		{Name: "pdf", Type: FieldTypeString, Asset: true, Description: "Local PDF path"},
	},
}

// ExperienceSchema defines the schema for experience/*.md.
var ExperienceSchema = Schema{
	Type:        content.TypeExperience,
	Description: "Work experience entry; the Markdown body describes the role",
	HasBody:     true,
	Fields: []SchemaField{
		{Name: "company", Type: FieldTypeString, Required: true, Description: "Employer name"},
		{Name: "role", Type: FieldTypeString, Required: true, Description: "Job title"},
		{Name: "start", Type: FieldTypeString, Required: true, Format: FormatDate, Description: "Start date (YYYY-MM or YYYY-MM-DD)"},
		{Name: "end", Type: FieldTypeString, Format: FormatDateOrPresent, Description: "End date or \"present\""},
		{Name: "location", Type: FieldTypeString, Description: "Work location"},
		{Name: "employment", Type: FieldTypeString, Enum: []string{"full-time", "part-time", "contract", "internship", "freelance", "volunteer"}, Description: "Employment type"},
		{Name: "highlights", Type: FieldTypeArray, Items: FieldTypeString, Description: "Key achievements"},
	},
}

// EducationSchema defines the schema for education/*.md.
var EducationSchema = Schema{
	Type:        content.TypeEducation,
	Description: "Education entry; the Markdown body adds detail",
	HasBody:     true,
	Fields: []SchemaField{
		{Name: "institution", Type: FieldTypeString, Required: true, Description: "School or university"},
		{Name: "degree", Type: FieldTypeString, Required: true, Description: "Degree or certificate"},
		{Name: "field", Type: FieldTypeString, Description: "Field of study"},
		{Name: "start", Type: FieldTypeString, Format: FormatDate, Description: "Start date (YYYY-MM or YYYY-MM-DD)"},
		{Name: "end", Type: FieldTypeString, Format: FormatDateOrPresent, Description: "End date or \"present\""},
		{Name: "gpa", Type: FieldTypeNumber, Range: &Range{Min: 0, Max: 10}, Description: "Grade point average"},
		{Name: "honors", Type: FieldTypeArray, Items: FieldTypeString, Description: "Honors and awards"},
	},
}

var schemas = map[content.Type]*Schema{
	content.TypeProfile:     &ProfileSchema,
	content.TypeSkills:      &SkillsSchema,
	content.TypeProject:     &ProjectSchema,
	content.TypePublication: &PublicationSchema,
	content.TypeExperience:  &ExperienceSchema,
	content.TypeEducation:   &EducationSchema,
}

// GetSchema returns the schema for the given content type.
func GetSchema(t content.Type) (*Schema, error) {
	schema, ok := schemas[t]
	if !ok {
		return nil, fmt.Errorf("no schema defined for content type: %s", t)
	}
	return schema, nil
}

// RequiredFields returns the names of the required top-level fields.
func (s *Schema) RequiredFields() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}
