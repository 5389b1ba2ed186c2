package cli

import (
	"bytes"
	"testing"

	"github.com/ariel-frischer/folio/internal/content"
	"github.com/ariel-frischer/folio/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSchema(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCommand(t, schemaCmd.RunE, nil, args...)
}

func TestSchemaCommandListsTypes(t *testing.T) {
	t.Parallel()

	out, err := runSchema(t)
	require.NoError(t, err)

	for _, layout := range content.Layouts {
		assert.Contains(t, out, string(layout.Type))
		assert.Contains(t, out, layout.Pattern)
	}
	assert.Contains(t, out, "required")
	assert.Contains(t, out, "optional")
}

func TestSchemaCommand(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		arg      string
		contains []string
	}{
		"project": {
			arg: "project",
			contains: []string{
				"Schema for project files",
				"Location: projects/**/*.md",
				"title: string, min 3 (required)",
				"status: enum[active, completed, archived, wip]",
				"image: string, asset path",
				"year: int, 1970..2100",
				"tech: array[string]",
				"Markdown body",
			},
		},
		"plural name": {
			arg:      "projects",
			contains: []string{"Schema for project files"},
		},
		"skills nesting": {
			arg: "skills",
			contains: []string{
				"categories: array, min 1 (required)",
				"  name: string, min 2 (required)",
				"    level: int, 1..5",
			},
		},
		"experience dates": {
			arg:      "experience",
			contains: []string{"start: string, date (required)", "end: string, date-or-present"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, err := runSchema(t, tt.arg)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestSchemaCommandSkillsHasNoBody(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printSchema(content.TypeSkills, &buf))
	assert.NotContains(t, buf.String(), "Markdown body")
}

func TestSchemaCommandInvalidType(t *testing.T) {
	t.Parallel()

	_, err := runSchema(t, "blog")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
	assert.Contains(t, err.Error(), `unknown content type: "blog"`)
}

func TestFieldTypeString(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		field validation.SchemaField
		want  string
	}{
		"plain string": {field: validation.SchemaField{Type: validation.FieldTypeString}, want: "string"},
		"url":          {field: validation.SchemaField{Type: validation.FieldTypeString, Format: validation.FormatURL}, want: "string, url"},
		"asset":        {field: validation.SchemaField{Type: validation.FieldTypeString, Asset: true}, want: "string, asset path"},
		"number range": {field: validation.SchemaField{Type: validation.FieldTypeNumber, Range: &validation.Range{Min: 0, Max: 4.5}}, want: "number, 0..4.5"},
		"enum":         {field: validation.SchemaField{Type: validation.FieldTypeString, Enum: []string{"a", "b"}}, want: "enum[a, b]"},
		"scalar array": {field: validation.SchemaField{Type: validation.FieldTypeArray, Items: validation.FieldTypeString, MinLength: 1}, want: "array[string], min 1"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fieldTypeString(tt.field))
		})
	}
}
