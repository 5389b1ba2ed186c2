package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/folio/internal/content"
	"github.com/ariel-frischer/folio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// parseDoc parses data as a file of type t.
func parseDoc(t *testing.T, typ content.Type, rel, data string) *content.Document {
	t.Helper()
	layout, ok := content.LayoutFor(typ)
	require.True(t, ok, "no layout for %s", typ)
	doc, err := content.Parse(rel, typ, layout.Format, []byte(data))
	require.NoError(t, err)
	return doc
}

func messages(findings []*ValidationError) []string {
	var out []string
	for _, f := range findings {
		out = append(out, f.Message)
	}
	return out
}

func replace(s, old, new string) string {
	if !strings.Contains(s, old) {
		panic("fixture does not contain " + old)
	}
	return strings.Replace(s, old, new, 1)
}

func TestValidateDocumentFindings(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteFile(t, root, "assets/present.png", "png")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets", "dir"), 0o755))
	v := New(Options{Root: root})

	project := testutil.ProjectFile("Engine", 2020, "")
	profileBody := "---\n" + testutil.Words(25) + "\n"

	tests := map[string]struct {
		typ          content.Type
		data         string
		wantErrors   []string
		wantWarnings []string
	}{
		"valid project": {
			typ:  content.TypeProject,
			data: project,
		},
		"wrong year type": {
			typ:        content.TypeProject,
			data:       replace(project, "year: 2020", "year: soon"),
			wantErrors: []string{"wrong type for field 'year'"},
		},
		"year out of range": {
			typ:        content.TypeProject,
			data:       replace(project, "year: 2020", "year: 1800"),
			wantErrors: []string{"value out of range for field 'year'"},
		},
		"hex year below range": {
			typ:        content.TypeProject,
			data:       replace(project, "year: 2020", "year: 0x10"),
			wantErrors: []string{"value out of range for field 'year'"},
		},
		"octal year below range": {
			typ:        content.TypeProject,
			data:       replace(project, "year: 2020", "year: 0o17"),
			wantErrors: []string{"value out of range for field 'year'"},
		},
		"hex year in range": {
			typ:  content.TypeProject,
			data: replace(project, "year: 2020", "year: 0x7E4"),
		},
		"order zero": {
			typ:        content.TypeProject,
			data:       replace(project, "year: 2020", "year: 2020\norder: 0"),
			wantErrors: []string{"value out of range for field 'order'"},
		},
		"order one": {
			typ:  content.TypeProject,
			data: replace(project, "year: 2020", "year: 2020\norder: 1"),
		},
		"unknown status": {
			typ:        content.TypeProject,
			data:       replace(project, "status: completed", "status: done"),
			wantErrors: []string{"invalid value for field 'status'"},
		},
		"invalid repo url": {
			typ:        content.TypeProject,
			data:       replace(project, "repo: https://github.com/ada/engine", "repo: not a url"),
			wantErrors: []string{"invalid url for field 'repo'"},
		},
		"short title": {
			typ:        content.TypeProject,
			data:       testutil.ProjectFile("Go", 2020, ""),
			wantErrors: []string{"'title' is too short"},
		},
		"featured must be bool": {
			typ:        content.TypeProject,
			data:       replace(project, "year: 2020", "year: 2020\nfeatured: maybe"),
			wantErrors: []string{"wrong type for field 'featured'"},
		},
		"nested tech item": {
			typ:        content.TypeProject,
			data:       replace(project, "tech: [Go, YAML]", "tech: [Go, [nested]]"),
			wantErrors: []string{"wrong type for field 'tech[1]'"},
		},
		"unknown field warns": {
			typ:          content.TypeProject,
			data:         replace(project, "---\ntitle", "---\ncolor: blue\ntitle"),
			wantWarnings: []string{"unknown field: color"},
		},
		"short body warns": {
			typ:          content.TypeProject,
			data:         replace(project, testutil.Words(20), "Too short."),
			wantWarnings: []string{"short content"},
		},
		"present asset": {
			typ:  content.TypeProject,
			data: testutil.ProjectFile("Engine", 2020, "assets/present.png"),
		},
		"leading slash asset": {
			typ:  content.TypeProject,
			data: testutil.ProjectFile("Engine", 2020, "/assets/present.png"),
		},
		"remote asset": {
			typ:  content.TypeProject,
			data: testutil.ProjectFile("Engine", 2020, "https://cdn.example.com/engine.png"),
		},
		"missing asset warns": {
			typ:          content.TypeProject,
			data:         testutil.ProjectFile("Engine", 2020, "assets/missing.png"),
			wantWarnings: []string{"referenced asset not found: assets/missing.png"},
		},
		"escaping asset warns": {
			typ:          content.TypeProject,
			data:         testutil.ProjectFile("Engine", 2020, "../outside.png"),
			wantWarnings: []string{"asset path escapes the site root: ../outside.png"},
		},
		"directory asset warns": {
			typ:          content.TypeProject,
			data:         testutil.ProjectFile("Engine", 2020, "assets/dir"),
			wantWarnings: []string{"referenced asset is a directory: assets/dir"},
		},
		"end before start": {
			typ:        content.TypeExperience,
			data:       testutil.ExperienceFile("Analytical Co", "2020-05", "2019-01"),
			wantErrors: []string{"end date is before start date"},
		},
		"same month end": {
			typ:  content.TypeExperience,
			data: testutil.ExperienceFile("Analytical Co", "2020-05", "2020-05"),
		},
		"present end any case": {
			typ:  content.TypeExperience,
			data: testutil.ExperienceFile("Analytical Co", "2020-05", "Present"),
		},
		"full date start": {
			typ:  content.TypeExperience,
			data: testutil.ExperienceFile("Analytical Co", "2020-01-15", ""),
		},
		"unparseable start": {
			typ:        content.TypeExperience,
			data:       testutil.ExperienceFile("Analytical Co", "May 2020", ""),
			wantErrors: []string{"invalid date for field 'start'"},
		},
		"unparseable end": {
			typ:        content.TypeExperience,
			data:       testutil.ExperienceFile("Analytical Co", "2020-05", "soon"),
			wantErrors: []string{"invalid date-or-present for field 'end'"},
		},
		"education end before start": {
			typ:        content.TypeEducation,
			data:       replace(testutil.ValidEducation, "end: 2014-06", "end: 2009-06"),
			wantErrors: []string{"end date is before start date"},
		},
		"gpa must be numeric": {
			typ:        content.TypeEducation,
			data:       replace(testutil.ValidEducation, "gpa: 3.8", "gpa: high"),
			wantErrors: []string{"wrong type for field 'gpa'"},
		},
		"infinite gpa": {
			typ:        content.TypeEducation,
			data:       replace(testutil.ValidEducation, "gpa: 3.8", "gpa: .inf"),
			wantErrors: []string{"value out of range for field 'gpa'"},
		},
		"negative infinite gpa": {
			typ:        content.TypeEducation,
			data:       replace(testutil.ValidEducation, "gpa: 3.8", "gpa: -.inf"),
			wantErrors: []string{"value out of range for field 'gpa'"},
		},
		"nan gpa": {
			typ:        content.TypeEducation,
			data:       replace(testutil.ValidEducation, "gpa: 3.8", "gpa: .nan"),
			wantErrors: []string{"value out of range for field 'gpa'"},
		},
		"integer gpa": {
			typ:  content.TypeEducation,
			data: replace(testutil.ValidEducation, "gpa: 3.8", "gpa: 4"),
		},
		"invalid email": {
			typ:        content.TypeProfile,
			data:       "---\nname: Ada\ntitle: Engineer\nemail: nope\n" + profileBody,
			wantErrors: []string{"invalid email for field 'email'"},
		},
		"social entry checked": {
			typ:  content.TypeProfile,
			data: "---\nname: Ada\ntitle: Engineer\nsocial:\n  - platform: myspace\n" + profileBody,
			wantErrors: []string{
				"invalid value for field 'social[0].platform'",
				"missing required field: social[0].url",
			},
		},
		"social must be a list": {
			typ:        content.TypeProfile,
			data:       "---\nname: Ada\ntitle: Engineer\nsocial: https://github.com/ada\n" + profileBody,
			wantErrors: []string{"wrong type for field 'social'"},
		},
		"blank required value": {
			typ:        content.TypeProfile,
			data:       "---\nname: \"  \"\ntitle: Engineer\n" + profileBody,
			wantErrors: []string{"missing required field: name"},
		},
		"empty skills list": {
			typ:        content.TypeSkills,
			data:       "categories:\n  - name: Languages\n    skills: []\n",
			wantErrors: []string{"'categories[0].skills' needs at least 1 item(s)"},
		},
		"skill level out of range": {
			typ:        content.TypeSkills,
			data:       "categories:\n  - name: Languages\n    skills:\n      - name: Go\n        level: 9\n",
			wantErrors: []string{"value out of range for field 'categories[0].skills[0].level'"},
		},
		"category must be a mapping": {
			typ:        content.TypeSkills,
			data:       "categories:\n  - Languages\n",
			wantErrors: []string{"wrong type for field 'categories[0]'"},
		},
		"unknown top-level skills key": {
			typ:          content.TypeSkills,
			data:         testutil.ValidSkills + "groups: []\n",
			wantWarnings: []string{"unknown field: groups"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			doc := parseDoc(t, tt.typ, "file.md", tt.data)
			result := v.ValidateDocument(doc)

			assert.ElementsMatch(t, tt.wantErrors, messages(result.Errors()), "errors")
			assert.ElementsMatch(t, tt.wantWarnings, messages(result.Warnings()), "warnings")
			assert.Equal(t, len(tt.wantErrors) == 0, result.Valid())
		})
	}
}

func TestValidateDocumentFindingLocation(t *testing.T) {
	t.Parallel()

	data := "---\ntitle: Engine\nsummary: A long enough summary here\nyear: 1800\n---\n" + testutil.Words(20) + "\n"
	doc := parseDoc(t, content.TypeProject, "projects/engine.md", data)
	result := New(Options{}).ValidateDocument(doc)

	require.Len(t, result.Errors(), 1)
	finding := result.Errors()[0]
	assert.Equal(t, "year", finding.Path)
	assert.Equal(t, 4, finding.Line, "line counts from the top of the file")
	assert.Equal(t, 7, finding.Column)
	assert.Equal(t, "between 1970 and 2100", finding.Expected)
	assert.Equal(t, "1800", finding.Actual)
	assert.Equal(t, "projects/engine.md", result.Path)
	assert.Equal(t, content.TypeProject, result.Type)
}

func TestRequiredFieldsAreEnforced(t *testing.T) {
	t.Parallel()

	root := testutil.CreateCompleteSite(t)
	v := New(Options{Root: root})

	valid := map[content.Type]string{
		content.TypeProfile:     testutil.ValidProfile,
		content.TypeSkills:      testutil.ValidSkills,
		content.TypeProject:     testutil.ProjectFile("Engine", 2020, "assets/projects/engine.png"),
		content.TypePublication: testutil.ValidPublication,
		content.TypeExperience:  testutil.ExperienceFile("Analytical Co", "2020-01", "present"),
		content.TypeEducation:   testutil.ValidEducation,
	}

	for typ, data := range valid {
		schema, err := GetSchema(typ)
		require.NoError(t, err)

		t.Run(string(typ), func(t *testing.T) {
			t.Parallel()

			result := v.ValidateDocument(parseDoc(t, typ, "file", data))
			assert.Empty(t, result.Findings, "valid %s should have no findings", typ)

			for _, field := range schema.RequiredFields() {
				doc := parseDoc(t, typ, "file", data)
				require.True(t, removeKey(doc.Root, field), "fixture lacks %s", field)

				result := v.ValidateDocument(doc)
				assert.Contains(t, messages(result.Errors()), "missing required field: "+field)
				assert.False(t, result.Valid())
			}
		})
	}
}

func removeKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content = append(mapping.Content[:i], mapping.Content[i+2:]...)
			return true
		}
	}
	return false
}

func TestValidateDocumentNeverPanics(t *testing.T) {
	t.Parallel()

	v := New(Options{Root: t.TempDir()})

	t.Run("nil root", func(t *testing.T) {
		t.Parallel()
		doc := &content.Document{Rel: "profile.md", Type: content.TypeProfile}
		var result *FileResult
		require.NotPanics(t, func() { result = v.ValidateDocument(doc) })
		require.NotNil(t, result)
		assert.False(t, result.Valid())
		assert.True(t, containsPrefix(messages(result.Errors()), "internal validator error"))
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()
		doc := &content.Document{Rel: "blog/post.md", Type: "blog", Root: &yaml.Node{Kind: yaml.MappingNode}}
		result := v.ValidateDocument(doc)
		assert.Equal(t, []string{"no schema defined for content type: blog"}, messages(result.Errors()))
	})

	weird := map[string]string{
		"alias value":       "---\ntitle: &t Engine\nsummary: *t\n---\n",
		"mapping title":     "---\ntitle: {en: Engine}\nsummary: x\n---\n",
		"sequence summary":  "---\ntitle: Engine\nsummary: [a, b]\n---\n",
		"null everything":   "---\ntitle: ~\nsummary: null\nyear:\n---\n",
		"merge key":         "---\n<<: {title: Engine}\nsummary: A long enough summary\n---\n",
		"binary title":      "---\ntitle: !!binary aGVsbG8=\nsummary: A long enough summary\n---\n",
		"numeric keys":      "---\n1: one\n2.5: two\ntrue: three\n---\n",
		"tech mapping":      "---\ntitle: Engine\nsummary: A long enough summary\ntech: {go: true}\n---\n",
		"huge year":         "---\ntitle: Engine\nsummary: A long enough summary\nyear: 99999999999999999999999\n---\n",
		"hex year":          "---\ntitle: Engine\nsummary: A long enough summary\nyear: 0x7E4\n---\n",
		"complex key":       "---\n? [a, b]\n: value\ntitle: Engine\n---\n",
		"unicode title":     "---\ntitle: \"éé\"\nsummary: A long enough summary\n---\n",
		"empty front block": "---\n---\n",
	}

	for name, data := range weird {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			doc := parseDoc(t, content.TypeProject, "projects/weird.md", data)
			var result *FileResult
			require.NotPanics(t, func() { result = v.ValidateDocument(doc) })
			require.NotNil(t, result)
			assert.False(t, containsPrefix(messages(result.Errors()), "internal validator error"))
		})
	}
}

func containsPrefix(list []string, prefix string) bool {
	for _, s := range list {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func TestMinWordsOverride(t *testing.T) {
	t.Parallel()

	short := replace(testutil.ProjectFile("Engine", 2020, ""), testutil.Words(20), "Too short.")

	tests := map[string]struct {
		minWords map[content.Type]int
		typ      content.Type
		data     string
		want     bool
	}{
		"default project minimum":  {typ: content.TypeProject, data: short, want: true},
		"disabled for projects":    {minWords: map[content.Type]int{content.TypeProject: 0}, typ: content.TypeProject, data: short},
		"education threshold set":  {minWords: map[content.Type]int{content.TypeEducation: 5}, typ: content.TypeEducation, data: testutil.ValidEducation, want: true},
		"education has no default": {typ: content.TypeEducation, data: testutil.ValidEducation},
		"skills has no body":       {minWords: map[content.Type]int{content.TypeSkills: 50}, typ: content.TypeSkills, data: testutil.ValidSkills},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			v := New(Options{MinWords: tt.minWords})
			result := v.ValidateDocument(parseDoc(t, tt.typ, "file.md", tt.data))
			assert.Equal(t, tt.want, containsPrefix(messages(result.Warnings()), "short content"))
		})
	}
}

func loadSite(t *testing.T, root string) *content.Site {
	t.Helper()
	site, err := content.Load(root, filepath.Join(root, "content"))
	require.NoError(t, err)
	return site
}

func TestValidateSiteComplete(t *testing.T) {
	t.Parallel()

	root := testutil.CreateCompleteSite(t)
	result := New(Options{Root: root}).ValidateSite(loadSite(t, root))

	assert.True(t, result.Passed())
	assert.Zero(t, result.ErrorCount())
	assert.Zero(t, result.WarningCount())
	assert.Empty(t, result.Collection)
	require.Len(t, result.Files, 12)

	for i := 1; i < len(result.Files); i++ {
		assert.Less(t, result.Files[i-1].Path, result.Files[i].Path, "files are sorted by path")
	}
}

func TestValidateSiteFindings(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		setup          func(t *testing.T, root string)
		wantPassed     bool
		wantCollection []string
		wantFile       string
		wantFileError  string
	}{
		"parse failure becomes an error": {
			setup: func(t *testing.T, root string) {
				testutil.WriteFile(t, root, "content/projects/broken.md", "no front matter here\n")
			},
			wantFile:      "projects/broken.md",
			wantFileError: "failed to parse: ",
		},
		"yaml syntax failure": {
			setup: func(t *testing.T, root string) {
				testutil.WriteFile(t, root, "content/skills.yaml", "categories:\n  - name: [unclosed\n")
			},
			wantFile:      "skills.yaml",
			wantFileError: "failed to parse: ",
		},
		"missing profile": {
			setup: func(t *testing.T, root string) {
				testutil.RemoveFile(t, root, "content/profile.md")
			},
			wantCollection: []string{"missing required file: profile.md"},
		},
		"missing skills": {
			setup: func(t *testing.T, root string) {
				testutil.RemoveFile(t, root, "content/skills.yaml")
			},
			wantCollection: []string{"missing required file: skills.yaml"},
		},
		"empty optional collection warns": {
			setup: func(t *testing.T, root string) {
				testutil.RemoveFile(t, root, "content/education/london.md")
			},
			wantPassed:     true,
			wantCollection: []string{"no education files found"},
		},
		"duplicate project titles warn": {
			setup: func(t *testing.T, root string) {
				testutil.WriteFile(t, root, "content/projects/zz-engine.md", testutil.ProjectFile("engine", 2019, ""))
			},
			wantPassed:     true,
			wantCollection: []string{`duplicate project title "engine" (also in projects/engine.md)`},
		},
		"second skills file warns": {
			setup: func(t *testing.T, root string) {
				testutil.WriteFile(t, root, "content/skills.yml", testutil.ValidSkills)
			},
			wantPassed:     true,
			wantCollection: []string{"ignored skills file: skills.yml (using skills.yaml)"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root := testutil.CreateCompleteSite(t)
			tt.setup(t, root)
			result := New(Options{Root: root}).ValidateSite(loadSite(t, root))

			assert.Equal(t, tt.wantPassed, result.Passed())
			assert.ElementsMatch(t, tt.wantCollection, messages(result.Collection))

			if tt.wantFile == "" {
				return
			}
			var file *FileResult
			for _, f := range result.Files {
				if f.Path == tt.wantFile {
					file = f
				}
			}
			require.NotNil(t, file, "no result for %s", tt.wantFile)
			require.Len(t, file.Errors(), 1)
			assert.True(t, strings.HasPrefix(file.Errors()[0].Message, tt.wantFileError), file.Errors()[0].Message)
			assert.NotEmpty(t, file.Errors()[0].Hint)
		})
	}
}

func TestResultCounts(t *testing.T) {
	t.Parallel()

	file := &FileResult{Path: "profile.md"}
	file.AddError(&ValidationError{Message: "e"})
	file.AddWarning(&ValidationError{Message: "w"})

	result := &Result{
		Files: []*FileResult{file, {Path: "skills.yaml"}},
		Collection: []*ValidationError{
			{Severity: SeverityWarning, Message: "no project files found"},
			{Severity: SeverityError, Message: "missing required file: profile.md"},
		},
	}

	assert.Equal(t, 2, result.ErrorCount())
	assert.Equal(t, 2, result.WarningCount())
	assert.False(t, result.Passed())
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		ok    bool
		month int
	}{
		"year month":     {input: "2020-05", ok: true, month: 5},
		"full date":      {input: "2020-05-17", ok: true, month: 5},
		"padded":         {input: " 2020-05 ", ok: true, month: 5},
		"year only":      {input: "2020"},
		"month thirteen": {input: "2020-13"},
		"slashes":        {input: "2020/05"},
		"words":          {input: "May 2020"},
		"empty":          {input: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, 2020, got.Year())
				assert.Equal(t, tt.month, int(got.Month()))
			}
		})
	}
}

func TestIsPresent(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]bool{
		"present":   true,
		"Present":   true,
		" PRESENT ": true,
		"now":       false,
		"":          false,
		"2020-01":   false,
	} {
		assert.Equal(t, want, IsPresent(input), input)
	}
}
