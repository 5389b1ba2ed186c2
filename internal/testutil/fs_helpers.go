// Package testutil provides fixture writers for folio tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes data to root/rel, creating parent directories.
// Returns the full path.
func WriteFile(t *testing.T, root, rel, data string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
	return path
}

// WriteSite writes files (slash-separated paths relative to root) into root.
func WriteSite(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, data := range files {
		WriteFile(t, root, rel, data)
	}
}

// RemoveFile deletes root/rel.
func RemoveFile(t *testing.T, root, rel string) {
	t.Helper()

	if err := os.Remove(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
		t.Fatalf("failed to remove %s: %v", rel, err)
	}
}

// Words returns n space-separated filler words.
func Words(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i+1)
	}
	return strings.Join(words, " ")
}

// ValidProfile is a profile.md that passes validation and earns every
// profile criterion when the site assets exist.
var ValidProfile = `---
name: Ada Lovelace
title: Research Engineer
tagline: Building analytical engines
email: ada@example.com
location: London
avatar: assets/avatar.png
resume: assets/resume.pdf
website: https://ada.example.com
social:
  - platform: github
    url: https://github.com/ada
  - platform: linkedin
    url: https://www.linkedin.com/in/ada
---
` + Words(30) + "\n"

// ValidSkills is a skills.yaml with three categories and ten skills.
const ValidSkills = `categories:
  - name: Languages
    skills:
      - name: Go
        level: 5
        years: 8
      - name: Python
        level: 4
      - name: SQL
        level: 4
      - name: TypeScript
  - name: Infrastructure
    skills:
      - name: Kubernetes
        level: 3
      - name: Terraform
      - name: PostgreSQL
  - name: Practices
    skills:
      - name: Testing
      - name: Code review
      - name: Observability
`

// ProjectFile returns a valid project file with the given title.
func ProjectFile(title string, year int, image string) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("title: %s\n", title))
	sb.WriteString(fmt.Sprintf("summary: %s is a project with a long enough summary\n", title))
	sb.WriteString("status: completed\n")
	sb.WriteString("tech: [Go, YAML]\n")
	sb.WriteString("repo: https://github.com/ada/" + strings.ToLower(strings.ReplaceAll(title, " ", "-")) + "\n")
	if image != "" {
		sb.WriteString(fmt.Sprintf("image: %s\n", image))
	}
	sb.WriteString(fmt.Sprintf("year: %d\n", year))
	sb.WriteString("---\n")
	sb.WriteString(Words(20) + "\n")
	return sb.String()
}

// ValidPublication is a publication file with every common field.
const ValidPublication = `---
title: Notes on the Analytical Engine
authors: [Ada Lovelace, Charles Babbage]
venue: Scientific Memoirs
year: 1843
kind: journal
doi: 10.1000/engine
pdf: assets/notes.pdf
---
An abstract of the notes.
`

// ExperienceFile returns a valid experience file.
func ExperienceFile(company, start, end string) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("company: %s\n", company))
	sb.WriteString("role: Engineer\n")
	sb.WriteString(fmt.Sprintf("start: %s\n", start))
	if end != "" {
		sb.WriteString(fmt.Sprintf("end: %s\n", end))
	}
	sb.WriteString("employment: full-time\n")
	sb.WriteString("highlights:\n  - Shipped things\n")
	sb.WriteString("---\n")
	sb.WriteString("Worked on engines.\n")
	return sb.String()
}

// ValidEducation is an education file with every common field.
const ValidEducation = `---
institution: University of London
degree: BSc
field: Mathematics
start: 2010-09
end: 2014-06
gpa: 3.8
honors: [First Class]
---
Studied mathematics.
`

// CompleteSite returns the files of a portfolio that validates without
// errors or warnings and scores 100.
func CompleteSite() map[string]string {
	files := map[string]string{
		"content/profile.md":               ValidProfile,
		"content/skills.yaml":              ValidSkills,
		"content/publications/engine.md":   ValidPublication,
		"content/experience/analytical.md": ExperienceFile("Analytical Co", "2020-01", "present"),
		"content/experience/difference.md": ExperienceFile("Difference Ltd", "2017-03", "2019-12"),
		"content/experience/jacquard.md":   ExperienceFile("Jacquard Looms", "2014-07", "2017-02"),
		"content/education/london.md":      ValidEducation,
		"assets/avatar.png":                "png",
		"assets/resume.pdf":                "pdf",
		"assets/notes.pdf":                 "pdf",
		"assets/projects/engine.png":       "png",
	}
	for i, title := range []string{"Engine", "Loom Control", "Bernoulli Numbers", "Punch Cards", "Difference Tables"} {
		image := ""
		if i == 0 {
			image = "assets/projects/engine.png"
		}
		slug := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
		files["content/projects/"+slug+".md"] = ProjectFile(title, 2020+i, image)
	}
	return files
}

// CreateCompleteSite writes CompleteSite into a new temp directory and
// returns the site root.
func CreateCompleteSite(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	WriteSite(t, root, CompleteSite())
	return root
}
