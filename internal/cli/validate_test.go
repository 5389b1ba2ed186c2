package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ariel-frischer/folio/internal/report"
	"github.com/ariel-frischer/folio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const badProject = "---\ntitle: Bad\n---\nA project without a summary.\n"

func runValidateCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCommand(t, runValidate, addValidateFlags, args...)
}

func TestValidateCommand(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		setup    func(t *testing.T, root string)
		flags    []string
		wantCode int
		contains []string
	}{
		"complete site passes": {
			wantCode: ExitSuccess,
			contains: []string{"✓ content/profile.md", "12 file(s) checked: 0 error(s), 0 warning(s)", "Completeness: 100%"},
		},
		"missing required field fails": {
			setup: func(t *testing.T, root string) {
				testutil.WriteFile(t, root, "content/projects/bad.md", badProject)
			},
			wantCode: ExitValidationFailed,
			contains: []string{"✗ content/projects/bad.md", "missing required field: summary", "Validation failed: 1 error(s)"},
		},
		"missing asset warns": {
			setup: func(t *testing.T, root string) {
				testutil.RemoveFile(t, root, "assets/avatar.png")
			},
			wantCode: ExitSuccess,
			contains: []string{"! content/profile.md (1 warning(s))", "referenced asset not found: assets/avatar.png"},
		},
		"warnings pass without strict": {
			setup: func(t *testing.T, root string) {
				testutil.RemoveFile(t, root, "content/education/london.md")
			},
			wantCode: ExitSuccess,
			contains: []string{"no education files found"},
		},
		"warnings fail with strict flag": {
			setup: func(t *testing.T, root string) {
				testutil.RemoveFile(t, root, "content/education/london.md")
			},
			flags:    []string{"--strict"},
			wantCode: ExitValidationFailed,
			contains: []string{"warning(s) in strict mode"},
		},
		"warnings fail with strict config": {
			setup: func(t *testing.T, root string) {
				testutil.RemoveFile(t, root, "content/education/london.md")
				testutil.WriteFile(t, root, "folio.yaml", "strict: true\n")
			},
			wantCode: ExitValidationFailed,
			contains: []string{"warning(s) in strict mode"},
		},
		"min score from config": {
			setup: func(t *testing.T, root string) {
				testutil.RemoveFile(t, root, "content/education/london.md")
				testutil.WriteFile(t, root, "folio.yaml", "min_score: 100\n")
			},
			wantCode: ExitValidationFailed,
			contains: []string{"is below the minimum of 100%"},
		},
		"min score flag overrides config": {
			setup: func(t *testing.T, root string) {
				testutil.RemoveFile(t, root, "content/education/london.md")
				testutil.WriteFile(t, root, "folio.yaml", "min_score: 100\n")
			},
			flags:    []string{"--min-score", "0"},
			wantCode: ExitSuccess,
		},
		"missing content directory": {
			setup: func(t *testing.T, root string) {
				testutil.WriteFile(t, root, "folio.yaml", "content_dir: elsewhere\n")
			},
			wantCode: ExitMissingContent,
		},
		"invalid config": {
			setup: func(t *testing.T, root string) {
				testutil.WriteFile(t, root, "folio.yaml", "min_score: [oops\n")
			},
			wantCode: ExitInvalidArguments,
		},
		"out of range config": {
			setup: func(t *testing.T, root string) {
				testutil.WriteFile(t, root, "folio.yaml", "min_score: 150\n")
			},
			wantCode: ExitInvalidArguments,
		},
		"invalid format": {
			flags:    []string{"--format", "xml"},
			wantCode: ExitInvalidArguments,
		},
		"min score out of range": {
			flags:    []string{"--min-score", "101"},
			wantCode: ExitInvalidArguments,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root := testutil.CreateCompleteSite(t)
			if tt.setup != nil {
				tt.setup(t, root)
			}

			out, err := runValidateCommand(t, append([]string{root}, tt.flags...)...)
			assert.Equal(t, tt.wantCode, ExitCode(err), "output:\n%s", out)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestValidateCommandJSON(t *testing.T) {
	t.Parallel()

	root := testutil.CreateCompleteSite(t)
	testutil.WriteFile(t, root, "content/projects/bad.md", badProject)

	out, err := runValidateCommand(t, root, "--format", "json")
	assert.Equal(t, ExitValidationFailed, ExitCode(err))

	var decoded struct {
		Root     string `json:"root"`
		Passed   bool   `json:"passed"`
		Errors   int    `json:"errors"`
		Warnings int    `json:"warnings"`
		Score    struct {
			Percent int `json:"percent"`
		} `json:"score"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded), out)
	assert.False(t, decoded.Passed)
	assert.Equal(t, 1, decoded.Errors)
	assert.Equal(t, 100, decoded.Score.Percent)
	assert.True(t, filepath.IsAbs(decoded.Root))
}

func TestValidateCommandRejectsExtraArgs(t *testing.T) {
	t.Parallel()

	_, err := runValidateCommand(t, "a", "b")
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}

func TestWatchSiteRevalidatesOnChange(t *testing.T) {
	t.Parallel()

	root := testutil.CreateCompleteSite(t)
	testutil.WriteFile(t, root, "folio.yaml", "watch_debounce_ms: 50\n")
	s, err := newSession(root, "folio.yaml")
	require.NoError(t, err)

	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- watchSite(ctx, &out, s, validateOptions{format: report.FormatText})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Watching")
	}, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, out.String(), "0 error(s)")

	testutil.WriteFile(t, root, "content/projects/bad.md", badProject)

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "missing required field: summary")
	}, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, out.String(), "Change detected: content/projects/bad.md")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err, "validation results never end watch mode with an error")
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestDescribeChanges(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/site")
	abs := func(rel string) string { return filepath.Join(root, filepath.FromSlash(rel)) }

	tests := map[string]struct {
		paths []string
		want  string
	}{
		"single":   {paths: []string{abs("content/profile.md")}, want: "content/profile.md"},
		"three":    {paths: []string{abs("a.md"), abs("b.md"), abs("c.md")}, want: "a.md, b.md, c.md"},
		"overflow": {paths: []string{abs("a.md"), abs("b.md"), abs("c.md"), abs("d.md"), abs("e.md")}, want: "a.md, b.md, c.md and 2 more"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, describeChanges(root, tt.paths))
		})
	}
}
