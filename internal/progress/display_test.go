// Package progress_test tests build stage rendering, stage counters, checkmarks, and spinner lifecycle.
// Related: internal/progress/display.go
// Tags: progress, display, rendering, stages, spinner, tty
package progress_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ariel-frischer/folio/internal/progress"
)

var plainCaps = progress.TerminalCapabilities{}

// TestProgressDisplay_StartStage tests stage counter rendering
func TestProgressDisplay_StartStage(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		stage        progress.StageInfo
		wantContains []string
		wantErr      bool
	}{
		"first stage": {
			stage:        progress.StageInfo{Name: "load content", Number: 1, TotalStages: 4, Status: progress.StageInProgress},
			wantContains: []string{"[1/4]", "Load content..."},
		},
		"last stage": {
			stage:        progress.StageInfo{Name: "copy assets", Number: 4, TotalStages: 4, Status: progress.StageInProgress},
			wantContains: []string{"[4/4]", "Copy assets"},
		},
		"invalid stage - empty name": {
			stage:   progress.StageInfo{Name: "", Number: 1, TotalStages: 3},
			wantErr: true,
		},
		"invalid stage - number past total": {
			stage:   progress.StageInfo{Name: "render", Number: 5, TotalStages: 4},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			display := progress.NewProgressDisplay(&buf, plainCaps)
			err := display.StartStage(tt.stage)

			if tt.wantErr {
				if err == nil {
					t.Errorf("StartStage() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("StartStage() unexpected error = %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("StartStage() output = %q, want to contain %q", buf.String(), want)
				}
			}
		})
	}
}

// TestProgressDisplay_SpinnerLifecycle starts and stops a spinner on a TTY-like display
func TestProgressDisplay_SpinnerLifecycle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	caps := progress.TerminalCapabilities{IsTTY: true, SupportsUnicode: true}
	display := progress.NewProgressDisplay(&buf, caps)
	stage := progress.StageInfo{Name: "render", Number: 2, TotalStages: 4}

	if err := display.StartStage(stage); err != nil {
		t.Fatalf("StartStage() unexpected error = %v", err)
	}
	if err := display.CompleteStage(stage); err != nil {
		t.Fatalf("CompleteStage() unexpected error = %v", err)
	}
	display.StopSpinner()

	if !strings.Contains(buf.String(), "✓ [2/4] Render") {
		t.Errorf("output = %q, want completion line", buf.String())
	}
}

// TestProgressDisplay_CompleteStage tests completion checkmarks
func TestProgressDisplay_CompleteStage(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		capabilities progress.TerminalCapabilities
		stage        progress.StageInfo
		wantContains []string
	}{
		"Unicode checkmark": {
			capabilities: progress.TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			stage:        progress.StageInfo{Name: "validate", Number: 2, TotalStages: 4, Status: progress.StageCompleted},
			wantContains: []string{"✓", "[2/4]", "Validate"},
		},
		"ASCII checkmark": {
			capabilities: plainCaps,
			stage:        progress.StageInfo{Name: "render", Number: 3, TotalStages: 4, Status: progress.StageCompleted},
			wantContains: []string{"[OK]", "[3/4]", "Render"},
		},
		"detail is shown": {
			capabilities: plainCaps,
			stage:        progress.StageInfo{Name: "copy assets", Number: 4, TotalStages: 4, Detail: "3 files"},
			wantContains: []string{"[OK] [4/4] Copy assets (3 files)"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			display := progress.NewProgressDisplay(&buf, tt.capabilities)
			_ = display.CompleteStage(tt.stage)

			for _, want := range tt.wantContains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("CompleteStage() output = %q, want to contain %q", buf.String(), want)
				}
			}
		})
	}
}

// TestProgressDisplay_FailStage tests failure indicators
func TestProgressDisplay_FailStage(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		capabilities progress.TerminalCapabilities
		wantMark     string
	}{
		"Unicode failure": {
			capabilities: progress.TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			wantMark:     "✗",
		},
		"ASCII failure": {
			capabilities: plainCaps,
			wantMark:     "[FAIL]",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			display := progress.NewProgressDisplay(&buf, tt.capabilities)
			stage := progress.StageInfo{Name: "render", Number: 3, TotalStages: 4, Status: progress.StageFailed}
			_ = display.FailStage(stage, errors.New("template error"))

			out := buf.String()
			for _, want := range []string{tt.wantMark, "[3/4]", "Render failed", "template error"} {
				if !strings.Contains(out, want) {
					t.Errorf("FailStage() output = %q, want to contain %q", out, want)
				}
			}
		})
	}
}

// TestProgressDisplay_ColorDisabled verifies no ANSI codes are written without color support
func TestProgressDisplay_ColorDisabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	display := progress.NewProgressDisplay(&buf, progress.TerminalCapabilities{SupportsUnicode: true})
	_ = display.CompleteStage(progress.StageInfo{Name: "render", Number: 1, TotalStages: 1})

	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("output = %q, want no ANSI escape codes", buf.String())
	}
}

// TestNop implements Reporter without output
func TestNop(t *testing.T) {
	t.Parallel()

	var r progress.Reporter = progress.Nop{}
	stage := progress.StageInfo{Name: "render", Number: 1, TotalStages: 1}
	if err := r.StartStage(stage); err != nil {
		t.Error(err)
	}
	if err := r.CompleteStage(stage); err != nil {
		t.Error(err)
	}
	if err := r.FailStage(stage, errors.New("x")); err != nil {
		t.Error(err)
	}
}

// TestRun reports start and completion, or failure with the stage error
func TestRun(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		fn           func() (string, error)
		wantErr      bool
		wantContains []string
	}{
		"success with detail": {
			fn:           func() (string, error) { return "index.html", nil },
			wantContains: []string{"[1/2] Render...", "[OK] [1/2] Render (index.html)"},
		},
		"failure": {
			fn:           func() (string, error) { return "", errors.New("disk full") },
			wantErr:      true,
			wantContains: []string{"[FAIL] [1/2] Render failed: disk full"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			display := progress.NewProgressDisplay(&buf, plainCaps)
			err := progress.Run(display, progress.StageInfo{Name: "render", Number: 1, TotalStages: 2}, tt.fn)

			if tt.wantErr != (err != nil) {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("Run() output = %q, want to contain %q", buf.String(), want)
				}
			}
		})
	}
}
