package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Reporter receives build stage transitions.
type Reporter interface {
	StartStage(stage StageInfo) error
	CompleteStage(stage StageInfo) error
	FailStage(stage StageInfo, err error) error
}

// ProgressDisplay orchestrates the display of progress indicators
type ProgressDisplay struct {
	out          io.Writer
	capabilities TerminalCapabilities
	currentStage *StageInfo
	spinner      *spinner.Spinner
	symbols      ProgressSymbols
}

// NewProgressDisplay creates a progress display writing to out
func NewProgressDisplay(out io.Writer, caps TerminalCapabilities) *ProgressDisplay {
	return &ProgressDisplay{
		out:          out,
		capabilities: caps,
		symbols:      SelectSymbols(caps),
	}
}

// StartStage begins displaying progress for a stage
func (p *ProgressDisplay) StartStage(stage StageInfo) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	p.StopSpinner()
	p.currentStage = &stage
	msg := buildStageMessage(stage)

	if p.capabilities.IsTTY {
		p.spinner = spinner.New(
			spinner.CharSets[p.symbols.SpinnerSet],
			100*time.Millisecond,
			spinner.WithWriter(p.out),
		)
		p.spinner.Suffix = " " + msg
		p.spinner.Start()
	} else {
		fmt.Fprintln(p.out, msg)
	}

	return nil
}

// CompleteStage stops the spinner and displays completion status
func (p *ProgressDisplay) CompleteStage(stage StageInfo) error {
	p.StopSpinner()

	mark := checkmark(p.symbols, p.capabilities.SupportsColor)
	counter := formatStageCounter(stage.Number, stage.TotalStages)
	if stage.Detail != "" {
		fmt.Fprintf(p.out, "%s %s %s (%s)\n", mark, counter, capitalize(stage.Name), stage.Detail)
	} else {
		fmt.Fprintf(p.out, "%s %s %s\n", mark, counter, capitalize(stage.Name))
	}

	p.currentStage = nil
	return nil
}

// FailStage stops the spinner and displays failure status
func (p *ProgressDisplay) FailStage(stage StageInfo, err error) error {
	p.StopSpinner()

	mark := failureMark(p.symbols, p.capabilities.SupportsColor)
	counter := formatStageCounter(stage.Number, stage.TotalStages)
	fmt.Fprintf(p.out, "%s %s %s failed: %v\n", mark, counter, capitalize(stage.Name), err)

	p.currentStage = nil
	return nil
}

// StopSpinner stops the spinner without showing completion/failure
func (p *ProgressDisplay) StopSpinner() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}

// Nop is a Reporter that prints nothing.
type Nop struct{}

func (Nop) StartStage(StageInfo) error { return nil }

func (Nop) CompleteStage(StageInfo) error { return nil }

func (Nop) FailStage(StageInfo, error) error { return nil }

// Run reports stage as started, runs fn, and reports completion with the
// detail fn returns, or failure with its error. The error from fn is
// returned unchanged.
func Run(r Reporter, stage StageInfo, fn func() (string, error)) error {
	stage.Status = StageInProgress
	if err := r.StartStage(stage); err != nil {
		return err
	}

	detail, err := fn()
	if err != nil {
		stage.Status = StageFailed
		_ = r.FailStage(stage, err)
		return err
	}

	stage.Status = StageCompleted
	stage.Detail = detail
	return r.CompleteStage(stage)
}
