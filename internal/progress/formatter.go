package progress

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// formatStageCounter returns the [N/Total] stage counter string
func formatStageCounter(number, total int) string {
	return fmt.Sprintf("[%d/%d]", number, total)
}

// buildStageMessage constructs the running-stage message
func buildStageMessage(stage StageInfo) string {
	return fmt.Sprintf("%s %s...", formatStageCounter(stage.Number, stage.TotalStages), capitalize(stage.Name))
}

// capitalize returns the string with the first letter capitalized
func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// checkmark returns the appropriate checkmark symbol
func checkmark(symbols ProgressSymbols, supportsColor bool) string {
	return paint(symbols.Checkmark, color.FgGreen, supportsColor)
}

// failureMark returns the appropriate failure symbol
func failureMark(symbols ProgressSymbols, supportsColor bool) string {
	return paint(symbols.Failure, color.FgRed, supportsColor)
}

func paint(s string, attr color.Attribute, enabled bool) string {
	c := color.New(attr)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}
