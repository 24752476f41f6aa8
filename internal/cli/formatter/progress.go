package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a fraction as a bar with a percentage, e.g.
// "████░░░░░░  40%". pct is clamped to [0, 1].
func RenderProgress(pct float64, width int) string {
	pct = min(max(pct, 0), 1)
	width = max(width, 2)

	filled := min(int(pct*float64(width)+0.5), width)
	bar := StylePrimary.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled))

	return fmt.Sprintf("%s %3.0f%%", bar, pct*100)
}
