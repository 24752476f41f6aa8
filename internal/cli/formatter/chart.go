package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// MonthAbbr holds the x-axis labels of a calendar year.
var MonthAbbr = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// StackedBarChart renders one bar per month, stacked by project code in
// chart slot colours, with a y-axis in hours and a legend underneath.
func StackedBarChart(m domain.YearMetrics, width, height int) string {
	if height < 4 {
		height = 4
	}

	maxVal := 0.0
	for _, v := range m.MonthTotals {
		maxVal = math.Max(maxVal, v)
	}
	if maxVal == 0 {
		return Dim("  No hours logged in " + fmt.Sprint(m.Year) + ".")
	}

	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)
	rowsPerTick := max(height/numIntervals, 2)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	tickLabels := make(map[int]string, numIntervals)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	chartW := max(width-yLabelW-1, 12*3)
	barW := min(max((chartW-11)/12, 1), 6)
	axisLen := 12*barW + 11

	axis := StyleDim
	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		mid := ceiling * (float64(row) - 0.5) / float64(chartH)
		b.WriteString(axis.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axis.Render("│"))
		for month := 0; month < 12; month++ {
			if month > 0 {
				b.WriteString(" ")
			}
			slot := stackSlotAt(m, month, mid)
			if slot == 0 {
				b.WriteString(strings.Repeat(" ", barW))
				continue
			}
			b.WriteString(ChartStyle(slot).Render(strings.Repeat("█", barW)))
		}
		b.WriteString("\n")
	}

	b.WriteString(axis.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axis.Render("└" + strings.Repeat("─", axisLen)))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", yLabelW+1))
	for month, name := range MonthAbbr {
		if month > 0 {
			b.WriteString(" ")
		}
		lbl := name
		if len(lbl) > barW {
			lbl = lbl[:barW]
		}
		b.WriteString(axis.Render(lbl + strings.Repeat(" ", barW-lipgloss.Width(lbl))))
	}
	b.WriteString("\n\n")
	b.WriteString(Legend(m.Codes))
	return b.String()
}

// stackSlotAt returns the chart slot of the code whose segment covers the
// given height in a month's stack, or 0 above the stack.
func stackSlotAt(m domain.YearMetrics, month int, h float64) int {
	acc := 0.0
	for i, code := range m.Codes {
		v := m.Monthly[code][month]
		if v <= 0 {
			continue
		}
		acc += v
		if h < acc {
			return domain.ColorSlot(i)
		}
	}
	return 0
}

// Legend renders a swatch and code per project, wrapping every six.
func Legend(codes []string) string {
	var parts []string
	for i, code := range codes {
		parts = append(parts, Swatch(domain.ColorSlot(i))+" "+code)
	}
	var lines []string
	for len(parts) > 6 {
		lines = append(lines, "  "+strings.Join(parts[:6], "   "))
		parts = parts[6:]
	}
	if len(parts) > 0 {
		lines = append(lines, "  "+strings.Join(parts, "   "))
	}
	return strings.Join(lines, "\n")
}

// chartTickStep computes a round tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	if v >= 1e3 {
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
