package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timegrid/internal/domain"
)

// OutOfMonth is the placeholder shown for lead and trail days.
const OutOfMonth = "—"

// Hours renders hours without trailing zeros.
func Hours(h float64) string {
	return domain.FormatHours(h)
}

// Fixed renders hours with one decimal, for totals and averages.
func Fixed(h float64) string {
	return fmt.Sprintf("%.1f", h)
}

// Remaining renders a balance, red when it has gone negative.
func Remaining(h float64) string {
	s := Fixed(h)
	if h < 0 {
		return StyleRed.Render(s)
	}
	return StyleGreen.Render(s)
}

// DayHeader renders a date as a column header, e.g. "Sun 1".
func DayHeader(w domain.WeekSlice, i int) string {
	d := w.Dates()[i]
	label := fmt.Sprintf("%s %d", d.Format("Mon"), d.Day())
	if !w.Editable(d) {
		return Dim(label)
	}
	return label
}

// WeekTitle renders "Week 2 · Jun 8 – Jun 14".
func WeekTitle(w domain.WeekSlice) string {
	return fmt.Sprintf("Week %d · %s – %s", w.WeekIndex, w.StartDate.Format("Jan 2"), w.EndDate.Format("Jan 2"))
}

// WeekTable renders a read-only week: one row per project with the seven
// day columns followed by total, allotted and remaining.
func WeekTable(w domain.WeekSlice) string {
	headers := []string{"Code"}
	for i := 0; i < 7; i++ {
		headers = append(headers, DayHeader(w, i))
	}
	headers = append(headers, "Total", "Allotted", "Remaining")

	aligns := make([]Align, len(headers))
	for i := 1; i < len(aligns); i++ {
		aligns[i] = AlignRight
	}

	dates := w.Dates()
	rows := make([][]string, 0, len(w.Rows))
	for _, r := range w.Rows {
		row := []string{r.ProjectCode}
		for _, d := range dates {
			if !w.Editable(d) {
				row = append(row, Dim(OutOfMonth))
				continue
			}
			h := r.Days[domain.FormatDate(d)]
			if h == 0 {
				row = append(row, Dim("0"))
			} else {
				row = append(row, Hours(h))
			}
		}
		row = append(row, Fixed(r.Total), Fixed(r.Allotted), Remaining(r.Remaining))
		rows = append(rows, row)
	}

	var b strings.Builder
	b.WriteString(StyleAccent.Render(WeekTitle(w)))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(Dim("  No projects yet.") + "\n")
		return b.String()
	}
	b.WriteString(RenderAlignedTable(headers, rows, aligns))
	return b.String()
}
