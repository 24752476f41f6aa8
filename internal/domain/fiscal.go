package domain

import "time"

// FiscalMonths returns the twelve month keys of the fiscal year starting in
// July of fy: July..December of fy, then January..June of fy+1.
func FiscalMonths(fy int) []string {
	months := make([]string, 12)
	for i := range months {
		idx := (6 + i) % 12
		year := fy + 1
		if idx >= 6 {
			year = fy
		}
		months[i] = Month{Year: year, Month: time.Month(idx + 1)}.String()
	}
	return months
}

// DefaultFiscalYear returns the fiscal year that contains now.
func DefaultFiscalYear(now time.Time) int {
	if now.Month() >= time.July {
		return now.Year()
	}
	return now.Year() - 1
}

// ReconcileDrafts maps every fiscal month of fy to its stored allotment,
// defaulting absent months to 0. Rows outside the fiscal year are dropped.
func ReconcileDrafts(fy int, rows []MonthlyAllotment) map[string]float64 {
	stored := make(map[string]float64, len(rows))
	for _, r := range rows {
		stored[r.Month] = r.Allotted
	}
	drafts := make(map[string]float64, 12)
	for _, m := range FiscalMonths(fy) {
		drafts[m] = stored[m]
	}
	return drafts
}
