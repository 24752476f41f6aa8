package domain

import "sort"

// ChartSlots is the number of distinct chart colours cycled by project.
const ChartSlots = 12

// YearMetrics is twelve months of week grids folded per project code.
type YearMetrics struct {
	Year        int
	Codes       []string
	Monthly     map[string][12]float64
	MonthTotals [12]float64
	Yearly      map[string]float64
	YearTotal   float64
	DaysInYear  int
}

// FoldYear sums row totals per project code and month. months[i] holds
// the week slices of month i+1.
func FoldYear(year int, months [12][]WeekSlice) YearMetrics {
	ym := YearMetrics{
		Year:       year,
		Monthly:    make(map[string][12]float64),
		Yearly:     make(map[string]float64),
		DaysInYear: DaysInYear(year),
	}
	for i, weeks := range months {
		for _, w := range weeks {
			for _, r := range w.Rows {
				acc := ym.Monthly[r.ProjectCode]
				acc[i] += r.Total
				ym.Monthly[r.ProjectCode] = acc
			}
		}
	}
	for code, acc := range ym.Monthly {
		ym.Codes = append(ym.Codes, code)
		for i, v := range acc {
			ym.Yearly[code] += v
			ym.MonthTotals[i] += v
			ym.YearTotal += v
		}
	}
	sort.Strings(ym.Codes)
	return ym
}

// AvgPerMonth returns the project's yearly hours divided by 12.
func (m YearMetrics) AvgPerMonth(code string) float64 {
	return m.Yearly[code] / 12
}

// AvgPerDay returns the project's yearly hours divided by the days in the year.
func (m YearMetrics) AvgPerDay(code string) float64 {
	if m.DaysInYear == 0 {
		return 0
	}
	return m.Yearly[code] / float64(m.DaysInYear)
}

// ColorSlot returns the 1-based chart colour slot for the i-th code.
func ColorSlot(i int) int {
	return (i % ChartSlots) + 1
}
