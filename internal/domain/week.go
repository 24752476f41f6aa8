package domain

import (
	"sort"
	"time"
)

// WeekSlice is one Sunday-to-Saturday week of a month's grid.
type WeekSlice struct {
	WeekIndex int
	Month     Month
	StartDate time.Time
	EndDate   time.Time
	Rows      []WeekRow
}

// WeekRow holds one project's hours for a week.
//
// Days only carries the dates of the week that fall inside the month.
// MonthAllotted is the month's budget; Allotted is what was left of it at
// the start of the week, so Remaining keeps falling through the month.
type WeekRow struct {
	ProjectID     int64
	ProjectCode   string
	MonthAllotted float64
	Allotted      float64
	Days          map[string]float64
	Total         float64
	Remaining     float64
}

// Overrun reports whether the row has used more than its balance.
func (r WeekRow) Overrun() bool {
	return r.Remaining < 0
}

// Dates returns the seven dates of the week in order.
func (w WeekSlice) Dates() []time.Time {
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = w.StartDate.AddDate(0, 0, i)
	}
	return dates
}

// Editable reports whether date belongs to the slice's month.
func (w WeekSlice) Editable(date time.Time) bool {
	return w.Month.Contains(date)
}

// Row returns the row for a project, if present.
func (w WeekSlice) Row(projectID int64) (WeekRow, bool) {
	for _, r := range w.Rows {
		if r.ProjectID == projectID {
			return r, true
		}
	}
	return WeekRow{}, false
}

// WeekStart returns the Sunday on or before d.
func WeekStart(d time.Time) time.Time {
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// BuildWeeks lays the month out as Sunday-aligned weeks and joins each week
// with per-project hours. Entries outside the month are ignored.
func BuildWeeks(month Month, budgets []ProjectBudget, entries []TimeEntry) []WeekSlice {
	projects := make([]ProjectBudget, len(budgets))
	copy(projects, budgets)
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Code < projects[j].Code
	})

	hours := make(map[int64]map[string]float64)
	for _, e := range entries {
		if hours[e.ProjectID] == nil {
			hours[e.ProjectID] = make(map[string]float64)
		}
		hours[e.ProjectID][e.Date] = e.Hours
	}

	used := make(map[int64]float64)
	last := month.Last()

	var weeks []WeekSlice
	index := 1
	for start := WeekStart(month.First()); !start.After(last); start = start.AddDate(0, 0, 7) {
		week := WeekSlice{
			WeekIndex: index,
			Month:     month,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 6),
			Rows:      make([]WeekRow, 0, len(projects)),
		}
		for _, p := range projects {
			row := WeekRow{
				ProjectID:     p.ProjectID,
				ProjectCode:   p.Code,
				MonthAllotted: p.Allotted,
				Allotted:      p.Allotted - used[p.ProjectID],
				Days:          make(map[string]float64, 7),
			}
			for _, d := range week.Dates() {
				if !month.Contains(d) {
					continue
				}
				key := FormatDate(d)
				h := hours[p.ProjectID][key]
				row.Days[key] = h
				row.Total += h
			}
			row.Remaining = row.Allotted - row.Total
			used[p.ProjectID] += row.Total
			week.Rows = append(week.Rows, row)
		}
		weeks = append(weeks, week)
		index++
	}
	return weeks
}
