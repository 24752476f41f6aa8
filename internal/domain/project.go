package domain

import (
	"math"
	"strings"
)

// Project is a billable project code with its default allotment.
type Project struct {
	ID       int64
	Code     string
	Allotted float64
}

// MonthlyAllotment is the budgeted hours for one project in one month.
// There is at most one per (project, month).
type MonthlyAllotment struct {
	ProjectID int64
	Month     string
	Allotted  float64
}

// ProjectBudget is a project joined with its allotment for a single month.
// Allotted is zero when the month has no allotment row.
type ProjectBudget struct {
	ProjectID int64
	Code      string
	Allotted  float64
}

// TimeEntry is the hours logged against a project on one day.
type TimeEntry struct {
	ProjectID int64
	Date      string
	Hours     float64
}

// NormalizeCode trims surrounding whitespace from a project code.
func NormalizeCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrEmptyCode
	}
	return code, nil
}

// ValidateHours rejects NaN and infinities.
func ValidateHours(h float64) error {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return ErrInvalidHours
	}
	return nil
}

// ProjectPlan describes a project and its monthly allotments for bulk import.
type ProjectPlan struct {
	Code       string             `yaml:"code"`
	Allotted   float64            `yaml:"allotted"`
	Allotments map[string]float64 `yaml:"allotments,omitempty"`
}
