package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CellKey addresses one editable cell of the week grid.
type CellKey struct {
	ProjectID int64
	Date      string
}

func (k CellKey) String() string {
	return fmt.Sprintf("%d|%s", k.ProjectID, k.Date)
}

// ParseHours converts raw cell input to hours. Empty or unparsable input is 0.
func ParseHours(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	h, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	return h
}

// FormatHours renders hours without trailing zeros ("7.5", "8").
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// PendingEdits buffers in-progress cell input that has not been committed.
type PendingEdits map[CellKey]string

// Set buffers raw input for k, replacing any earlier input.
func (p PendingEdits) Set(k CellKey, raw string) {
	p[k] = raw
}

// Get returns the raw input buffered for k.
func (p PendingEdits) Get(k CellKey) (string, bool) {
	v, ok := p[k]
	return v, ok
}

// Clear drops the buffered input for k.
func (p PendingEdits) Clear(k CellKey) {
	delete(p, k)
}
