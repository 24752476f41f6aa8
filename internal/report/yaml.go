package report

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/timegrid/internal/domain"
)

type yearDocument struct {
	Year        int                `yaml:"year"`
	TotalHours  float64            `yaml:"total_hours"`
	DaysInYear  int                `yaml:"days_in_year"`
	MonthTotals map[string]float64 `yaml:"month_totals"`
	Projects    []projectDocument  `yaml:"projects"`
}

type projectDocument struct {
	Code        string             `yaml:"code"`
	ColorSlot   int                `yaml:"color_slot"`
	Hours       float64            `yaml:"hours"`
	AvgPerMonth float64            `yaml:"avg_per_month"`
	AvgPerDay   float64            `yaml:"avg_per_day"`
	Monthly     map[string]float64 `yaml:"monthly"`
}

func monthKey(year, i int) string {
	return domain.Month{Year: year, Month: time.Month(i + 1)}.String()
}

// WriteYAML writes the year's metrics as a YAML document.
func WriteYAML(w io.Writer, m domain.YearMetrics) error {
	doc := yearDocument{
		Year:        m.Year,
		TotalHours:  m.YearTotal,
		DaysInYear:  m.DaysInYear,
		MonthTotals: make(map[string]float64, 12),
		Projects:    make([]projectDocument, 0, len(m.Codes)),
	}
	for i, v := range m.MonthTotals {
		doc.MonthTotals[monthKey(m.Year, i)] = v
	}
	for i, code := range m.Codes {
		p := projectDocument{
			Code:        code,
			ColorSlot:   domain.ColorSlot(i),
			Hours:       m.Yearly[code],
			AvgPerMonth: m.AvgPerMonth(code),
			AvgPerDay:   m.AvgPerDay(code),
			Monthly:     make(map[string]float64, 12),
		}
		for j, v := range m.Monthly[code] {
			p.Monthly[monthKey(m.Year, j)] = v
		}
		doc.Projects = append(doc.Projects, p)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding metrics: %w", err)
	}
	return enc.Close()
}

type planDocument struct {
	Projects []domain.ProjectPlan `yaml:"projects"`
}

// ReadProjectPlans parses a project import file:
//
//	projects:
//	  - code: PRJ-1001
//	    allotted: 40
//	    allotments:
//	      2024-07: 32
func ReadProjectPlans(r io.Reader) ([]domain.ProjectPlan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc planDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("import file is empty")
		}
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	if len(doc.Projects) == 0 {
		return nil, fmt.Errorf("import file lists no projects")
	}
	return doc.Projects, nil
}
