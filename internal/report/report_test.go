package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/timegrid/internal/domain"
)

func sampleMetrics() domain.YearMetrics {
	var months [12][]domain.WeekSlice
	months[0] = []domain.WeekSlice{{Rows: []domain.WeekRow{
		{ProjectCode: "PRJ-2002", Total: 6},
		{ProjectCode: "PRJ-1001", Total: 10},
	}}}
	months[6] = []domain.WeekSlice{{Rows: []domain.WeekRow{
		{ProjectCode: "PRJ-1001", Total: 14},
	}}}
	return domain.FoldYear(2024, months)
}

func TestWritePDF_ProducesDocument(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, sampleMetrics(), PDFOptions{PaletteID: "kodama", Generated: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestWritePDF_EmptyYear(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, domain.FoldYear(2023, [12][]domain.WeekSlice{}), PDFOptions{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleMetrics()))

	var doc yearDocument
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, 2024, doc.Year)
	assert.Equal(t, 30.0, doc.TotalHours)
	assert.Equal(t, 366, doc.DaysInYear)
	assert.Equal(t, 16.0, doc.MonthTotals["2024-01"])
	require.Len(t, doc.Projects, 2)
	assert.Equal(t, "PRJ-1001", doc.Projects[0].Code)
	assert.Equal(t, 1, doc.Projects[0].ColorSlot)
	assert.Equal(t, 24.0, doc.Projects[0].Hours)
	assert.Equal(t, 2.0, doc.Projects[0].AvgPerMonth)
	assert.Equal(t, 14.0, doc.Projects[0].Monthly["2024-07"])
}

func TestReadProjectPlans(t *testing.T) {
	src := `projects:
  - code: PRJ-1001
    allotted: 40
    allotments:
      "2024-07": 32
      "2024-08": 28.5
  - code: PRJ-2002
`
	plans, err := ReadProjectPlans(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, 40.0, plans[0].Allotted)
	assert.Equal(t, 28.5, plans[0].Allotments["2024-08"])
	assert.Equal(t, "PRJ-2002", plans[1].Code)
}

func TestReadProjectPlans_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", "empty"},
		{"no projects", "projects: []\n", "no projects"},
		{"unknown field", "projects:\n  - code: X\n    budget: 3\n", "parsing import file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadProjectPlans(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
