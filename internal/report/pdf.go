// Package report exports yearly metrics as PDF and YAML.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/alexanderramin/timegrid/internal/theme"
)

var monthAbbr = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

type rgb [3]int

func hexRGB(c string) rgb {
	var r, g, b int
	if _, err := fmt.Sscanf(c, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return rgb{128, 128, 128}
	}
	return rgb{r, g, b}
}

// PDFOptions controls the rendered report.
type PDFOptions struct {
	PaletteID string
	Generated time.Time
}

// WritePDF renders the year's metrics as a one-page landscape A4 report:
// a stacked monthly bar chart followed by a table of hours per project.
func WritePDF(w io.Writer, m domain.YearMetrics, opts PDFOptions) error {
	if opts.Generated.IsZero() {
		opts.Generated = time.Now()
	}
	colors := theme.ByID(opts.PaletteID).Light

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("timegrid | %s", opts.Generated.Format("2006-01-02"))), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFillColor(40, 40, 40)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  Hours by project, %d", m.Year)), "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(50, 50, 50)
	summary := fmt.Sprintf("  %s hours across %d projects", domain.FormatHours(m.YearTotal), len(m.Codes))
	pdf.CellFormat(0, 8, tr(summary), "", 1, "L", true, 0, "")
	pdf.Ln(4)

	drawChart(pdf, m, colors)
	pdf.Ln(6)
	drawTable(pdf, tr, m, colors)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

func drawChart(pdf *gofpdf.Fpdf, m domain.YearMetrics, colors theme.Colors) {
	const (
		height = 60.0
		labelH = 5.0
	)
	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	width := pageW - left - right
	slotW := width / 12
	barW := slotW * 0.6
	top := pdf.GetY()
	base := top + height

	var peak float64
	for _, v := range m.MonthTotals {
		peak = max(peak, v)
	}

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(left, base, left+width, base)

	pdf.SetFont("Arial", "", 7)
	pdf.SetTextColor(100, 100, 100)
	for i := range 12 {
		x := left + float64(i)*slotW + (slotW-barW)/2
		y := base
		if peak > 0 {
			for j, code := range m.Codes {
				v := m.Monthly[code][i]
				if v <= 0 {
					continue
				}
				h := v / peak * height
				c := hexRGB(string(colors.ChartColor(domain.ColorSlot(j))))
				pdf.SetFillColor(c[0], c[1], c[2])
				pdf.Rect(x, y-h, barW, h, "F")
				y -= h
			}
		}
		pdf.SetXY(left+float64(i)*slotW, base+1)
		pdf.CellFormat(slotW, labelH, monthAbbr[i], "", 0, "C", false, 0, "")
	}
	pdf.SetXY(left, base+labelH+2)
}

func drawTable(pdf *gofpdf.Fpdf, tr func(string) string, m domain.YearMetrics, colors theme.Colors) {
	const (
		codeW  = 40.0
		rowH   = 6.0
		swatch = 3.0
	)
	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	cellW := (pageW - left - right - codeW) / 15

	pdf.SetFont("Arial", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(codeW, rowH, "Project", "B", 0, "L", false, 0, "")
	for _, name := range monthAbbr {
		pdf.CellFormat(cellW, rowH, name, "B", 0, "R", false, 0, "")
	}
	for _, name := range []string{"Total", "Avg/mo", "Avg/day"} {
		pdf.CellFormat(cellW, rowH, name, "B", 0, "R", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(50, 50, 50)
	for i, code := range m.Codes {
		c := hexRGB(string(colors.ChartColor(domain.ColorSlot(i))))
		x, y := pdf.GetXY()
		pdf.SetFillColor(c[0], c[1], c[2])
		pdf.Rect(x, y+(rowH-swatch)/2, swatch, swatch, "F")
		pdf.SetX(x + swatch + 1)
		pdf.CellFormat(codeW-swatch-1, rowH, tr(code), "", 0, "L", false, 0, "")
		for _, v := range m.Monthly[code] {
			pdf.CellFormat(cellW, rowH, domain.FormatHours(v), "", 0, "R", false, 0, "")
		}
		pdf.CellFormat(cellW, rowH, domain.FormatHours(m.Yearly[code]), "", 0, "R", false, 0, "")
		pdf.CellFormat(cellW, rowH, fmt.Sprintf("%.1f", m.AvgPerMonth(code)), "", 0, "R", false, 0, "")
		pdf.CellFormat(cellW, rowH, fmt.Sprintf("%.2f", m.AvgPerDay(code)), "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(codeW, rowH, "All projects", "T", 0, "L", false, 0, "")
	for _, v := range m.MonthTotals {
		pdf.CellFormat(cellW, rowH, domain.FormatHours(v), "T", 0, "R", false, 0, "")
	}
	pdf.CellFormat(cellW, rowH, domain.FormatHours(m.YearTotal), "T", 0, "R", false, 0, "")
	pdf.CellFormat(cellW*2, rowH, "", "T", 0, "R", false, 0, "")
	pdf.Ln(-1)
}
