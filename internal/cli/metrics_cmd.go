package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/alexanderramin/timegrid/internal/report"
	"github.com/spf13/cobra"
)

func newMetricsCmd(app *App) *cobra.Command {
	var (
		year     int
		pdfPath  string
		yamlPath string
	)

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Yearly hours per project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSignIn(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("year") {
				year = app.now().Year()
			}

			m, err := app.Metrics.Aggregate(cmd.Context(), year)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(fmt.Sprintf("Hours %d", year)))
			fmt.Fprintln(out, formatter.StackedBarChart(m, 80, 12))
			fmt.Fprintln(out)
			fmt.Fprint(out, metricsTable(m))

			if pdfPath != "" {
				if err := writeFile(pdfPath, func(w io.Writer) error {
					return report.WritePDF(w, m, report.PDFOptions{PaletteID: app.Prefs.Palette(), Generated: app.now()})
				}); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", pdfPath)
			}
			if yamlPath != "" {
				if err := writeFile(yamlPath, func(w io.Writer) error { return report.WriteYAML(w, m) }); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", yamlPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "calendar year (default current)")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "also write a PDF report to this file")
	cmd.Flags().StringVar(&yamlPath, "yaml", "", "also write the figures as YAML to this file")
	return cmd
}

// metricsTable renders yearly totals and averages, one row per code.
func metricsTable(m domain.YearMetrics) string {
	if len(m.Codes) == 0 {
		return ""
	}
	rows := make([][]string, 0, len(m.Codes)+1)
	for i, code := range m.Codes {
		var share float64
		if m.YearTotal > 0 {
			share = m.Yearly[code] / m.YearTotal
		}
		rows = append(rows, []string{
			formatter.Swatch(domain.ColorSlot(i)) + " " + code,
			formatter.Fixed(m.Yearly[code]),
			fmt.Sprintf("%.2f", m.AvgPerMonth(code)),
			fmt.Sprintf("%.2f", m.AvgPerDay(code)),
			formatter.RenderProgress(share, 10),
		})
	}
	rows = append(rows, []string{formatter.Bold("Total"), formatter.Bold(formatter.Fixed(m.YearTotal)), "", "", ""})

	return formatter.RenderAlignedTable(
		[]string{"Project", "Hours", "Avg/month", "Avg/day", "Share"}, rows,
		[]formatter.Align{formatter.AlignLeft, formatter.AlignRight, formatter.AlignRight, formatter.AlignRight, formatter.AlignLeft},
	)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
