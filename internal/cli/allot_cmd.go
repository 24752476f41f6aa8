package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/alexanderramin/timegrid/internal/service"
	"github.com/spf13/cobra"
)

func newAllotCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allot",
		Short: "Manage monthly allotments",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.applyTheme()
			return app.requireSignIn()
		},
	}
	cmd.AddCommand(
		newAllotListCmd(app),
		newAllotSetCmd(app),
		newAllotFiscalCmd(app),
	)
	return cmd
}

func newAllotListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's allotments, newest month first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			rows, err := app.Gateway.ListProjectAllotments(ctx, p.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "No allotments for %s.\n", p.Code)
				return nil
			}
			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				table = append(table, []string{r.Month, formatter.Fixed(r.Allotted)})
			}
			fmt.Fprint(out, formatter.RenderAlignedTable([]string{"Month", "Allotted"}, table,
				[]formatter.Align{formatter.AlignLeft, formatter.AlignRight}))
			return nil
		},
	}
}

func newAllotSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set PROJECT MONTH HOURS",
		Short: "Set one month's allotment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			h, err := parseHoursArg(args[2])
			if err != nil {
				return err
			}
			if err := app.Gateway.SetProjectMonthAllotment(ctx, p.ID, args[1], h); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %sh allotted\n", p.Code, args[1], formatter.Hours(h))
			return nil
		},
	}
}

func newAllotFiscalCmd(app *App) *cobra.Command {
	var (
		fy   int
		sets []string
	)

	cmd := &cobra.Command{
		Use:   "fy PROJECT",
		Short: "Show or edit a fiscal year (July to June) of allotments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("fy") {
				fy = domain.DefaultFiscalYear(app.now())
			}

			editor := service.NewAllotmentEditor(app.Gateway, fy)
			if err := editor.Select(ctx, p.ID, fy); err != nil {
				return err
			}

			for _, s := range sets {
				month, raw, err := parseFiscalSet(editor, s)
				if err != nil {
					return err
				}
				editor.SetDraft(month, raw)
			}
			if len(sets) > 0 {
				if err := editor.SaveAll(ctx); err != nil {
					return err
				}
			}

			printFiscalYear(cmd.OutOrStdout(), p, editor)
			return nil
		},
	}

	cmd.Flags().IntVar(&fy, "fy", 0, "fiscal year starting in July (default current)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "set a month, MM=hours (repeatable)")
	return cmd
}

// parseFiscalSet maps "MM=h" to the fiscal month with that calendar month.
func parseFiscalSet(editor *service.AllotmentEditor, s string) (string, string, error) {
	mm, raw, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", fmt.Errorf("invalid --set %q (want MM=hours)", s)
	}
	mm = strings.TrimSpace(mm)
	if len(mm) == 1 {
		mm = "0" + mm
	}
	for _, month := range editor.Months() {
		if strings.HasSuffix(month, "-"+mm) {
			if _, err := parseHoursArg(raw); err != nil {
				return "", "", err
			}
			return month, strings.TrimSpace(raw), nil
		}
	}
	return "", "", fmt.Errorf("invalid --set %q: month must be 01-12", s)
}

func printFiscalYear(out io.Writer, p domain.Project, editor *service.AllotmentEditor) {
	fmt.Fprintf(out, "%s  FY%d (Jul %d – Jun %d)\n", formatter.Bold(p.Code), editor.FiscalYear(), editor.FiscalYear(), editor.FiscalYear()+1)
	rows := make([][]string, 0, 13)
	for _, m := range editor.Months() {
		rows = append(rows, []string{m, formatter.Fixed(domain.ParseHours(editor.Draft(m)))})
	}
	rows = append(rows, []string{formatter.Bold("Total"), formatter.Bold(formatter.Fixed(editor.DraftTotal()))})
	fmt.Fprint(out, formatter.RenderAlignedTable([]string{"Month", "Allotted"}, rows,
		[]formatter.Align{formatter.AlignLeft, formatter.AlignRight}))
}
