package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/spf13/cobra"
)

var errSignedOut = errors.New("not signed in (run `timegrid login`)")

// requireSignIn applies the routing guard to CLI commands that touch data.
func (a *App) requireSignIn() error {
	if !a.Session.Authenticated() {
		return errSignedOut
	}
	return nil
}

func newWeeksCmd(app *App) *cobra.Command {
	var month domain.Month

	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "Print the week grid of a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSignIn(); err != nil {
				return err
			}
			if month.IsZero() {
				month = domain.MonthOf(app.now())
			}
			weeks, err := app.Gateway.GetWeeks(cmd.Context(), month.String())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(month.First().Format("January 2006")))
			for _, w := range weeks {
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.WeekTable(w))
			}
			return nil
		},
	}

	monthFlag(cmd.Flags(), &month, "month to show (YYYY-MM, default current)")
	return cmd
}

func newHoursCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Log hours against a project",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set PROJECT DATE HOURS",
		Short: "Set the hours of one day (replaces the previous value)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSignIn(); err != nil {
				return err
			}
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			h, err := parseHoursArg(args[2])
			if err != nil {
				return err
			}
			if err := app.Gateway.SetDayHours(ctx, p.ID, args[1], h); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %sh\n", p.Code, args[1], formatter.Hours(h))
			return nil
		},
	})
	return cmd
}
