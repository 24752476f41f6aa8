package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/alexanderramin/timegrid/internal/theme"
	"github.com/spf13/cobra"
)

// scaleStep is the increment of the "+" and "-" scale controls.
const scaleStep = 0.1

func newPrefsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change display preferences",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the stored preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rows := [][]string{
					{"scale", formatScale(app.Prefs.Scale())},
					{"palette", app.Prefs.Palette()},
					{"mode", string(app.Prefs.Mode())},
					{"file", app.Prefs.Path()},
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"Key", "Value"}, rows))
				return nil
			},
		},
		&cobra.Command{
			Use:   "scale VALUE|+|-|reset",
			Short: "Set the text scale (0.8 to 1.6)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := applyScale(app, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Scale %s\n", formatScale(v))
				return nil
			},
		},
		&cobra.Command{
			Use:       "palette ID",
			Short:     "Choose a colour palette",
			Args:      cobra.ExactArgs(1),
			ValidArgs: paletteIDs(),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !app.Prefs.SetPalette(args[0]) {
					return fmt.Errorf("unknown palette %q (choose %s)", args[0], strings.Join(paletteIDs(), ", "))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Palette %s\n", theme.ByID(args[0]).Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "mode light|dark|system",
			Short: "Choose light, dark or system colours",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, ok := theme.ParseMode(args[0])
				if !ok {
					return fmt.Errorf("unknown mode %q (choose light, dark, system)", args[0])
				}
				app.Prefs.SetMode(m)
				fmt.Fprintf(cmd.OutOrStdout(), "Mode %s\n", m)
				return nil
			},
		},
	)
	return cmd
}

// applyScale handles "+", "-", "reset" or an absolute value.
func applyScale(app *App, arg string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "+":
		return app.Prefs.AdjustScale(scaleStep), nil
	case "-":
		return app.Prefs.AdjustScale(-scaleStep), nil
	case "reset":
		return app.Prefs.ResetScale(), nil
	}
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid scale %q", arg)
	}
	return app.Prefs.SetScale(v), nil
}

func formatScale(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

func paletteIDs() []string {
	ids := make([]string, 0, len(theme.All))
	for _, p := range theme.All {
		ids = append(ids, p.ID)
	}
	return ids
}
