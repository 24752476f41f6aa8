package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/alexanderramin/timegrid/internal/report"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage project codes",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.applyTheme()
			return app.requireSignIn()
		},
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectAddCmd(app),
		newProjectRenameCmd(app),
		newProjectRemoveCmd(app),
		newProjectImportCmd(app),
	)
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Gateway.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects found.")
				return nil
			}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, []string{strconv.FormatInt(p.ID, 10), p.Code, formatter.Fixed(p.Allotted)})
			}
			fmt.Fprint(out, formatter.RenderAlignedTable(
				[]string{"ID", "Code", "Allotted"}, rows,
				[]formatter.Align{formatter.AlignRight, formatter.AlignLeft, formatter.AlignRight},
			))
			return nil
		},
	}
}

func newProjectAddCmd(app *App) *cobra.Command {
	var allotted float64

	cmd := &cobra.Command{
		Use:   "add CODE",
		Short: "Create a project code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Gateway.AddProject(cmd.Context(), args[0], allotted); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().Float64Var(&allotted, "allotted", 0, "initial allotted hours")
	return cmd
}

func newProjectRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID CODE",
		Short: "Change a project's code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			if err := app.Gateway.UpdateProject(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed project %d to %s\n", id, args[1])
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete a project with its allotments and hours",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !yes && app.interactive() {
				question := fmt.Sprintf("Delete project %d with its allotments and hours?", id)
				if !confirm(cmd.InOrStdin(), out, question, false) {
					fmt.Fprintln(out, "Kept project", id)
					return nil
				}
			}
			if err := app.Gateway.DeleteProject(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted project %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newProjectImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create projects and allotments from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer f.Close()

			plans, err := report.ReadProjectPlans(f)
			if err != nil {
				return err
			}
			n, err := app.Importer.Import(cmd.Context(), plans)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d projects\n", n)
			return nil
		},
	}
}
