package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/timegrid/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

type credentials struct {
	email    string
	password string
	confirm  string
}

// promptCredentials fills missing fields with a huh form on a terminal.
func promptCredentials(app *App, c *credentials, withConfirm bool) error {
	missing := c.email == "" || c.password == "" || (withConfirm && c.confirm == "")
	if !missing {
		return nil
	}
	if !app.interactive() {
		return errors.New("--email and --password are required")
	}
	return credentialsForm(c, withConfirm).Run()
}

func credentialsForm(c *credentials, withConfirm bool) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().Title("Email").Value(&c.email).Validate(requiredField("Email")),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&c.password).Validate(requiredField("Password")),
	}
	if withConfirm {
		fields = append(fields,
			huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&c.confirm))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(timegridHuhTheme()).WithShowHelp(false)
}

func noticeResult(cmd *cobra.Command, n service.Notice) error {
	if n.IsError() {
		return errors.New(n.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), n.Message)
	return nil
}

func newLoginCmd(app *App) *cobra.Command {
	var c credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := promptCredentials(app, &c, false); err != nil {
				return err
			}
			return noticeResult(cmd, app.Session.Login(cmd.Context(), c.email, c.password))
		},
	}
	cmd.Flags().StringVar(&c.email, "email", "", "account email")
	cmd.Flags().StringVar(&c.password, "password", "", "account password")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var c credentials

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmed := cmd.Flags().Changed("confirm")
			if !confirmed && c.password != "" && !app.interactive() {
				c.confirm = c.password
			}
			if err := promptCredentials(app, &c, true); err != nil {
				return err
			}
			return noticeResult(cmd, app.Session.Register(cmd.Context(), c.email, c.password, c.confirm))
		},
	}
	cmd.Flags().StringVar(&c.email, "email", "", "account email")
	cmd.Flags().StringVar(&c.password, "password", "", "account password")
	cmd.Flags().StringVar(&c.confirm, "confirm", "", "repeat the password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Session.Authenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Session.Email())
			return nil
		},
	}
}
