package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/daycraft"
	"github.com/aretw0/daycraft/pkg/session"
)

var (
	loginEmail    string
	loginPassword string
	signupName    string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPublicRoute(cmd, session.RouteLogin, func(app *daycraft.App) (session.Session, error) {
			return app.Session.Login(cmd.Context(), loginEmail, loginPassword)
		})
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPublicRoute(cmd, session.RouteSignup, func(app *daycraft.App) (session.Session, error) {
			return app.Session.Signup(cmd.Context(), signupName, loginEmail, loginPassword)
		})
	},
}

var googleLoginCmd = &cobra.Command{
	Use:   "login-google [email]",
	Short: "Sign in with Google",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hint := ""
		if len(args) == 1 {
			hint = args[0]
		}
		return withPublicRoute(cmd, session.RouteLogin, func(app *daycraft.App) (session.Session, error) {
			return app.Session.ProviderLogin(cmd.Context(), hint)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.Session.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, session.RouteDashboard, func(app *daycraft.App) error {
			s, _ := session.FromContext(cmd.Context())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s>\n", s.Name, s.Email)
			if s.Provider != "" {
				fmt.Fprintf(out, "via %s\n", s.Provider)
			}
			return nil
		})
	},
}

// withPublicRoute runs a login flow unless someone is already signed in.
func withPublicRoute(cmd *cobra.Command, route string, login func(app *daycraft.App) (session.Session, error)) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	out := cmd.OutOrStdout()
	if d := session.Guard(route, app.Session.Loading(), app.Session.Authenticated()); d.Action == session.Redirect {
		cur, _ := app.Session.Current()
		fmt.Fprintf(out, "Already logged in as %s (run `daycraft logout` first).\n", cur.Email)
		return nil
	}

	s, err := login(app)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Welcome, %s!\n", s.Name)
	return nil
}

func init() {
	rootCmd.AddCommand(loginCmd, signupCmd, googleLoginCmd, logoutCmd, whoamiCmd)

	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringVarP(&loginEmail, "email", "e", "", "Email address")
		c.Flags().StringVarP(&loginPassword, "password", "p", "", "Password")
	}
	signupCmd.Flags().StringVarP(&signupName, "name", "n", "", "Display name")
}
