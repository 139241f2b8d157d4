package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/daycraft"
	"github.com/aretw0/daycraft/pkg/collections"
)

var themeCmd = &cobra.Command{
	Use:       "theme [toggle|light|dark]",
	Short:     "Show or change the theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"toggle", string(collections.ThemeLight), string(collections.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return runTheme(cmd, app, args)
	},
}

func runTheme(cmd *cobra.Command, app *daycraft.App, args []string) error {
	out := cmd.OutOrStdout()
	switch {
	case len(args) == 0:
	case args[0] == "toggle":
		if _, err := app.Prefs.Toggle(cmd.Context()); err != nil {
			return err
		}
	default:
		if _, err := app.Prefs.Set(cmd.Context(), collections.Theme(args[0])); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, app.Prefs.Theme())
	return nil
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
