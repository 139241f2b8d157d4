package main

import (
	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the internal state of the profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		components := map[string]any{}
		for _, c := range []any{app.Store, app.Session, app.Storage()} {
			comp, ok := c.(introspection.Component)
			if !ok {
				continue
			}
			if in, ok := c.(introspection.Introspectable); ok {
				components[comp.ComponentType()] = in.State()
			}
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"path":       app.Path,
			"adapter":    cfg.Adapter,
			"components": components,
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
