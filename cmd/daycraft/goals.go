package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/daycraft"
	"github.com/aretw0/daycraft/pkg/collections"
	"github.com/aretw0/daycraft/pkg/core"
	"github.com/aretw0/daycraft/pkg/session"
)

var (
	goalCategory string
	goalsJSON    bool
)

const routeBucketList = session.RouteDashboard + "/bucket-list"

var goalsCmd = &cobra.Command{
	Use:     "goals",
	Aliases: []string{"bucket"},
	Short:   "Manage the bucket list",
}

var goalsAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a goal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := collections.ParseCategory(goalCategory)
		if err != nil {
			return err
		}
		return withSession(cmd, routeBucketList, func(app *daycraft.App) error {
			g, ok, err := app.Bucket.Add(cmd.Context(), strings.Join(args, " "), category)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s goal: %s\n", g.Category, g.Text)
			}
			reportNoop(cmd.OutOrStdout(), ok, "empty goal")
			return nil
		})
	},
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals grouped by category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, routeBucketList, func(app *daycraft.App) error {
			out := cmd.OutOrStdout()
			if goalsJSON {
				return printJSON(out, app.Bucket.Groups())
			}

			pos := make(map[core.ID]int)
			for i, g := range app.Bucket.All() {
				pos[g.ID] = i + 1
			}
			for _, group := range app.Bucket.Groups() {
				fmt.Fprintf(out, "%s (%d/%d)\n", group.Category, group.Progress.Completed, group.Progress.Total)
				for _, g := range group.Goals {
					fmt.Fprintf(out, "  %s %d. %s\n", check(g.Completed), pos[g.ID], g.Text)
				}
			}
			p := app.Bucket.Progress()
			fmt.Fprintf(out, "Overall: %d%%\n", p.Rounded())
			return nil
		})
	},
}

var goalsDoneCmd = &cobra.Command{
	Use:   "done <ref>",
	Short: "Toggle a goal between achieved and open",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGoal(cmd, args[0], func(app *daycraft.App, id core.ID) error {
			changed, err := app.Bucket.Toggle(cmd.Context(), id)
			reportNoop(cmd.OutOrStdout(), changed, "goal not found")
			return err
		})
	},
}

var goalsRmCmd = &cobra.Command{
	Use:   "rm <ref>",
	Short: "Remove a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGoal(cmd, args[0], func(app *daycraft.App, id core.ID) error {
			changed, err := app.Bucket.Remove(cmd.Context(), id)
			reportNoop(cmd.OutOrStdout(), changed, "goal not found")
			return err
		})
	},
}

func withGoal(cmd *cobra.Command, ref string, fn func(app *daycraft.App, id core.ID) error) error {
	return withSession(cmd, routeBucketList, func(app *daycraft.App) error {
		id, err := resolveRef(idsOf(app.Bucket.All(), func(g collections.Goal) core.ID { return g.ID }), ref)
		if err != nil {
			return err
		}
		return fn(app, id)
	})
}

func init() {
	rootCmd.AddCommand(goalsCmd)
	goalsCmd.AddCommand(goalsAddCmd, goalsListCmd, goalsDoneCmd, goalsRmCmd)
	goalsAddCmd.Flags().StringVarP(&goalCategory, "category", "c", string(collections.CategoryPersonal),
		"Category (Personal, Career, Travel, Learning)")
	goalsListCmd.Flags().BoolVar(&goalsJSON, "json", false, "Output in JSON format")
}
