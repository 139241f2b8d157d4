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

var checklistsJSON bool

const routeChecklists = session.RouteDashboard + "/checklists"

var checklistsCmd = &cobra.Command{
	Use:     "checklists",
	Aliases: []string{"lists"},
	Short:   "Manage checklists",
}

var checklistsNewCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a checklist",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, routeChecklists, func(app *daycraft.App) error {
			l, ok, err := app.Checklists.Create(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Created checklist %q.\n", l.Title)
			}
			reportNoop(cmd.OutOrStdout(), ok, "empty title")
			return nil
		})
	},
}

var checklistsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List checklists and their items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, routeChecklists, func(app *daycraft.App) error {
			out := cmd.OutOrStdout()
			lists := app.Checklists.All()
			if checklistsJSON {
				return printJSON(out, lists)
			}
			for i, l := range lists {
				p := l.Progress()
				fmt.Fprintf(out, "%d. %s (%d/%d, %d%%)\n", i+1, l.Title, p.Completed, p.Total, p.Rounded())
				for j, it := range l.Items {
					fmt.Fprintf(out, "   %s %d. %s\n", check(it.Completed), j+1, it.Text)
				}
			}
			return nil
		})
	},
}

var checklistsRenameCmd = &cobra.Command{
	Use:   "rename <ref> <title>",
	Short: "Rename a checklist",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withChecklist(cmd, args[0], func(app *daycraft.App, l collections.Checklist) error {
			changed, err := app.Checklists.Rename(cmd.Context(), l.ID, strings.Join(args[1:], " "))
			reportNoop(cmd.OutOrStdout(), changed, "title unchanged or empty")
			return err
		})
	},
}

var checklistsRmCmd = &cobra.Command{
	Use:   "rm <ref>",
	Short: "Delete a checklist and its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withChecklist(cmd, args[0], func(app *daycraft.App, l collections.Checklist) error {
			changed, err := app.Checklists.Remove(cmd.Context(), l.ID)
			reportNoop(cmd.OutOrStdout(), changed, "checklist not found")
			return err
		})
	},
}

var checklistsAddItemCmd = &cobra.Command{
	Use:   "add-item <ref> <text>",
	Short: "Append an item to a checklist",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withChecklist(cmd, args[0], func(app *daycraft.App, l collections.Checklist) error {
			_, ok, err := app.Checklists.AddItem(cmd.Context(), l.ID, strings.Join(args[1:], " "))
			reportNoop(cmd.OutOrStdout(), ok, "empty item")
			return err
		})
	},
}

var checklistsCheckCmd = &cobra.Command{
	Use:   "check <ref> <item>",
	Short: "Toggle an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withItem(cmd, args[0], args[1], func(app *daycraft.App, listID, itemID core.ID) error {
			changed, err := app.Checklists.ToggleItem(cmd.Context(), listID, itemID)
			reportNoop(cmd.OutOrStdout(), changed, "item not found")
			return err
		})
	},
}

var checklistsRmItemCmd = &cobra.Command{
	Use:   "rm-item <ref> <item>",
	Short: "Remove an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withItem(cmd, args[0], args[1], func(app *daycraft.App, listID, itemID core.ID) error {
			changed, err := app.Checklists.RemoveItem(cmd.Context(), listID, itemID)
			reportNoop(cmd.OutOrStdout(), changed, "item not found")
			return err
		})
	},
}

func withChecklist(cmd *cobra.Command, ref string, fn func(app *daycraft.App, l collections.Checklist) error) error {
	return withSession(cmd, routeChecklists, func(app *daycraft.App) error {
		id, err := resolveRef(idsOf(app.Checklists.All(), func(l collections.Checklist) core.ID { return l.ID }), ref)
		if err != nil {
			return err
		}
		l, _ := app.Checklists.Get(id)
		return fn(app, l)
	})
}

func withItem(cmd *cobra.Command, listRef, itemRef string, fn func(app *daycraft.App, listID, itemID core.ID) error) error {
	return withChecklist(cmd, listRef, func(app *daycraft.App, l collections.Checklist) error {
		itemID, err := resolveRef(idsOf(l.Items, func(it collections.ChecklistItem) core.ID { return it.ID }), itemRef)
		if err != nil {
			return err
		}
		return fn(app, l.ID, itemID)
	})
}

func init() {
	rootCmd.AddCommand(checklistsCmd)
	checklistsCmd.AddCommand(checklistsNewCmd, checklistsListCmd, checklistsRenameCmd, checklistsRmCmd,
		checklistsAddItemCmd, checklistsCheckCmd, checklistsRmItemCmd)
	checklistsListCmd.Flags().BoolVar(&checklistsJSON, "json", false, "Output in JSON format")
}
