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
	noteTitle   string
	noteContent string
	noteColor   string
	notesJSON   bool
)

const routeNotes = session.RouteDashboard + "/notes"

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage notes",
}

var notesAddCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Add a note",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		content := noteContent
		if len(args) > 0 {
			content = strings.Join(args, " ")
		}
		return withSession(cmd, routeNotes, func(app *daycraft.App) error {
			_, ok, err := app.Notes.Add(cmd.Context(), noteTitle, content)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Note added.")
			}
			reportNoop(cmd.OutOrStdout(), ok, "empty note")
			return nil
		})
	},
}

var notesListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List notes, pinned first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return withSession(cmd, routeNotes, func(app *daycraft.App) error {
			out := cmd.OutOrStdout()
			shown := app.Notes.Display(query)
			if notesJSON {
				return printJSON(out, shown)
			}

			// Positions always refer to the unfiltered display order.
			pos := make(map[core.ID]int)
			for i, n := range app.Notes.Display("") {
				pos[n.ID] = i + 1
			}
			for _, n := range shown {
				pin := " "
				if n.Pinned {
					pin = "*"
				}
				fmt.Fprintf(out, "%s %d. %s", pin, pos[n.ID], n.Title)
				if n.Content != "" {
					fmt.Fprintf(out, " | %s", firstLine(n.Content))
				}
				fmt.Fprintln(out)
			}
			return nil
		})
	},
}

var notesPinCmd = &cobra.Command{
	Use:   "pin <ref>",
	Short: "Pin or unpin a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withNote(cmd, args[0], func(app *daycraft.App, id core.ID) error {
			changed, err := app.Notes.TogglePin(cmd.Context(), id)
			reportNoop(cmd.OutOrStdout(), changed, "note not found")
			return err
		})
	},
}

var notesEditCmd = &cobra.Command{
	Use:   "edit <ref>",
	Short: "Edit a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch collections.NotePatch
		flags := cmd.Flags()
		if flags.Changed("title") {
			patch.Title = &noteTitle
		}
		if flags.Changed("content") {
			patch.Content = &noteContent
		}
		if flags.Changed("color") {
			patch.Color = &noteColor
		}
		return withNote(cmd, args[0], func(app *daycraft.App, id core.ID) error {
			changed, err := app.Notes.Update(cmd.Context(), id, patch)
			reportNoop(cmd.OutOrStdout(), changed, "note unchanged")
			return err
		})
	},
}

var notesRmCmd = &cobra.Command{
	Use:   "rm <ref>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withNote(cmd, args[0], func(app *daycraft.App, id core.ID) error {
			changed, err := app.Notes.Remove(cmd.Context(), id)
			reportNoop(cmd.OutOrStdout(), changed, "note not found")
			return err
		})
	},
}

func withNote(cmd *cobra.Command, ref string, fn func(app *daycraft.App, id core.ID) error) error {
	return withSession(cmd, routeNotes, func(app *daycraft.App) error {
		id, err := resolveRef(idsOf(app.Notes.Display(""), func(n collections.Note) core.ID { return n.ID }), ref)
		if err != nil {
			return err
		}
		return fn(app, id)
	})
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.AddCommand(notesAddCmd, notesListCmd, notesPinCmd, notesEditCmd, notesRmCmd)
	for _, c := range []*cobra.Command{notesAddCmd, notesEditCmd} {
		c.Flags().StringVarP(&noteTitle, "title", "t", "", "Note title")
		c.Flags().StringVarP(&noteContent, "content", "c", "", "Note text")
	}
	notesEditCmd.Flags().StringVar(&noteColor, "color", "", "Note color")
	notesListCmd.Flags().BoolVar(&notesJSON, "json", false, "Output in JSON format")
}
