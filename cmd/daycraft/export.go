package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/daycraft"
	"github.com/aretw0/daycraft/pkg/collections"
	"github.com/aretw0/daycraft/pkg/session"
)

var exportFormat string

// snapshot is the export document: one field per stored key.
type snapshot struct {
	Tasks      collections.TaskBook      `json:"daily_tasks"`
	Journal    collections.JournalBook   `json:"journal_entries"`
	Notes      collections.NoteList      `json:"notes"`
	Checklists collections.ChecklistList `json:"checklists"`
	BucketList collections.GoalList      `json:"bucket_list"`
	Theme      collections.Theme         `json:"theme"`
	User       *session.Session          `json:"daycraft_user"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the whole profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, session.RouteDashboard, func(app *daycraft.App) error {
			return writeExport(cmd, takeSnapshot(app))
		})
	},
}

func takeSnapshot(app *daycraft.App) snapshot {
	s := snapshot{
		Tasks:      app.Tasks.Binding().Get(),
		Journal:    app.Journal.Binding().Get(),
		Notes:      app.Notes.Binding().Get(),
		Checklists: app.Checklists.Binding().Get(),
		BucketList: app.Bucket.Binding().Get(),
		Theme:      app.Prefs.Theme(),
	}
	if u, ok := app.Session.Current(); ok {
		s.User = &u
	}
	return s
}

func writeExport(cmd *cobra.Command, s snapshot) error {
	out := cmd.OutOrStdout()
	switch exportFormat {
	case "json":
		return printJSON(out, s)
	case "yaml":
		// Round-trip through JSON so YAML keys follow the stored field names.
		raw, err := json.Marshal(s)
		if err != nil {
			return err
		}
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", exportFormat)
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format (json, yaml)")
}
