package main

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/daycraft"
	"github.com/aretw0/daycraft/pkg/collections"
	"github.com/aretw0/daycraft/pkg/session"
)

var (
	journalDate    string
	journalTitle   string
	journalContent string
	journalMood    string
	journalImage   string
	journalJSON    bool
)

const routeJournal = session.RouteDashboard + "/journal"

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Write and read journal entries",
}

var journalSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the entry of a day, merging the given fields into it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(cmd, func(app *daycraft.App, day string) error {
			entry := app.Journal.Entry(day)
			flags := cmd.Flags()
			if flags.Changed("title") {
				entry.Title = journalTitle
			}
			if flags.Changed("content") {
				entry.Content = journalContent
			}
			if flags.Changed("mood") {
				mood, err := parseMood(journalMood)
				if err != nil {
					return err
				}
				entry = entry.WithMood(mood)
			}
			if journalImage != "" {
				uri, err := imageDataURI(journalImage)
				if err != nil {
					return err
				}
				var ok bool
				if entry, ok = entry.WithImage(uri); !ok {
					return fmt.Errorf("%s is not an image", journalImage)
				}
			}

			changed, err := app.Journal.Save(cmd.Context(), day, entry)
			if err != nil {
				return err
			}
			if changed {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved entry for %s.\n", day)
			}
			reportNoop(cmd.OutOrStdout(), changed, "entry unchanged")
			return nil
		})
	},
}

var journalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the entry of a day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(cmd, func(app *daycraft.App, day string) error {
			entry := app.Journal.Entry(day)
			out := cmd.OutOrStdout()
			if journalJSON {
				return printJSON(out, entry)
			}
			fmt.Fprintf(out, "%s  %s\n", day, entry.Mood)
			if entry.Title != "" {
				fmt.Fprintf(out, "# %s\n", entry.Title)
			}
			if entry.Content != "" {
				fmt.Fprintln(out, entry.Content)
			}
			if n := len(entry.Images); n > 0 {
				fmt.Fprintf(out, "(%d images)\n", n)
			}
			return nil
		})
	},
}

var journalRmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Delete the entry of a day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(cmd, func(app *daycraft.App, day string) error {
			changed, err := app.Journal.Remove(cmd.Context(), day)
			reportNoop(cmd.OutOrStdout(), changed, "no entry for "+day)
			return err
		})
	},
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the days holding an entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, routeJournal, func(app *daycraft.App) error {
			out := cmd.OutOrStdout()
			for _, day := range app.Journal.Dates() {
				e := app.Journal.Entry(day)
				fmt.Fprintf(out, "%s  %s  %s\n", day, e.Mood, e.Title)
			}
			return nil
		})
	},
}

func withJournal(cmd *cobra.Command, fn func(app *daycraft.App, day string) error) error {
	day, err := dayFlag(journalDate)
	if err != nil {
		return err
	}
	return withSession(cmd, routeJournal, func(app *daycraft.App) error {
		return fn(app, day)
	})
}

func parseMood(s string) (collections.Mood, error) {
	if s == "" || s == string(collections.MoodNeutral) {
		return collections.MoodNeutral, nil
	}
	for _, m := range collections.Moods {
		if string(m) == s {
			return m, nil
		}
	}
	names := map[string]collections.Mood{
		"happy":   collections.MoodHappy,
		"meh":     collections.MoodMeh,
		"sad":     collections.MoodSad,
		"angry":   collections.MoodAngry,
		"tired":   collections.MoodTired,
		"excited": collections.MoodExcited,
	}
	if m, ok := names[s]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown mood %q", s)
}

// imageDataURI reads an image file into a data URI.
func imageDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalSaveCmd, journalShowCmd, journalRmCmd, journalListCmd)
	journalCmd.PersistentFlags().StringVar(&journalDate, "date", "", "Day as YYYY-MM-DD (default: today)")
	journalSaveCmd.Flags().StringVarP(&journalTitle, "title", "t", "", "Entry title")
	journalSaveCmd.Flags().StringVarP(&journalContent, "content", "c", "", "Entry text")
	journalSaveCmd.Flags().StringVarP(&journalMood, "mood", "m", "", "Mood (happy, meh, sad, angry, tired, excited or the emoji)")
	journalSaveCmd.Flags().StringVar(&journalImage, "image", "", "Attach an image file")
	journalShowCmd.Flags().BoolVar(&journalJSON, "json", false, "Output in JSON format")
}
