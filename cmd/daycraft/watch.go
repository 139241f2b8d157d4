package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	lifecycleadapter "github.com/aretw0/daycraft/pkg/adapters/lifecycle"
	"github.com/aretw0/daycraft/pkg/store"
)

var (
	watchFor      time.Duration
	watchCoalesce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [pattern]",
	Short: "Print changes of stored keys, including changes made by other processes",
	Long: `Watch prints one line per change of a stored key matching the glob pattern
(default "*"), e.g. "daycraft watch 'journal_*'". It runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := "*"
		if len(args) == 1 {
			pattern = args[0]
		}

		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		if watchFor > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, watchFor)
			defer cancel()
		}

		if err := app.Store.Follow(ctx); errors.Is(err, store.ErrNotWatchable) {
			slog.Warn("storage cannot report external changes; showing changes made by this process only",
				"adapter", cfg.Adapter)
		} else if err != nil {
			return err
		}

		events, err := app.Store.Watch(ctx, pattern)
		if err != nil {
			return err
		}
		src := lifecycleadapter.NewSource(events, lifecycleadapter.WithCoalesce(watchCoalesce))
		if err := src.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Watching %q in %s (Ctrl+C to stop)\n", pattern, app.Path)
		for e := range src.Events() {
			fmt.Fprintln(out, e.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchFor, "for", 0, "Stop after this long (default: until interrupted)")
	watchCmd.Flags().DurationVar(&watchCoalesce, "coalesce", 100*time.Millisecond,
		"Report a burst of changes to one key within this window as a single line (0 disables)")
}
