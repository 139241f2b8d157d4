package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/daycraft"
	"github.com/aretw0/daycraft/internal/config"
)

var (
	verbose    bool
	configFile string
	dataDir    string
	adapter    string
	readOnly   bool
	logFormat  string

	cfg *config.Config
)

var errNotLoggedIn = errors.New("not logged in (run `daycraft login` first)")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "daycraft",
	Short: "Plan your day: tasks, journal, notes, checklists and a bucket list",
	Long: `Day Craft keeps your daily tasks, journal, notes, checklists and bucket list
in a local profile. Every collection is stored under its own key, one JSON file
per key by default.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(config.Options{File: configFile})
		if err != nil {
			return err
		}
		applyFlags(cmd, loaded)
		cfg = loaded

		level := slog.LevelInfo
		if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
			level = slog.LevelInfo
		}
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		var handler slog.Handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
		if strings.EqualFold(cfg.Log.Format, "json") {
			handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
		}
		slog.SetDefault(slog.New(handler))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./daycraft.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "dir", "d", "", "Profile directory")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter (fs, badger, memory)")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Open the profile read-only")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text, json)")
}

// applyFlags lets explicit flags win over the configuration.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("dir") {
		c.DataDir = dataDir
	}
	if flags.Changed("adapter") {
		c.Adapter = adapter
	}
	if flags.Changed("read-only") {
		c.ReadOnly = readOnly
	}
	if flags.Changed("log-format") {
		c.Log.Format = logFormat
	}
}

// openApp opens the configured profile.
func openApp(cmd *cobra.Command) (*daycraft.App, error) {
	app, err := daycraft.Open(cmd.Context(), cfg.DataDir,
		daycraft.WithAdapter(cfg.Adapter),
		daycraft.WithReadOnly(cfg.ReadOnly),
		daycraft.WithLogger(slog.Default()),
		daycraft.WithAuthDelays(cfg.Auth.LoginDelay, cfg.Auth.ProviderDelay),
		daycraft.WithEventBuffer(cfg.Watch.Buffer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	return app, nil
}
