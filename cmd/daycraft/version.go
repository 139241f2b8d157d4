package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/daycraft"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of daycraft",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "daycraft version %s\n", strings.TrimSpace(daycraft.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
