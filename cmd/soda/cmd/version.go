package cmd

import (
	"fmt"

	"github.com/kievzenit/soda/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X ...cmd.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the front end and language versions",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "soda %s (language %s)\n", Version, config.LanguageVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
