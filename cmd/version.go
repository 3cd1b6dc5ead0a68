package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tallyhq/gcptally/internal/message"
	"github.com/tallyhq/gcptally/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gcptally",
	Long:  `All software has versions. This is gcptally's`,
	Run: func(cmd *cobra.Command, args []string) {
		message.Info(version.FullVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
