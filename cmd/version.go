package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metal-toolbox/rackview/internal/version"
)

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Print rackview version along with dependency information.",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf(
			"commit: %s\nbranch: %s\ngit summary: %s\nbuildDate: %s\nversion: %s\nGo version: %s\nchi version: %s\nlipgloss version: %s\n",
			version.GitCommit, version.GitBranch, version.GitSummary, version.BuildDate, version.AppVersion, version.GoVersion, version.ChiVersion, version.LipglossVersion)
	},
}

func init() {
	rootCmd.AddCommand(cmdVersion)
}
