package cmd

import (
	"github.com/3kaiu/reader-sub001/cmd/extract"
	"github.com/3kaiu/reader-sub001/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version.",
	Long:  "print version.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		version.Printer()
	},
}

func Execute() {
	var rootCmd = &cobra.Command{Use: "reader"}
	rootCmd.AddCommand(extract.ExtractCmd, versionCmd)
	rootCmd.Execute()
}
