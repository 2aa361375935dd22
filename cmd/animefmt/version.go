package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/animefmt"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of animefmt",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "animefmt version %s\n", strings.TrimSpace(animefmt.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
