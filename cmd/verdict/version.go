package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verdict-dev/verdict"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of verdict",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("verdict version %s\n", strings.TrimSpace(verdict.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
