package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verdict-dev/verdict/internal/presentation/tui"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the state definition for consistency",
	Long: `Loads the state definition and reports duplicate names, relation
cycles, conflicting relations and invalid counter references.`,
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(cmd)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Definition is valid! ✅")
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			tui.NewPrinter(os.Stdout).PrintStates(engine.States())
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolP("verbose", "v", false, "Print the validated states and relations")
}
