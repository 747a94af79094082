package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/verdict-dev/verdict"
	"github.com/verdict-dev/verdict/internal/logging"
	"github.com/verdict-dev/verdict/pkg/domain"
)

var rootCmd = &cobra.Command{
	Use:   "verdict",
	Short: "Verdict resolves issue states from metadata",
	Long: `Verdict loads a declarative state definition, validates it, and
computes which state an issue exhibits given its metadata.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		slog.SetDefault(logging.New(logging.ParseLevel(level)))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("file", "f", "states.yaml", "State definition file (YAML or JSON)")
	rootCmd.PersistentFlags().String("policy", "strict", "Comparator policy for type mismatches (strict|lenient)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug|info|warn|error)")
}

// newEngine builds an engine from the shared flags plus any extra
// options.
func newEngine(cmd *cobra.Command, extra ...verdict.Option) (*verdict.Engine, error) {
	file, _ := cmd.Flags().GetString("file")
	policyName, _ := cmd.Flags().GetString("policy")

	policy := domain.PolicyStrict
	switch policyName {
	case "strict":
	case "lenient":
		policy = domain.PolicyLenient
	default:
		return nil, fmt.Errorf("unknown policy %q (want strict or lenient)", policyName)
	}

	opts := []verdict.Option{
		verdict.WithPolicy(policy),
		verdict.WithLogger(slog.Default()),
	}
	return verdict.New(file, append(opts, extra...)...)
}
