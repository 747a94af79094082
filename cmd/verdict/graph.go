package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verdict-dev/verdict/internal/presentation/graph"
	"github.com/verdict-dev/verdict/pkg/domain"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the state graph visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the states and their
relations. With --json, the outcome of resolving that metadata is
overlaid on the diagram.`,
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(cmd)
		if err != nil {
			fmt.Printf("Error initializing verdict: %v\n", err)
			os.Exit(1)
		}

		var overlay *graph.Overlay
		if jsonSrc, _ := cmd.Flags().GetString("json"); jsonSrc != "" {
			data, err := os.ReadFile(jsonSrc)
			if err != nil {
				fmt.Printf("Error reading metadata: %v\n", err)
				os.Exit(1)
			}
			values := make(map[string]any)
			if err := json.Unmarshal(data, &values); err != nil {
				fmt.Printf("Metadata is not a JSON object: %v\n", err)
				os.Exit(1)
			}

			outcome, err := engine.ResolveValues(values)
			var ambErr *domain.AmbiguousStateError
			if err != nil && !errors.As(err, &ambErr) {
				fmt.Printf("Resolution failed: %v\n", err)
				os.Exit(1)
			}
			overlay = &graph.Overlay{Enabled: outcome.Enabled, Engaged: outcome.Engaged}
		}

		fmt.Print(graph.GenerateMermaid(engine.States(), overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("json", "", "Overlay the resolution of this JSON metadata file")
}
