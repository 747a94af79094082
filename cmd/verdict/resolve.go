package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/verdict-dev/verdict"
	"github.com/verdict-dev/verdict/internal/presentation/tui"
	"github.com/verdict-dev/verdict/pkg/adapters/memory"
	redisAdapter "github.com/verdict-dev/verdict/pkg/adapters/redis"
	"github.com/verdict-dev/verdict/pkg/domain"
	"github.com/verdict-dev/verdict/pkg/ports"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [key=value ...]",
	Short: "Resolve the issue state for a metadata snapshot",
	Long: `Evaluates the metadata snapshot against the state definition and
prints the resolved state.

Metadata can be given three ways:
  - as key=value arguments; values are parsed as JSON where possible,
    so closed=true is a boolean and priority=5 a number
  - as a JSON object via --json (use "-" for stdin)
  - from a Redis hash via --redis-addr and --issue`,
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(cmd)
		if err != nil {
			fmt.Printf("Error initializing verdict: %v\n", err)
			os.Exit(1)
		}

		meta, err := collectMetadata(cmd, args)
		if err != nil {
			fmt.Printf("Error reading metadata: %v\n", err)
			os.Exit(1)
		}

		outcome, err := engine.Resolve(meta)
		var ambErr *domain.AmbiguousStateError
		if err != nil && !errors.As(err, &ambErr) {
			fmt.Printf("Resolution failed: %v\n", err)
			os.Exit(1)
		}

		printOutcome(cmd, engine, outcome)
		if ambErr != nil {
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().String("json", "", "Read metadata as a JSON object from a file, or - for stdin")
	resolveCmd.Flags().String("redis-addr", "", "Read metadata from Redis at this address")
	resolveCmd.Flags().String("redis-prefix", "issue:", "Key prefix for Redis issue hashes")
	resolveCmd.Flags().String("issue", "", "Issue ID to read from Redis")
	resolveCmd.Flags().StringSlice("schema", nil, "Kind of a Redis field, as identifier=kind (string|number|bool|time|set)")
	resolveCmd.Flags().Bool("explain", false, "Print the per-state breakdown of the resolution")
	resolveCmd.Flags().StringP("output", "o", "text", "Output format (text|json)")
}

func collectMetadata(cmd *cobra.Command, args []string) (ports.MetadataSource, error) {
	if addr, _ := cmd.Flags().GetString("redis-addr"); addr != "" {
		return redisMetadata(cmd, addr)
	}

	values := make(map[string]any)

	if jsonSrc, _ := cmd.Flags().GetString("json"); jsonSrc != "" {
		var data []byte
		var err error
		if jsonSrc == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(jsonSrc)
		}
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("metadata is not a JSON object: %w", err)
		}
	}

	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q is not key=value", arg)
		}
		// JSON first so booleans, numbers and arrays come out typed.
		var parsed any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			parsed = raw
		}
		values[key] = parsed
	}
	meta, err := memory.NewFromAny(values)
	if err != nil {
		return nil, err
	}
	return meta, nil
}

func redisMetadata(cmd *cobra.Command, addr string) (ports.MetadataSource, error) {
	issueID, _ := cmd.Flags().GetString("issue")
	if issueID == "" {
		return nil, fmt.Errorf("--issue is required with --redis-addr")
	}
	prefix, _ := cmd.Flags().GetString("redis-prefix")

	schema := make(map[string]domain.Kind)
	schemaFlags, _ := cmd.Flags().GetStringSlice("schema")
	for _, entry := range schemaFlags {
		identifier, kind, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("schema entry %q is not identifier=kind", entry)
		}
		schema[identifier] = domain.Kind(kind)
	}

	client := backend.NewClient(&backend.Options{Addr: addr})
	defer client.Close()

	source := redisAdapter.NewSource(client, prefix, schema)
	meta, err := source.Snapshot(cmd.Context(), issueID)
	if err != nil {
		return nil, err
	}
	return meta, nil
}

func printOutcome(cmd *cobra.Command, engine *verdict.Engine, outcome domain.Outcome) {
	if format, _ := cmd.Flags().GetString("output"); format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(outcome)
		return
	}

	printer := tui.NewPrinter(os.Stdout)
	printer.PrintOutcome(outcome)
	if explain, _ := cmd.Flags().GetBool("explain"); explain {
		fmt.Println()
		printer.PrintExplanation(engine.States(), outcome, engine.EffectiveCondition)
	}
}
