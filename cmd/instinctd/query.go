package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/instinctd/internal/instinct"
)

var (
	// queryContext filters by grouping tag (--context)
	queryContext string
	// queryMinConfidence filters by confidence threshold (--min-confidence)
	queryMinConfidence float64
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "List stored instincts",
	Long: `List stored instincts as JSON on stdout.

By default all instincts are listed in insertion order. --context filters by
grouping tag; --min-confidence filters by confidence threshold.

Examples:
  # Everything
  instinctd query

  # Patterns observed in git workflows
  instinctd query --context git

  # Trusted patterns only
  instinctd query --min-confidence 0.7`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryContext, "context", "", "only instincts with this context tag")
	queryCmd.Flags().Float64Var(&queryMinConfidence, "min-confidence", instinct.DefaultQueryThreshold, "only instincts at or above this confidence")
}

// runQuery handles the query command
func runQuery(cmd *cobra.Command, args []string) error {
	var (
		results []instinct.Instinct
		err     error
	)
	if cmd.Flags().Changed("min-confidence") {
		results, err = store.QueryByConfidence(queryMinConfidence)
	} else {
		results, err = store.QueryByContext(queryContext)
	}
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Println(string(out))

	return nil
}
