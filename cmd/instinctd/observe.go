package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/instinctd/internal/instinct"
)

var (
	// observeContext is the grouping tag for the observation (--context)
	observeContext string
	// observeConfidence is the initial confidence for new patterns (--confidence)
	observeConfidence float64
)

var observeCmd = &cobra.Command{
	Use:   "observe <id>",
	Short: "Record an observation of a pattern",
	Long: `Record that a pattern was observed. A new ID creates an instinct with the
given (or default) confidence; an existing ID reinforces it.

Pass "-" as the ID to generate one.

Examples:
  # Record a named pattern
  instinctd observe prefers-table-tests --context testing

  # Record with an explicit initial confidence
  instinctd observe rebases-before-push --context git --confidence 0.5

  # Record with a generated ID
  instinctd observe - --context review`,
	Args: cobra.ExactArgs(1),
	RunE: runObserve,
}

func init() {
	observeCmd.Flags().StringVar(&observeContext, "context", "", "grouping tag for the pattern")
	observeCmd.Flags().Float64Var(&observeConfidence, "confidence", 0, "initial confidence for a new pattern (default 0.3)")
}

// runObserve handles the observe command
func runObserve(cmd *cobra.Command, args []string) error {
	id := args[0]
	if id == "-" {
		id = uuid.New().String()
	}

	rec, err := store.AddOrUpdate(instinct.Instinct{
		ID:         id,
		Context:    observeContext,
		Confidence: observeConfidence,
	})
	if err != nil {
		return err
	}

	fmt.Printf("recorded %s (confidence %.2f, used %d)\n", rec.ID, rec.Confidence, rec.UsageCount)
	return nil
}
