package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/instinctd/internal/instinct"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store location and summary",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

// runStatus handles the status command
func runStatus(cmd *cobra.Command, args []string) error {
	doc, err := instinct.Load(store.Path())
	if err != nil {
		return err
	}

	lastUpdated := "never"
	if doc.LastUpdated != nil {
		lastUpdated = doc.LastUpdated.Format(time.RFC3339)
	}

	trusted := 0
	for _, in := range doc.Instincts {
		if in.Confidence >= instinct.DefaultQueryThreshold {
			trusted++
		}
	}

	fmt.Printf("Store:        %s\n", store.Path())
	fmt.Printf("Version:      %s\n", doc.Version)
	fmt.Printf("Instincts:    %d (%d trusted)\n", len(doc.Instincts), trusted)
	fmt.Printf("Last updated: %s\n", lastUpdated)

	return nil
}
