package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <src>",
	Short: "Merge an exported file into the store",
	Long: `Merge an export produced by another store into this one.

Incoming patterns with unknown IDs are added as-is. When both stores know a
pattern, the record with the higher confidence wins; ties keep the local one.

Examples:
  instinctd import ~/instincts-export.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// runImport handles the import command
func runImport(cmd *cobra.Command, args []string) error {
	result, err := store.ImportFrom(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("merged %s: %d added, %d replaced, %d kept\n",
		args[0], result.Added, result.Replaced, result.Kept)
	return nil
}
