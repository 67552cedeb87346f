package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <dest>",
	Short: "Write the store to a shareable export file",
	Long: `Write the full store, stamped with export metadata, to a file that can be
imported on another machine. The store's own file is not modified.

Examples:
  instinctd export ~/instincts-export.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

// runExport handles the export command
func runExport(cmd *cobra.Command, args []string) error {
	if err := store.ExportTo(args[0]); err != nil {
		return err
	}

	fmt.Printf("exported store to %s\n", args[0])
	return nil
}
