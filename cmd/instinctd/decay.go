package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// decayDays is the unused-age threshold (--days); 0 uses the configured value
	decayDays int
)

var decayCmd = &cobra.Command{
	Use:   "decay",
	Short: "Run one decay pass over unused patterns",
	Long: `Reduce the confidence of every pattern that has not been observed for longer
than the threshold. Confidence never drops below the floor of 0.1.

Examples:
  # Use the configured threshold (default 30 days)
  instinctd decay

  # Decay anything unused for two weeks
  instinctd decay --days 14`,
	Args: cobra.NoArgs,
	RunE: runDecay,
}

func init() {
	decayCmd.Flags().IntVar(&decayDays, "days", 0, "unused-age threshold in days (default from config)")
}

// runDecay handles the decay command
func runDecay(cmd *cobra.Command, args []string) error {
	days := decayDays
	if days == 0 {
		days = cfg.Decay.ThresholdDays
	}

	result, err := store.DecayUnused(days)
	if err != nil {
		return err
	}

	fmt.Printf("decayed %d of %d instincts (threshold %d days)\n",
		result.Decayed, result.Scanned, days)
	return nil
}
