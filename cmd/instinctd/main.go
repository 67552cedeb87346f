// Package main implements the instinctd CLI for operating the instinct store.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/instinctd/internal/config"
	"github.com/fyrsmithlabs/instinctd/internal/instinct"
	"github.com/fyrsmithlabs/instinctd/internal/logging"
)

var (
	// cfgPath is the config file path (--config)
	cfgPath string
	// storePath overrides the configured data file path (--store)
	storePath string
	// version information
	version = "dev"

	cfg    *config.Config
	logger *zap.Logger
	store  *instinct.Store
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "instinctd",
	Short: "Persisted learned-pattern store for agent sessions",
	Long: `instinctd stores learned patterns ("instincts") with confidence scores in a
single JSON file. Patterns are reinforced when re-observed, decay when unused,
and can be merged across machines via export/import.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default ~/.config/instinctd/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "instinct data file (overrides config)")

	rootCmd.AddCommand(observeCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(decayCmd)
	rootCmd.AddCommand(daemonCmd)
}

// setup loads configuration and wires the logger and store for subcommands.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}

	logger, err = logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	store, err = instinct.NewStore(cfg.Store.Path, instinct.WithLogger(logger.Named("store")))
	return err
}
