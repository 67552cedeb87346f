package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/instinctd/internal/instinct"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the decay scheduler and store monitor",
	Long: `Run in the foreground until SIGINT/SIGTERM, decaying unused patterns on the
configured interval and logging a warning whenever another process rewrites
the store file (last writer wins).`,
	Args: cobra.NoArgs,
	RunE: runDaemon,
}

// runDaemon handles the daemon command
func runDaemon(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched, err := instinct.NewDecayScheduler(store, logger.Named("decay"),
		instinct.WithInterval(cfg.Decay.Interval.Duration()),
		instinct.WithThresholdDays(cfg.Decay.ThresholdDays))
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	monitor, err := instinct.NewMonitor(store, logger.Named("monitor"))
	if err != nil {
		return err
	}
	if err := monitor.Start(ctx); err != nil {
		return err
	}
	defer monitor.Stop()

	logger.Info("instinctd daemon started",
		zap.String("store", store.Path()),
		zap.Duration("decay_interval", cfg.Decay.Interval.Duration()),
		zap.Int("decay_threshold_days", cfg.Decay.ThresholdDays))

	for {
		select {
		case <-ctx.Done():
			logger.Info("instinctd daemon shutting down")
			_ = logger.Sync()
			return nil
		case ev := <-monitor.Events():
			logger.Warn("store file modified by another process, last writer wins",
				zap.String("path", ev.Path),
				zap.String("op", ev.Op),
				zap.Time("detected_at", ev.Timestamp))
		}
	}
}
