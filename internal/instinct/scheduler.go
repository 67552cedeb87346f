package instinct

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DecayScheduler runs periodic decay passes in the background.
//
// The scheduler triggers Store.DecayUnused at the configured interval until
// Stop() is called. Errors from individual passes are logged and do not stop
// the scheduler.
//
// Thread Safety: all public methods are thread-safe. The running state is
// protected by a mutex to prevent races during Start/Stop.
type DecayScheduler struct {
	store *Store

	// interval is the time between decay passes
	interval time.Duration

	// thresholdDays is the unused-age threshold passed to DecayUnused
	thresholdDays int

	// mu protects running and stopCh from concurrent access
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}

	logger *zap.Logger
}

// SchedulerOption configures a DecayScheduler.
type SchedulerOption func(*DecayScheduler)

// WithInterval sets the time between decay passes. Defaults to 24 hours.
func WithInterval(interval time.Duration) SchedulerOption {
	return func(d *DecayScheduler) {
		d.interval = interval
	}
}

// WithThresholdDays sets the unused-age threshold in days.
// Defaults to DefaultDecayDays.
func WithThresholdDays(days int) SchedulerOption {
	return func(d *DecayScheduler) {
		d.thresholdDays = days
	}
}

// NewDecayScheduler creates a scheduler for the given store. The scheduler
// does not start automatically; call Start() to begin scheduled passes.
func NewDecayScheduler(store *Store, logger *zap.Logger, opts ...SchedulerOption) (*DecayScheduler, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	d := &DecayScheduler{
		store:         store,
		interval:      24 * time.Hour,
		thresholdDays: DefaultDecayDays,
		logger:        logger,
		stopCh:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// Start begins background decay passes. Calling Start on a running
// scheduler returns an error without starting a second goroutine.
func (d *DecayScheduler) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return fmt.Errorf("scheduler is already running")
	}

	// Fresh stop channel for this run
	d.stopCh = make(chan struct{})
	d.running = true

	d.logger.Info("decay scheduler started",
		zap.Duration("interval", d.interval),
		zap.Int("threshold_days", d.thresholdDays))

	go d.run()

	return nil
}

// Stop gracefully stops the scheduler. Stopping an already stopped
// scheduler is a no-op.
func (d *DecayScheduler) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return
	}

	d.logger.Info("stopping decay scheduler")
	d.running = false
	close(d.stopCh)
}

// run is the scheduler loop. It runs in a background goroutine started by
// Start() and exits when the stop channel closes. A panicking pass is
// recovered so one bad run cannot kill the loop.
func (d *DecayScheduler) run() {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("scheduler goroutine panicked, recovering",
				zap.Any("panic", r),
				zap.Stack("stack"))
			d.mu.Lock()
			d.running = false
			d.mu.Unlock()
		}
	}()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.safeRunDecay()
		case <-d.stopCh:
			return
		}
	}
}

// safeRunDecay wraps runDecay with panic recovery.
func (d *DecayScheduler) safeRunDecay() {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("decay pass panicked, continuing scheduler",
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	d.runDecay()
}

// runDecay executes a single decay pass. Errors are logged but do not stop
// the scheduler.
func (d *DecayScheduler) runDecay() {
	result, err := d.store.DecayUnused(d.thresholdDays)
	if err != nil {
		d.logger.Error("scheduled decay failed", zap.Error(err))
		return
	}

	d.logger.Info("scheduled decay completed",
		zap.Int("scanned", result.Scanned),
		zap.Int("decayed", result.Decayed))
}
