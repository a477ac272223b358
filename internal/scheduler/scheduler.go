// Package scheduler runs periodic background jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"gstbill/internal/domain"
	"gstbill/internal/metrics"
)

// StatsSource yields the current sales ledger totals.
type StatsSource interface {
	Stats(ctx context.Context) (*domain.SalesStats, error)
}

// Scheduler wraps a cron runner and the jobs registered on it.
type Scheduler struct {
	cron    *cron.Cron
	sales   StatsSource
	metrics *metrics.Metrics
	log     *zap.Logger
	timeout time.Duration
}

// New creates a scheduler. Jobs do not run until Start is called.
func New(sales StatsSource, m *metrics.Metrics, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		sales:   sales,
		metrics: m,
		log:     log,
		timeout: 30 * time.Second,
	}
}

// ScheduleLedgerSnapshot registers the ledger gauge refresh on schedule,
// which accepts standard five-field cron lines and descriptors like "@every 5m".
func (s *Scheduler) ScheduleLedgerSnapshot(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.SnapshotLedger); err != nil {
		return fmt.Errorf("scheduler: invalid ledger snapshot schedule %q: %w", schedule, err)
	}
	return nil
}

// SnapshotLedger reads the ledger totals and publishes them as gauges.
func (s *Scheduler) SnapshotLedger() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	stats, err := s.sales.Stats(ctx)
	if err != nil {
		s.log.Warn("ledger snapshot failed", zap.Error(err))
		return
	}
	s.metrics.SetLedger(stats.TotalSales, stats.TotalReceived, stats.TotalPending)
	s.log.Debug("ledger snapshot taken",
		zap.Int("sales", stats.Count),
		zap.String("pending", stats.TotalPending.StringFixed(2)),
	)
}

// Start runs the registered jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop halts the scheduler and waits for running jobs until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out")
	}
}
