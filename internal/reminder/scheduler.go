package reminder

import (
	"context"
	"time"

	"github.com/AlibekovAA/stride/internal/common/clock"
	"github.com/AlibekovAA/stride/internal/common/constants"
	"github.com/AlibekovAA/stride/internal/common/logger"
	"github.com/AlibekovAA/stride/internal/dataset"
	"github.com/AlibekovAA/stride/internal/observability/metrics"
)

type SnapshotLoader interface {
	Load(ctx context.Context) dataset.Snapshot
}

type Config struct {
	Hour     int
	Window   time.Duration
	Location *time.Location
}

type RunStats struct {
	Users  int
	Sent   int
	Failed int
}

// Scheduler fires once a day at Config.Hour and mails every user with tasks
// due inside the window. One failing recipient never stops the run.
type Scheduler struct {
	store    SnapshotLoader
	notifier Notifier
	clock    clock.Clock
	cfg      Config
	log      *logger.Logger
}

func NewScheduler(store SnapshotLoader, notifier Notifier, clk clock.Clock, cfg Config, log *logger.Logger) *Scheduler {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.Hour < 0 || cfg.Hour > 23 {
		cfg.Hour = constants.DefaultReminderHour
	}
	return &Scheduler{
		store:    store,
		notifier: notifier,
		clock:    clk,
		cfg:      cfg,
		log:      log,
	}
}

// NextRun is the first Hour:00 in the configured location strictly after now.
func (s *Scheduler) NextRun(now time.Time) time.Time {
	local := now.In(s.cfg.Location)
	y, m, d := local.Date()
	next := time.Date(y, m, d, s.cfg.Hour, 0, 0, 0, s.cfg.Location)
	if !next.After(now) {
		next = time.Date(y, m, d+1, s.cfg.Hour, 0, 0, 0, s.cfg.Location)
	}
	return next
}

// Start blocks until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.log.WithFields(ctx, logger.Fields{
		"hour":     s.cfg.Hour,
		"window":   s.cfg.Window.String(),
		"location": s.cfg.Location.String(),
		"notifier": s.notifier.Name(),
		"action":   "reminder_scheduler_started",
	}).Info("reminder scheduler started")

	for {
		next := s.NextRun(s.clock.Now())
		timer := time.NewTimer(next.Sub(s.clock.Now()))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.WithFields(ctx, logger.Fields{"action": "reminder_scheduler_stopped"}).Info("reminder scheduler stopped")
			return
		case <-timer.C:
			s.RunOnce(ctx)
		}
	}
}

func (s *Scheduler) RunOnce(ctx context.Context) RunStats {
	now := s.clock.Now()
	metrics.ReminderRunsTotal.Inc()
	metrics.ReminderLastRunTimestamp.Set(float64(now.Unix()))

	due := DueSoon(s.store.Load(ctx), now, s.cfg.Window)
	stats := RunStats{Users: len(due)}

	for _, r := range due {
		if ctx.Err() != nil {
			break
		}
		if err := s.notifier.Notify(ctx, r); err != nil {
			stats.Failed++
			metrics.ReminderFailuresTotal.WithLabelValues(s.notifier.Name()).Inc()
			s.log.WithFields(ctx, logger.Fields{
				"user_id": string(r.UserID),
				"action":  "reminder_send_failed",
			}).Errorf("reminder delivery failed: %v", err)
			continue
		}
		stats.Sent++
		metrics.RemindersSentTotal.WithLabelValues(s.notifier.Name()).Inc()
	}

	s.log.WithFields(ctx, logger.Fields{
		"users":  stats.Users,
		"sent":   stats.Sent,
		"failed": stats.Failed,
		"action": "reminder_run_completed",
	}).Info("reminder run completed")

	return stats
}
