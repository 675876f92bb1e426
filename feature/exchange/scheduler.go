package exchange

import (
	"context"
	"fmt"
	"sync"
	"time"

	"prunderground/core/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cronLogger routes cron's own logging through zap.
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}

// Scheduler runs the price sync job on a fixed interval. A run that is still
// going when the next one is due causes that tick to be skipped.
type Scheduler struct {
	cron       *cron.Cron
	job        *PriceSyncJob
	interval   time.Duration
	runOnStart bool
	logger     *zap.Logger

	entry   cron.EntryID
	started bool
	mu      sync.Mutex
	initial sync.WaitGroup
}

// NewScheduler creates a scheduler for job.
func NewScheduler(job *PriceSyncJob, cfg Config, l *zap.Logger) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Minute
	}
	l = logger.Component(l, "scheduler")
	cl := cronLogger{logger: l.Sugar()}

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		job:        job,
		interval:   cfg.Interval,
		runOnStart: cfg.RunOnStart,
		logger:     l,
	}
}

// run is the scheduled body. Each run gets at most one interval to finish.
func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	s.logger.Info("Starting scheduled CX price sync")
	summary, err := s.job.Run(ctx)
	if err != nil {
		return
	}
	s.logger.Info("Scheduled CX price sync complete",
		zap.Int("inserted", summary.Inserted),
		zap.Int("updated", summary.Updated))
}

// Start registers the job and starts the timer. With RunOnStart the first sync
// runs immediately through the same guarded job, so a tick arriving while it
// is still running is skipped.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		s.logger.Info("Scheduler already running")
		return nil
	}

	id, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), s.run)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", s.job.Name(), err)
	}
	s.entry = id
	s.cron.Start()
	s.started = true
	s.logger.Info("Background scheduler started",
		zap.String("job", s.job.Name()),
		zap.Duration("interval", s.interval))

	if s.runOnStart {
		wrapped := s.cron.Entry(id).WrappedJob
		s.initial.Add(1)
		go func() {
			defer s.initial.Done()
			wrapped.Run()
		}()
	}
	return nil
}

// Stop stops the timer and waits for a running sync to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.initial.Wait()
	s.started = false
	s.logger.Info("Background scheduler stopped")
}

// Next returns the time of the next scheduled run, zero when not started.
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return time.Time{}
	}
	return s.cron.Entry(s.entry).Next
}
