package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jagrati-dev/jagrati-api/pkg/jobs"
)

type inactivityRepository interface {
	DeactivateInactiveStudents(ctx context.Context, cutoff time.Time) (int64, error)
}

// InactivityConfig tunes the sweep.
type InactivityConfig struct {
	WindowDays    int
	SweepInterval time.Duration
}

// InactivitySweeper periodically deactivates student accounts with no
// attendance inside the rolling window, so listings and dashboard counts
// only reflect students who still show up.
type InactivitySweeper struct {
	repo      inactivityRepository
	dashboard *DashboardService
	queue     *jobs.Queue
	logger    *zap.Logger
	cfg       InactivityConfig

	cancel context.CancelFunc
	done   chan struct{}
}

// NewInactivitySweeper constructs the sweeper.
func NewInactivitySweeper(repo inactivityRepository, dashboard *DashboardService, logger *zap.Logger, cfg InactivityConfig) *InactivitySweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 5
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 24 * time.Hour
	}
	s := &InactivitySweeper{repo: repo, dashboard: dashboard, logger: logger, cfg: cfg}
	s.queue = jobs.NewQueue("inactivity-sweep", s.handle, jobs.QueueConfig{
		Workers:    1,
		MaxRetries: 3,
		RetryDelay: time.Minute,
		Logger:     logger,
	})
	return s
}

// Start launches the queue workers and the ticker that enqueues sweeps.
func (s *InactivitySweeper) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.queue.Start(ctx)

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.cfg.SweepInterval)
		defer ticker.Stop()
		s.enqueueSweep()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.enqueueSweep()
			}
		}
	}()
}

// Stop halts the ticker and drains the queue.
func (s *InactivitySweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.done != nil {
		<-s.done
	}
	s.queue.Stop()
}

func (s *InactivitySweeper) enqueueSweep() {
	job := jobs.Job{
		ID:       uuid.NewString(),
		Type:     "deactivate-inactive-students",
		Enqueued: time.Now().UTC(),
	}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("failed to enqueue inactivity sweep", zap.Error(err))
	}
}

func (s *InactivitySweeper) handle(ctx context.Context, job jobs.Job) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -s.cfg.WindowDays)
	affected, err := s.repo.DeactivateInactiveStudents(ctx, cutoff)
	if err != nil {
		return err
	}
	if affected > 0 {
		s.logger.Info("inactive students deactivated",
			zap.Int64("count", affected),
			zap.Time("cutoff", cutoff))
		if s.dashboard != nil {
			s.dashboard.Invalidate(ctx)
		}
	}
	return nil
}
