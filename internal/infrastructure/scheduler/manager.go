// Package scheduler runs periodic maintenance jobs on gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/folio-inc/folio/internal/shared/biztime"
	"github.com/folio-inc/folio/internal/shared/goroutine"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// BatchJob processes one batch and returns the number of items handled.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager owns a single gocron scheduler for the process.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterReleaseSweep runs job every interval, starting immediately. A
// sweep still running when the next tick fires causes that tick to be
// skipped, so two sweeps from this process never overlap.
func (m *SchedulerManager) RegisterReleaseSweep(job BatchJob, interval, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = interval
	}
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			m.runReleaseSweep(ctx, job)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("release", "sweep"),
		gocron.WithName("release-sweep"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered release sweep job", "interval", interval.String())
	return nil
}

func (m *SchedulerManager) runReleaseSweep(ctx context.Context, job BatchJob) {
	defer goroutine.Recover(m.logger, "release-sweep")
	startTime := biztime.NowUTC()

	released, err := job.Execute(ctx)
	if err != nil {
		m.logger.Errorw("release sweep failed",
			"error", err,
			"released", released,
			"duration", time.Since(startTime),
		)
		return
	}
	if released > 0 {
		m.logger.Infow("release sweep completed",
			"released", released,
			"duration", time.Since(startTime),
		)
		return
	}
	m.logger.Debugw("release sweep found nothing due")
}

func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to finish.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")
	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
