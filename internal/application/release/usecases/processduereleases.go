package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/folio-inc/folio/internal/application/release/dto"
	"github.com/folio-inc/folio/internal/domain/content"
	"github.com/folio-inc/folio/internal/infrastructure/metrics"
	"github.com/folio-inc/folio/internal/shared/biztime"
	"github.com/folio-inc/folio/internal/shared/logger"
)

const (
	DefaultSweepBatchSize   = 200
	DefaultSweepConcurrency = 4
)

// ProcessDueReleasesUseCase flips every premium item whose release date has
// passed to free. Overlapping or repeated runs are safe: an item another run
// already flipped is skipped, not counted and not reported.
type ProcessDueReleasesUseCase struct {
	contentRepo content.Repository
	clock       biztime.Clock
	batchSize   int
	concurrency int
	logger      logger.Interface
}

func NewProcessDueReleasesUseCase(
	contentRepo content.Repository,
	clock biztime.Clock,
	batchSize, concurrency int,
	logger logger.Interface,
) *ProcessDueReleasesUseCase {
	if batchSize <= 0 {
		batchSize = DefaultSweepBatchSize
	}
	if concurrency <= 0 {
		concurrency = DefaultSweepConcurrency
	}
	return &ProcessDueReleasesUseCase{
		contentRepo: contentRepo,
		clock:       clock,
		batchSize:   batchSize,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Run sweeps all due items. Per item failures are collected in the result;
// only a failure to list due items aborts the sweep.
func (uc *ProcessDueReleasesUseCase) Run(ctx context.Context) (*dto.SweepResultDTO, error) {
	start := time.Now()
	defer func() { metrics.ReleaseSweepDuration.Observe(time.Since(start).Seconds()) }()

	now := uc.clock.Now()
	result := &dto.SweepResultDTO{Errors: []dto.ReleaseErrorDTO{}}
	var mu sync.Mutex

	var afterID uint
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		page, err := uc.contentRepo.FindDueForRelease(ctx, now, afterID, uc.batchSize)
		if err != nil {
			uc.logger.Errorw("failed to list due releases", "after_id", afterID, "error", err)
			return result, fmt.Errorf("failed to list due releases: %w", err)
		}
		if len(page) == 0 {
			break
		}

		var g errgroup.Group
		g.SetLimit(uc.concurrency)
		for _, due := range page {
			g.Go(func() error {
				released, err := uc.contentRepo.MarkReleased(ctx, due.ID, now)

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err != nil:
					metrics.Releases.WithLabelValues(metrics.OutcomeFailed).Inc()
					uc.logger.Errorw("failed to release content", "content_id", due.SID, "error", err)
					result.Errors = append(result.Errors, dto.ReleaseErrorDTO{ContentID: due.SID, Error: err.Error()})
				case released:
					metrics.Releases.WithLabelValues(metrics.OutcomeReleased).Inc()
					result.ReleasedCount++
				default:
					metrics.Releases.WithLabelValues(metrics.OutcomeSkipped).Inc()
				}
				// per item failures must not cancel siblings
				return nil
			})
		}
		_ = g.Wait()

		afterID = page[len(page)-1].ID
		if len(page) < uc.batchSize {
			break
		}
	}

	if result.ReleasedCount > 0 || len(result.Errors) > 0 {
		uc.logger.Infow("release sweep finished",
			"released", result.ReleasedCount,
			"errors", len(result.Errors),
			"duration", time.Since(start),
		)
	}
	return result, nil
}

// Execute adapts Run to the scheduler's batch job contract.
func (uc *ProcessDueReleasesUseCase) Execute(ctx context.Context) (int, error) {
	result, err := uc.Run(ctx)
	if err != nil {
		return result.ReleasedCount, err
	}
	if len(result.Errors) > 0 {
		return result.ReleasedCount, fmt.Errorf("%d items failed to release", len(result.Errors))
	}
	return result.ReleasedCount, nil
}
