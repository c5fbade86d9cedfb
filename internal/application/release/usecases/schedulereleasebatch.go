package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/folio-inc/folio/internal/application/release/dto"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// DefaultBatchScheduleLimit caps the number of items in one batch schedule.
const DefaultBatchScheduleLimit = 100

type ScheduleReleaseBatchCommand struct {
	ContentIDs  []string
	ReleaseDate time.Time
}

// ScheduleReleaseBatchUseCase applies one release date to many items. Each
// item succeeds or fails on its own.
type ScheduleReleaseBatchUseCase struct {
	single *ScheduleReleaseUseCase
	limit  int
	logger logger.Interface
}

func NewScheduleReleaseBatchUseCase(single *ScheduleReleaseUseCase, limit int, logger logger.Interface) *ScheduleReleaseBatchUseCase {
	if limit <= 0 {
		limit = DefaultBatchScheduleLimit
	}
	return &ScheduleReleaseBatchUseCase{
		single: single,
		limit:  limit,
		logger: logger,
	}
}

func (uc *ScheduleReleaseBatchUseCase) Execute(ctx context.Context, cmd ScheduleReleaseBatchCommand) (*dto.ScheduleBatchResultDTO, error) {
	if len(cmd.ContentIDs) == 0 {
		return nil, errors.NewValidationError("at least one content id is required")
	}
	if len(cmd.ContentIDs) > uc.limit {
		return nil, errors.NewValidationError(fmt.Sprintf("at most %d content ids may be scheduled at once", uc.limit))
	}

	now := uc.single.clock.Now()
	if err := validateReleaseDate(cmd.ReleaseDate, now); err != nil {
		return nil, err
	}
	releaseDate := cmd.ReleaseDate.UTC()

	result := &dto.ScheduleBatchResultDTO{Failed: []string{}}
	for _, sid := range cmd.ContentIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := uc.single.schedule(ctx, sid, releaseDate, now); err != nil {
			uc.logger.Warnw("failed to schedule content release", "content_id", sid, "error", err)
			result.Failed = append(result.Failed, sid)
			continue
		}
		result.Successful++
	}

	uc.logger.Infow("batch release scheduled",
		"requested", len(cmd.ContentIDs),
		"successful", result.Successful,
		"failed", len(result.Failed),
		"release_date", releaseDate,
	)
	return result, nil
}
