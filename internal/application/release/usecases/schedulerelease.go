package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/folio-inc/folio/internal/application/release/dto"
	"github.com/folio-inc/folio/internal/domain/content"
	"github.com/folio-inc/folio/internal/shared/biztime"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/id"
	"github.com/folio-inc/folio/internal/shared/logger"
)

type ScheduleReleaseCommand struct {
	ContentID   string
	ReleaseDate time.Time
}

// ScheduleReleaseUseCase records a future release date on a premium item.
// Rescheduling overwrites the previous date until that date elapses.
type ScheduleReleaseUseCase struct {
	contentRepo content.Repository
	clock       biztime.Clock
	logger      logger.Interface
}

func NewScheduleReleaseUseCase(contentRepo content.Repository, clock biztime.Clock, logger logger.Interface) *ScheduleReleaseUseCase {
	return &ScheduleReleaseUseCase{
		contentRepo: contentRepo,
		clock:       clock,
		logger:      logger,
	}
}

func (uc *ScheduleReleaseUseCase) Execute(ctx context.Context, cmd ScheduleReleaseCommand) (*dto.ScheduleResultDTO, error) {
	now := uc.clock.Now()
	if err := validateReleaseDate(cmd.ReleaseDate, now); err != nil {
		return nil, err
	}
	if err := uc.schedule(ctx, cmd.ContentID, cmd.ReleaseDate.UTC(), now); err != nil {
		return nil, err
	}

	uc.logger.Infow("content release scheduled",
		"content_id", cmd.ContentID,
		"release_date", cmd.ReleaseDate.UTC(),
	)
	return &dto.ScheduleResultDTO{ContentID: cmd.ContentID, ReleaseDate: cmd.ReleaseDate.UTC()}, nil
}

func validateReleaseDate(releaseDate, now time.Time) error {
	if releaseDate.IsZero() {
		return errors.NewValidationError("release date is required")
	}
	if !releaseDate.After(now) {
		return errors.NewValidationError("release date must be in the future",
			fmt.Sprintf("release date %s is not after %s", releaseDate.UTC().Format(time.RFC3339), now.Format(time.RFC3339)))
	}
	return nil
}

// schedule validates one item against the domain rules and writes the date
// with a conditional update.
func (uc *ScheduleReleaseUseCase) schedule(ctx context.Context, sid string, releaseDate, now time.Time) error {
	if err := id.ValidateContentID(sid); err != nil {
		return errors.NewValidationError("invalid content id", err.Error())
	}

	item, err := uc.contentRepo.GetBySID(ctx, sid)
	if err != nil {
		uc.logger.Errorw("failed to load content item", "content_id", sid, "error", err)
		return fmt.Errorf("failed to load content item: %w", err)
	}
	if item == nil {
		return errors.NewNotFoundError("content not found")
	}

	if err := item.ScheduleRelease(releaseDate, now); err != nil {
		return translateScheduleError(err)
	}

	updated, err := uc.contentRepo.UpdateReleaseDate(ctx, sid, releaseDate, now)
	if err != nil {
		uc.logger.Errorw("failed to update release date", "content_id", sid, "error", err)
		return fmt.Errorf("failed to update release date: %w", err)
	}
	if !updated {
		// lost a race with the release sweep
		return errors.NewConflictError("content was released while scheduling")
	}
	return nil
}

func translateScheduleError(err error) error {
	switch {
	case stderrors.Is(err, content.ErrReleaseDateNotInFuture):
		return errors.NewValidationError("release date must be in the future")
	case stderrors.Is(err, content.ErrNotPremium):
		return errors.NewValidationError("only premium content can be scheduled for release")
	case stderrors.Is(err, content.ErrAlreadyReleased):
		return errors.NewConflictError("content has already been released")
	default:
		return err
	}
}
