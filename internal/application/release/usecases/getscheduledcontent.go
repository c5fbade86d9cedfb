package usecases

import (
	"context"
	"fmt"

	"github.com/folio-inc/folio/internal/application/release/dto"
	"github.com/folio-inc/folio/internal/domain/content"
	"github.com/folio-inc/folio/internal/shared/biztime"
	"github.com/folio-inc/folio/internal/shared/logger"
)

const (
	DefaultScheduledLimit = 20
	MaxScheduledLimit     = 100
)

// GetScheduledContentUseCase lists upcoming releases, soonest first.
type GetScheduledContentUseCase struct {
	contentRepo content.Repository
	clock       biztime.Clock
	logger      logger.Interface
}

func NewGetScheduledContentUseCase(contentRepo content.Repository, clock biztime.Clock, logger logger.Interface) *GetScheduledContentUseCase {
	return &GetScheduledContentUseCase{
		contentRepo: contentRepo,
		clock:       clock,
		logger:      logger,
	}
}

func (uc *GetScheduledContentUseCase) Execute(ctx context.Context, limit int) ([]dto.ScheduledContentDTO, error) {
	if limit <= 0 {
		limit = DefaultScheduledLimit
	}
	if limit > MaxScheduledLimit {
		limit = MaxScheduledLimit
	}

	now := uc.clock.Now()
	items, err := uc.contentRepo.ListScheduled(ctx, now, limit)
	if err != nil {
		uc.logger.Errorw("failed to list scheduled content", "error", err)
		return nil, fmt.Errorf("failed to list scheduled content: %w", err)
	}

	result := make([]dto.ScheduledContentDTO, 0, len(items))
	for _, item := range items {
		result = append(result, dto.ToScheduledContentDTO(item, now))
	}
	return result, nil
}
