package usecases

import (
	"context"
	"fmt"

	"github.com/folio-inc/folio/internal/application/access/dto"
	"github.com/folio-inc/folio/internal/domain/access"
	"github.com/folio-inc/folio/internal/domain/content"
	"github.com/folio-inc/folio/internal/domain/subscription"
	"github.com/folio-inc/folio/internal/infrastructure/metrics"
	"github.com/folio-inc/folio/internal/shared/biztime"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/id"
	"github.com/folio-inc/folio/internal/shared/logger"
)

type CheckAccessQuery struct {
	ViewerID  string
	ContentID string
}

type CheckAccessUseCase struct {
	contentRepo content.Repository
	resolver    SubscriptionResolver
	evaluator   *access.Evaluator
	clock       biztime.Clock
	logger      logger.Interface
}

func NewCheckAccessUseCase(
	contentRepo content.Repository,
	resolver SubscriptionResolver,
	evaluator *access.Evaluator,
	clock biztime.Clock,
	logger logger.Interface,
) *CheckAccessUseCase {
	return &CheckAccessUseCase{
		contentRepo: contentRepo,
		resolver:    resolver,
		evaluator:   evaluator,
		clock:       clock,
		logger:      logger,
	}
}

func (uc *CheckAccessUseCase) Execute(ctx context.Context, query CheckAccessQuery) (*dto.AccessDecisionDTO, error) {
	if err := id.ValidateContentID(query.ContentID); err != nil {
		return nil, errors.NewValidationError("invalid content id", err.Error())
	}

	item, err := uc.contentRepo.GetBySID(ctx, query.ContentID)
	if err != nil {
		uc.logger.Errorw("failed to load content item", "content_id", query.ContentID, "error", err)
		return nil, fmt.Errorf("failed to load content item: %w", err)
	}
	if item == nil {
		return nil, errors.NewNotFoundError("content not found")
	}

	now := uc.clock.Now()
	var sub *subscription.Subscription
	if needsEntitlement(item, now) {
		sub = resolveOrNone(ctx, uc.resolver, query.ViewerID, uc.logger)
	}
	decision := uc.evaluator.Evaluate(item, sub, now)
	metrics.AccessDecisions.WithLabelValues(string(decision.Code)).Inc()

	uc.logger.Debugw("access evaluated",
		"content_id", query.ContentID,
		"viewer_id", query.ViewerID,
		"code", decision.Code,
	)
	return dto.ToAccessDecisionDTO(decision), nil
}
