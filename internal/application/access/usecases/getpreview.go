package usecases

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/folio-inc/folio/internal/application/access/dto"
	"github.com/folio-inc/folio/internal/domain/access"
	"github.com/folio-inc/folio/internal/domain/content"
	"github.com/folio-inc/folio/internal/domain/subscription"
	"github.com/folio-inc/folio/internal/infrastructure/metrics"
	"github.com/folio-inc/folio/internal/shared/biztime"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/id"
	"github.com/folio-inc/folio/internal/shared/logger"
	"github.com/folio-inc/folio/internal/shared/services/markdown"
)

type GetPreviewQuery struct {
	ViewerID  string
	ContentID string
}

// GetPreviewUseCase renders what the viewer may see of an item: sanitized
// HTML when access is granted, a plain text excerpt of at most the
// decision's preview length otherwise.
type GetPreviewUseCase struct {
	contentRepo content.Repository
	resolver    SubscriptionResolver
	evaluator   *access.Evaluator
	renderer    markdown.MarkdownService
	interest    InterestStore
	clock       biztime.Clock
	logger      logger.Interface
}

func NewGetPreviewUseCase(
	contentRepo content.Repository,
	resolver SubscriptionResolver,
	evaluator *access.Evaluator,
	renderer markdown.MarkdownService,
	interest InterestStore,
	clock biztime.Clock,
	logger logger.Interface,
) *GetPreviewUseCase {
	return &GetPreviewUseCase{
		contentRepo: contentRepo,
		resolver:    resolver,
		evaluator:   evaluator,
		renderer:    renderer,
		interest:    interest,
		clock:       clock,
		logger:      logger,
	}
}

func (uc *GetPreviewUseCase) Execute(ctx context.Context, query GetPreviewQuery) (*dto.PreviewDTO, error) {
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

	uc.recordInterest(ctx, query.ViewerID, item)

	result := &dto.PreviewDTO{
		ContentID: item.SID(),
		Title:     item.Title(),
		Access:    dto.ToAccessDecisionDTO(decision),
	}

	if decision.HasAccess {
		html, err := uc.renderer.ToHTMLSanitized(item.Body())
		if err != nil {
			uc.logger.Errorw("failed to render content", "content_id", item.SID(), "error", err)
			return nil, errors.NewInternalError("failed to render content")
		}
		result.HTML = html
		return result, nil
	}

	text, err := uc.renderer.ToPlainText(item.Body())
	if err != nil {
		uc.logger.Errorw("failed to render preview", "content_id", item.SID(), "error", err)
		return nil, errors.NewInternalError("failed to render content")
	}
	result.Text = markdown.Truncate(text, decision.PreviewLength)
	result.Truncated = utf8.RuneCountInString(text) > decision.PreviewLength
	return result, nil
}

func (uc *GetPreviewUseCase) recordInterest(ctx context.Context, viewerID string, item *content.ContentItem) {
	if uc.interest == nil || viewerID == "" {
		return
	}
	if err := uc.interest.Record(ctx, viewerID, item.ZoneTags()); err != nil {
		uc.logger.Warnw("failed to record zone interest", "viewer_id", viewerID, "content_id", item.SID(), "error", err)
	}
}
