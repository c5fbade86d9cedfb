package usecases

import (
	"context"
	"fmt"

	"github.com/folio-inc/folio/internal/application/access/dto"
	"github.com/folio-inc/folio/internal/domain/access"
	"github.com/folio-inc/folio/internal/domain/content"
	"github.com/folio-inc/folio/internal/infrastructure/metrics"
	"github.com/folio-inc/folio/internal/shared/biztime"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/id"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// DefaultBulkLimit caps the number of items in one bulk check.
const DefaultBulkLimit = 50

type CheckAccessBulkQuery struct {
	ViewerID   string
	ContentIDs []string
}

// CheckAccessBulkUseCase evaluates many items for one viewer against a
// single subscription snapshot and a single instant.
type CheckAccessBulkUseCase struct {
	contentRepo content.Repository
	resolver    SubscriptionResolver
	evaluator   *access.Evaluator
	clock       biztime.Clock
	limit       int
	logger      logger.Interface
}

func NewCheckAccessBulkUseCase(
	contentRepo content.Repository,
	resolver SubscriptionResolver,
	evaluator *access.Evaluator,
	clock biztime.Clock,
	limit int,
	logger logger.Interface,
) *CheckAccessBulkUseCase {
	if limit <= 0 {
		limit = DefaultBulkLimit
	}
	return &CheckAccessBulkUseCase{
		contentRepo: contentRepo,
		resolver:    resolver,
		evaluator:   evaluator,
		clock:       clock,
		limit:       limit,
		logger:      logger,
	}
}

// Execute returns one entry per requested id, in request order. Unknown or
// malformed ids become per-item errors.
func (uc *CheckAccessBulkUseCase) Execute(ctx context.Context, query CheckAccessBulkQuery) ([]dto.BulkAccessResultDTO, error) {
	if len(query.ContentIDs) == 0 {
		return nil, errors.NewValidationError("at least one content id is required")
	}
	if len(query.ContentIDs) > uc.limit {
		return nil, errors.NewValidationError(fmt.Sprintf("at most %d content ids may be checked at once", uc.limit))
	}

	valid := make([]string, 0, len(query.ContentIDs))
	for _, sid := range query.ContentIDs {
		if id.ValidateContentID(sid) == nil {
			valid = append(valid, sid)
		}
	}

	byID := make(map[string]*content.ContentItem, len(valid))
	var undecodable map[string]error
	if len(valid) > 0 {
		batch, err := uc.contentRepo.GetBySIDs(ctx, valid)
		if err != nil {
			uc.logger.Errorw("failed to load content items", "count", len(valid), "error", err)
			return nil, fmt.Errorf("failed to load content items: %w", err)
		}
		for _, item := range batch.Items {
			byID[item.SID()] = item
		}
		undecodable = batch.Undecodable
	}

	sub := resolveOrNone(ctx, uc.resolver, query.ViewerID, uc.logger)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := uc.clock.Now()

	results := make([]dto.BulkAccessResultDTO, len(query.ContentIDs))
	for i, sid := range query.ContentIDs {
		results[i].ContentID = sid

		if err := id.ValidateContentID(sid); err != nil {
			results[i].Error = dto.ToItemErrorDTO(errors.NewValidationError("invalid content id"))
			continue
		}
		if cause, bad := undecodable[sid]; bad {
			uc.logger.Warnw("content item unavailable", "content_id", sid, "error", cause)
			results[i].Error = dto.ToItemErrorDTO(errors.NewInternalError("content item unavailable"))
			continue
		}
		item, ok := byID[sid]
		if !ok {
			results[i].Error = dto.ToItemErrorDTO(errors.NewNotFoundError("content not found"))
			continue
		}

		decision := uc.evaluator.Evaluate(item, sub, now)
		metrics.AccessDecisions.WithLabelValues(string(decision.Code)).Inc()
		results[i].Decision = dto.ToAccessDecisionDTO(decision)
	}

	uc.logger.Debugw("bulk access evaluated",
		"viewer_id", query.ViewerID,
		"requested", len(query.ContentIDs),
		"found", len(byID),
	)
	return results, nil
}
