package usecases

import (
	"context"
	"fmt"
	"sort"

	"github.com/folio-inc/folio/internal/application/access/dto"
	"github.com/folio-inc/folio/internal/domain/access"
	"github.com/folio-inc/folio/internal/domain/content"
	vo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	"github.com/folio-inc/folio/internal/shared/biztime"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/logger"
)

const (
	DefaultRecommendationLimit = 10
	MaxRecommendationLimit     = 50
	topInterestZones           = 3
)

type GetRecommendationsQuery struct {
	ViewerID string
	Limit    int
	// Zones narrows candidates to these zones instead of the viewer's
	// strongest interests.
	Zones []vo.Zone
}

// GetRecommendationsUseCase suggests gated items the viewer cannot read yet,
// drawn from the zones they open most.
type GetRecommendationsUseCase struct {
	contentRepo content.Repository
	resolver    SubscriptionResolver
	evaluator   *access.Evaluator
	interest    InterestStore
	clock       biztime.Clock
	logger      logger.Interface
}

func NewGetRecommendationsUseCase(
	contentRepo content.Repository,
	resolver SubscriptionResolver,
	evaluator *access.Evaluator,
	interest InterestStore,
	clock biztime.Clock,
	logger logger.Interface,
) *GetRecommendationsUseCase {
	return &GetRecommendationsUseCase{
		contentRepo: contentRepo,
		resolver:    resolver,
		evaluator:   evaluator,
		interest:    interest,
		clock:       clock,
		logger:      logger,
	}
}

func (uc *GetRecommendationsUseCase) Execute(ctx context.Context, query GetRecommendationsQuery) ([]dto.RecommendationDTO, error) {
	if query.ViewerID == "" {
		return nil, errors.NewUnauthorizedError("authentication required")
	}
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	if limit > MaxRecommendationLimit {
		limit = MaxRecommendationLimit
	}

	scores := uc.zoneScores(ctx, query.ViewerID)
	zones := make([]vo.Zone, 0, len(scores))
	for z := range scores {
		zones = append(zones, z)
	}
	if len(query.Zones) > 0 {
		zones = query.Zones
	}
	if len(zones) == 0 {
		zones = vo.AllZones()
	}

	sub := resolveOrNone(ctx, uc.resolver, query.ViewerID, uc.logger)
	now := uc.clock.Now()

	candidates, err := uc.contentRepo.ListGatedByZones(ctx, now, zones, limit*2)
	if err != nil {
		uc.logger.Errorw("failed to list gated content", "viewer_id", query.ViewerID, "error", err)
		return nil, fmt.Errorf("failed to list gated content: %w", err)
	}

	type ranked struct {
		item     *content.ContentItem
		decision access.Decision
		score    float64
	}
	var picks []ranked
	for _, item := range candidates {
		decision := uc.evaluator.Evaluate(item, sub, now)
		if decision.HasAccess {
			continue
		}
		var score float64
		for _, z := range item.ZoneTags() {
			if s := scores[z]; s > score {
				score = s
			}
		}
		picks = append(picks, ranked{item: item, decision: decision, score: score})
	}

	sort.SliceStable(picks, func(i, j int) bool {
		if picks[i].score != picks[j].score {
			return picks[i].score > picks[j].score
		}
		ri, rj := picks[i].item.ReleaseDate(), picks[j].item.ReleaseDate()
		switch {
		case ri != nil && rj != nil && !ri.Equal(*rj):
			return ri.Before(*rj)
		case ri != nil && rj == nil:
			return true
		case ri == nil && rj != nil:
			return false
		}
		return picks[i].item.SID() < picks[j].item.SID()
	})
	if len(picks) > limit {
		picks = picks[:limit]
	}

	result := make([]dto.RecommendationDTO, 0, len(picks))
	for _, p := range picks {
		tags := p.item.ZoneTags()
		names := make([]string, 0, len(tags))
		for _, z := range tags {
			names = append(names, z.String())
		}
		result = append(result, dto.RecommendationDTO{
			ContentID:   p.item.SID(),
			Title:       p.item.Title(),
			Zones:       names,
			Score:       p.score,
			Reason:      p.decision.Reason,
			UpgradeURL:  p.decision.UpgradeURL,
			ReleaseDate: p.decision.ReleaseDate,
		})
	}
	return result, nil
}

// zoneScores returns the viewer's top zones. Interest is advisory, so a
// failing store yields no scores rather than an error.
func (uc *GetRecommendationsUseCase) zoneScores(ctx context.Context, viewerID string) map[vo.Zone]float64 {
	scores := make(map[vo.Zone]float64)
	if uc.interest == nil {
		return scores
	}
	top, err := uc.interest.Top(ctx, viewerID, topInterestZones)
	if err != nil {
		uc.logger.Warnw("failed to read zone interest", "viewer_id", viewerID, "error", err)
		return scores
	}
	for _, zs := range top {
		scores[zs.Zone] = zs.Score
	}
	return scores
}
