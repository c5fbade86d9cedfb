package usecases

import (
	"context"

	vo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	"github.com/folio-inc/folio/internal/domain/subscription"
	"github.com/folio-inc/folio/internal/infrastructure/cache"
)

// SubscriptionResolver is satisfied by services.SubscriptionResolver.
type SubscriptionResolver interface {
	Resolve(ctx context.Context, viewerID string) (*subscription.Subscription, error)
	Invalidate(ctx context.Context, viewerID string) error
}

// InterestStore tracks which zones a viewer opens gated content in.
type InterestStore interface {
	Record(ctx context.Context, viewerID string, zones []vo.Zone) error
	Top(ctx context.Context, viewerID string, n int) ([]cache.ZoneScore, error)
}
