package usecases

import (
	"context"
	"time"

	"github.com/folio-inc/folio/internal/domain/content"
	"github.com/folio-inc/folio/internal/domain/subscription"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// resolveOrNone turns a resolver failure into "no entitlement". The failure
// is logged and never reaches the caller.
func resolveOrNone(ctx context.Context, resolver SubscriptionResolver, viewerID string, log logger.Interface) *subscription.Subscription {
	sub, err := resolver.Resolve(ctx, viewerID)
	if err != nil {
		log.Warnw("subscription lookup failed, treating viewer as unentitled",
			"viewer_id", viewerID,
			"error", err,
		)
		return nil
	}
	return sub
}

// needsEntitlement reports whether the decision for item at now depends on
// the viewer's subscription at all.
func needsEntitlement(item *content.ContentItem, now time.Time) bool {
	return item.IsPremium() && !item.ReleaseElapsed(now)
}
