package usecases

import (
	"context"

	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/id"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// RefreshEntitlementUseCase drops a viewer's cached subscription, typically
// after the billing system reports a change.
type RefreshEntitlementUseCase struct {
	resolver SubscriptionResolver
	logger   logger.Interface
}

func NewRefreshEntitlementUseCase(resolver SubscriptionResolver, logger logger.Interface) *RefreshEntitlementUseCase {
	return &RefreshEntitlementUseCase{resolver: resolver, logger: logger}
}

func (uc *RefreshEntitlementUseCase) Execute(ctx context.Context, viewerID string) error {
	if !id.HasPrefix(viewerID, id.PrefixViewer) {
		return errors.NewValidationError("invalid viewer id")
	}
	if err := uc.resolver.Invalidate(ctx, viewerID); err != nil {
		uc.logger.Errorw("failed to invalidate entitlement cache", "viewer_id", viewerID, "error", err)
		return errors.NewUnavailableError("entitlement cache unavailable")
	}
	uc.logger.Infow("entitlement cache refreshed", "viewer_id", viewerID)
	return nil
}
