package cache

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	contentvo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	"github.com/folio-inc/folio/internal/domain/subscription"
	vo "github.com/folio-inc/folio/internal/domain/subscription/valueobjects"
)

// CachedEntitlement is the cacheable projection of a viewer's subscription.
type CachedEntitlement struct {
	SubscriptionID    uint
	SubscriptionSID   string
	PlanID            uint
	PlanSID           string
	PlanName          string
	Zones             []string
	Status            string
	PeriodStart       time.Time
	PeriodEnd         time.Time
	CancelAtPeriodEnd bool
	// NotFound marks a viewer confirmed to have no subscription.
	NotFound bool
}

// EntitlementCache stores per-viewer subscription snapshots. Get returns
// (nil, nil) on a miss.
type EntitlementCache interface {
	Get(ctx context.Context, viewerID string) (*CachedEntitlement, error)
	Set(ctx context.Context, viewerID string, e *CachedEntitlement) error
	SetNullMarker(ctx context.Context, viewerID string) error
	Invalidate(ctx context.Context, viewerID string) error
}

// NewCachedEntitlement projects sub for caching.
func NewCachedEntitlement(sub *subscription.Subscription) *CachedEntitlement {
	plan := sub.Plan()
	zones := make([]string, 0, len(plan.Zones()))
	for _, z := range plan.Zones() {
		zones = append(zones, z.String())
	}
	return &CachedEntitlement{
		SubscriptionID:    sub.ID(),
		SubscriptionSID:   sub.SID(),
		PlanID:            plan.ID(),
		PlanSID:           plan.SID(),
		PlanName:          plan.Name(),
		Zones:             zones,
		Status:            sub.Status().String(),
		PeriodStart:       sub.CurrentPeriodStart(),
		PeriodEnd:         sub.CurrentPeriodEnd(),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd(),
	}
}

// ToSubscription rebuilds the domain object. Null markers yield (nil, nil).
func (e *CachedEntitlement) ToSubscription(viewerID string) (*subscription.Subscription, error) {
	if e == nil || e.NotFound {
		return nil, nil
	}
	zones, err := contentvo.ParseZones(e.Zones)
	if err != nil {
		return nil, fmt.Errorf("cached plan zones: %w", err)
	}
	plan, err := subscription.NewPlan(e.PlanID, e.PlanSID, e.PlanName, zones)
	if err != nil {
		return nil, err
	}
	return subscription.ReconstructSubscription(
		e.SubscriptionID, e.SubscriptionSID, viewerID, plan,
		vo.Status(e.Status), e.PeriodStart, e.PeriodEnd, e.CancelAtPeriodEnd,
	)
}

// ttlWithJitter spreads expirations over [base, base+base/4] so entries
// written together do not all expire together.
func ttlWithJitter(base time.Duration) time.Duration {
	if base <= 0 {
		return base
	}
	spread := int64(base / 4)
	if spread <= 0 {
		return base
	}
	return base + time.Duration(rand.Int64N(spread))
}
