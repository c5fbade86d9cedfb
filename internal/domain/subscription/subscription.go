package subscription

import (
	"fmt"
	"time"

	contentvo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	vo "github.com/folio-inc/folio/internal/domain/subscription/valueobjects"
)

// Subscription is a read-only projection of the viewer's billing state.
type Subscription struct {
	id                 uint
	sid                string
	viewerID           string
	plan               *Plan
	status             vo.Status
	currentPeriodStart time.Time
	currentPeriodEnd   time.Time
	cancelAtPeriodEnd  bool
}

func ReconstructSubscription(
	subID uint,
	sid, viewerID string,
	plan *Plan,
	status vo.Status,
	currentPeriodStart, currentPeriodEnd time.Time,
	cancelAtPeriodEnd bool,
) (*Subscription, error) {
	if viewerID == "" {
		return nil, fmt.Errorf("viewer ID is required")
	}
	if plan == nil {
		return nil, ErrPlanRequired
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	if currentPeriodEnd.Before(currentPeriodStart) {
		return nil, ErrInvalidPeriod
	}

	return &Subscription{
		id:                 subID,
		sid:                sid,
		viewerID:           viewerID,
		plan:               plan,
		status:             status,
		currentPeriodStart: currentPeriodStart.UTC(),
		currentPeriodEnd:   currentPeriodEnd.UTC(),
		cancelAtPeriodEnd:  cancelAtPeriodEnd,
	}, nil
}

func (s *Subscription) ID() uint                      { return s.id }
func (s *Subscription) SID() string                   { return s.sid }
func (s *Subscription) ViewerID() string              { return s.viewerID }
func (s *Subscription) Plan() *Plan                   { return s.plan }
func (s *Subscription) Status() vo.Status             { return s.status }
func (s *Subscription) CurrentPeriodStart() time.Time { return s.currentPeriodStart }
func (s *Subscription) CurrentPeriodEnd() time.Time   { return s.currentPeriodEnd }
func (s *Subscription) CancelAtPeriodEnd() bool       { return s.cancelAtPeriodEnd }

// IsActive reports status active and now not past the current period end.
// A subscription set to cancel at period end stays active until then.
func (s *Subscription) IsActive(now time.Time) bool {
	return s.status.GrantsAccess() && !now.After(s.currentPeriodEnd)
}

// Entitles reports whether the plan covers every required zone.
func (s *Subscription) Entitles(required []contentvo.Zone) bool {
	return s.plan.Covers(required)
}
