// Package access decides whether a viewer may read a content item in full.
package access

import (
	"time"

	"github.com/folio-inc/folio/internal/domain/content"
	"github.com/folio-inc/folio/internal/domain/subscription"
	"github.com/folio-inc/folio/internal/shared/biztime"
)

// DefaultPreviewLength applies when neither the item nor the policy sets one.
const DefaultPreviewLength = 300

// Policy holds the static parts of a denial.
type Policy struct {
	DefaultPreviewLength int
	UpgradeURL           string
}

// Evaluator is pure: no I/O, no clock. Callers pass the instant to judge at.
type Evaluator struct {
	policy Policy
}

func NewEvaluator(policy Policy) *Evaluator {
	if policy.DefaultPreviewLength <= 0 {
		policy.DefaultPreviewLength = DefaultPreviewLength
	}
	return &Evaluator{policy: policy}
}

// Evaluate applies the rules in order, first match wins:
// free item, elapsed release date, active subscription covering the item's
// required zones, otherwise an upgrade prompt. sub may be nil.
func (e *Evaluator) Evaluate(item *content.ContentItem, sub *subscription.Subscription, now time.Time) Decision {
	if !item.IsPremium() {
		return allow(CodeFreeContent, ReasonFreeContent)
	}

	if item.ReleaseElapsed(now) {
		return allow(CodeReleased, ReasonReleased)
	}

	if sub != nil && sub.IsActive(now) && sub.Entitles(item.RequiredZones()) {
		return allow(CodeActiveSubscription, ReasonActiveSubscription)
	}

	d := Decision{
		HasAccess:       false,
		Code:            CodeUpgradeRequired,
		Reason:          ReasonSubscriptionNeeded,
		RequiresUpgrade: true,
		PreviewLength:   item.PreviewLength(e.policy.DefaultPreviewLength),
		UpgradeURL:      e.policy.UpgradeURL,
	}
	if rd := item.ReleaseDate(); rd != nil {
		d.Reason = reasonFreeOnPrefix + biztime.FormatDate(*rd)
		d.ReleaseDate = rd
	}
	return d
}
