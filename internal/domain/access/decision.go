package access

import "time"

// Code is a stable machine readable tag for a decision.
type Code string

const (
	CodeFreeContent        Code = "free_content"
	CodeReleased           Code = "released"
	CodeActiveSubscription Code = "active_subscription"
	CodeUpgradeRequired    Code = "upgrade_required"
)

const (
	ReasonFreeContent        = "free content"
	ReasonReleased           = "released to free tier"
	ReasonActiveSubscription = "active subscription"
	ReasonSubscriptionNeeded = "premium content — subscription required"
	reasonFreeOnPrefix       = "premium content — free on "
)

// Decision is the outcome of evaluating one viewer against one item.
// Denials carry only the coarse reason, never entitlement details.
type Decision struct {
	HasAccess       bool
	Code            Code
	Reason          string
	RequiresUpgrade bool
	PreviewLength   int
	UpgradeURL      string
	ReleaseDate     *time.Time
}

func allow(code Code, reason string) Decision {
	return Decision{HasAccess: true, Code: code, Reason: reason}
}
