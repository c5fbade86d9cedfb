package constants

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	TableContentItems  = "content_items"
	TablePlans         = "plans"
	TableSubscriptions = "subscriptions"

	// Subscription cache keys. %s is the viewer SID.
	SubscriptionCacheKeyPattern = "folio:entitlement:%s"
	// Per viewer zone interest sorted set. %s is the viewer SID.
	ZoneInterestKeyPattern = "folio:interest:%s"
)
