package subscription

import "errors"

var (
	ErrInvalidStatus = errors.New("invalid subscription status")
	ErrInvalidPeriod = errors.New("current period end must not precede its start")
	ErrPlanRequired  = errors.New("subscription plan is required")
)
