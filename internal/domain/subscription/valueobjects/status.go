package valueobjects

// Status mirrors the billing provider's subscription status.
type Status string

const (
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
	StatusPastDue  Status = "past_due"
	StatusUnpaid   Status = "unpaid"
)

var ValidStatuses = map[Status]bool{
	StatusActive:   true,
	StatusCanceled: true,
	StatusPastDue:  true,
	StatusUnpaid:   true,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return ValidStatuses[s]
}

// GrantsAccess is true only for active; past_due and unpaid are treated as
// lapsed for gating purposes.
func (s Status) GrantsAccess() bool {
	return s == StatusActive
}
