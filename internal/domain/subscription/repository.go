package subscription

import "context"

// Repository reads billing state. It never writes.
type Repository interface {
	// GetCurrentByViewer returns the viewer's most recent subscription, or
	// (nil, nil) when the viewer never subscribed.
	GetCurrentByViewer(ctx context.Context, viewerID string) (*Subscription, error)
}
