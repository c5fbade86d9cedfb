package content

import "errors"

var (
	ErrContentNotFound        = errors.New("content item not found")
	ErrNotPremium             = errors.New("content item is not premium")
	ErrAlreadyReleased        = errors.New("content item already released to the free tier")
	ErrReleaseDateNotInFuture = errors.New("release date must be in the future")
	ErrInvalidPreviewLength   = errors.New("preview length must be positive")
	ErrUndecodable            = errors.New("stored content item cannot be decoded")
)
