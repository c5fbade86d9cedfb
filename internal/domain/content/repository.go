package content

import (
	"context"
	"time"

	vo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
)

// ItemBatch is the outcome of a multi-item load.
type ItemBatch struct {
	Items []*ContentItem
	// Undecodable maps the SID of each stored row that could not be decoded
	// to the reason. The errors wrap ErrUndecodable.
	Undecodable map[string]error
}

// DueRelease is what the release sweep reads of a due item. It carries no
// decoded attributes, so a row with a malformed zone column still releases.
type DueRelease struct {
	ID          uint
	SID         string
	ReleaseDate time.Time
}

// Repository is the content storage port. Missing items are reported as
// (nil, nil) by the single item getters.
type Repository interface {
	Create(ctx context.Context, item *ContentItem) error
	GetBySID(ctx context.Context, sid string) (*ContentItem, error)
	// GetBySIDs loads every existing item in one query; order is unspecified.
	// Rows that exist but fail to decode are reported per SID, not as an error.
	GetBySIDs(ctx context.Context, sids []string) (*ItemBatch, error)

	// FindDueForRelease pages premium items whose release date is <= now,
	// ordered by ID and starting after afterID.
	FindDueForRelease(ctx context.Context, now time.Time, afterID uint, limit int) ([]DueRelease, error)
	// ListScheduled returns premium items with a release date after now,
	// soonest first.
	ListScheduled(ctx context.Context, now time.Time, limit int) ([]*ContentItem, error)
	// ListGatedByZones returns premium, not yet released items filed under any
	// of zones.
	ListGatedByZones(ctx context.Context, now time.Time, zones []vo.Zone, limit int) ([]*ContentItem, error)

	// UpdateReleaseDate writes releaseDate only while the item is premium and
	// its current date (if any) is still after now. It reports whether a row
	// changed.
	UpdateReleaseDate(ctx context.Context, sid string, releaseDate, now time.Time) (bool, error)
	// MarkReleased flips is_premium to false only while the item is premium
	// and due at now. Zero affected rows means another sweep got there first.
	MarkReleased(ctx context.Context, itemID uint, now time.Time) (bool, error)
}
