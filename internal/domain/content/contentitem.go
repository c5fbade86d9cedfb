package content

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	"github.com/folio-inc/folio/internal/shared/id"
)

// ContentItem is the gating view of an article or series entry. Only the
// release scheduler and the release processor change isPremium/releaseDate.
type ContentItem struct {
	id            uint
	sid           string
	title         string
	body          string
	isPremium     bool
	releaseDate   *time.Time
	releasedAt    *time.Time
	zones         []vo.ZoneRequirement
	previewLength *int
	version       int
	createdAt     time.Time
	updatedAt     time.Time
}

// NewContentItem builds an item that has not been persisted yet.
func NewContentItem(title, body string, isPremium bool, zones []vo.ZoneRequirement, previewLength *int, now time.Time) (*ContentItem, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	if err := validateZones(zones); err != nil {
		return nil, err
	}
	if previewLength != nil && *previewLength <= 0 {
		return nil, ErrInvalidPreviewLength
	}

	sid, err := id.NewContentID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate content id: %w", err)
	}

	return &ContentItem{
		sid:           sid,
		title:         title,
		body:          body,
		isPremium:     isPremium,
		zones:         zones,
		previewLength: previewLength,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructContentItem rebuilds an item from storage.
func ReconstructContentItem(
	itemID uint,
	sid, title, body string,
	isPremium bool,
	releaseDate, releasedAt *time.Time,
	zones []vo.ZoneRequirement,
	previewLength *int,
	version int,
	createdAt, updatedAt time.Time,
) (*ContentItem, error) {
	if itemID == 0 {
		return nil, fmt.Errorf("content item ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("content item SID is required")
	}
	if err := validateZones(zones); err != nil {
		return nil, err
	}
	if releaseDate != nil {
		utc := releaseDate.UTC()
		releaseDate = &utc
	}

	return &ContentItem{
		id:            itemID,
		sid:           sid,
		title:         title,
		body:          body,
		isPremium:     isPremium,
		releaseDate:   releaseDate,
		releasedAt:    releasedAt,
		zones:         zones,
		previewLength: previewLength,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func validateZones(zones []vo.ZoneRequirement) error {
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *ContentItem) ID() uint                    { return c.id }
func (c *ContentItem) SID() string                 { return c.sid }
func (c *ContentItem) Title() string               { return c.title }
func (c *ContentItem) Body() string                { return c.body }
func (c *ContentItem) IsPremium() bool             { return c.isPremium }
func (c *ContentItem) ReleaseDate() *time.Time     { return c.releaseDate }
func (c *ContentItem) ReleasedAt() *time.Time      { return c.releasedAt }
func (c *ContentItem) Zones() []vo.ZoneRequirement { return c.zones }
func (c *ContentItem) CustomPreviewLength() *int   { return c.previewLength }
func (c *ContentItem) Version() int                { return c.version }
func (c *ContentItem) CreatedAt() time.Time        { return c.createdAt }
func (c *ContentItem) UpdatedAt() time.Time        { return c.updatedAt }

// SetID is called by the repository after insert.
func (c *ContentItem) SetID(itemID uint) error {
	if c.id != 0 {
		return fmt.Errorf("content item ID already set")
	}
	if itemID == 0 {
		return fmt.Errorf("content item ID cannot be zero")
	}
	c.id = itemID
	return nil
}

// ZoneTags lists every zone the item is filed under.
func (c *ContentItem) ZoneTags() []vo.Zone {
	tags := make([]vo.Zone, 0, len(c.zones))
	for _, z := range c.zones {
		tags = append(tags, z.Zone)
	}
	return tags
}

// RequiredZones lists the zones a plan must cover to read the item.
func (c *ContentItem) RequiredZones() []vo.Zone {
	var required []vo.Zone
	for _, z := range c.zones {
		if z.RequiresSubscription {
			required = append(required, z.Zone)
		}
	}
	return required
}

// ReleaseElapsed reports whether a release date exists and now is at or past it.
func (c *ContentItem) ReleaseElapsed(now time.Time) bool {
	return c.releaseDate != nil && !now.Before(*c.releaseDate)
}

// PreviewLength returns the item override or def.
func (c *ContentItem) PreviewLength(def int) int {
	if c.previewLength != nil && *c.previewLength > 0 {
		return *c.previewLength
	}
	return def
}

// ScheduleRelease records a future release date. Rescheduling is allowed
// until the current date elapses.
func (c *ContentItem) ScheduleRelease(date, now time.Time) error {
	if !date.After(now) {
		return ErrReleaseDateNotInFuture
	}
	if !c.isPremium {
		return ErrNotPremium
	}
	if c.ReleaseElapsed(now) {
		return ErrAlreadyReleased
	}

	utc := date.UTC()
	c.releaseDate = &utc
	c.updatedAt = now
	c.version++
	return nil
}
