package valueobjects

import (
	"fmt"
	"strings"
)

// Zone is an editorial section that a plan may or may not unlock.
type Zone string

const (
	ZoneNews      Zone = "news"
	ZoneAnalysis  Zone = "analysis"
	ZoneTutorials Zone = "tutorials"
	ZoneResearch  Zone = "research"
	ZoneSeries    Zone = "series"
)

var validZones = map[Zone]bool{
	ZoneNews:      true,
	ZoneAnalysis:  true,
	ZoneTutorials: true,
	ZoneResearch:  true,
	ZoneSeries:    true,
}

func (z Zone) String() string {
	return string(z)
}

func (z Zone) IsValid() bool {
	return validZones[z]
}

// ParseZone accepts a zone tag case-insensitively and rejects anything
// outside the closed set.
func ParseZone(s string) (Zone, error) {
	z := Zone(strings.ToLower(strings.TrimSpace(s)))
	if !z.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownZone, s)
	}
	return z, nil
}

// ParseZones parses every tag, failing on the first unknown one.
func ParseZones(tags []string) ([]Zone, error) {
	zones := make([]Zone, 0, len(tags))
	for _, tag := range tags {
		z, err := ParseZone(tag)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}

// AllZones lists the closed set in a stable order.
func AllZones() []Zone {
	return []Zone{ZoneNews, ZoneAnalysis, ZoneTutorials, ZoneResearch, ZoneSeries}
}

// ZoneRequirement tags a content item with a zone and whether reading it in
// that zone needs a plan covering the zone.
type ZoneRequirement struct {
	Zone                 Zone `json:"zone" yaml:"zone"`
	RequiresSubscription bool `json:"requires_subscription" yaml:"requires_subscription"`
}

// Validate is used after decoding persisted or user supplied requirements.
func (r ZoneRequirement) Validate() error {
	if !r.Zone.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownZone, r.Zone)
	}
	return nil
}
