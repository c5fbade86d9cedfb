package subscription

import (
	"fmt"

	contentvo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
)

// Plan is the entitlement side of a billing plan: which zones it unlocks.
type Plan struct {
	id    uint
	sid   string
	name  string
	zones map[contentvo.Zone]struct{}
}

func NewPlan(planID uint, sid, name string, zones []contentvo.Zone) (*Plan, error) {
	if sid == "" {
		return nil, fmt.Errorf("plan SID is required")
	}
	set := make(map[contentvo.Zone]struct{}, len(zones))
	for _, z := range zones {
		if !z.IsValid() {
			return nil, fmt.Errorf("%w: %q", contentvo.ErrUnknownZone, z)
		}
		set[z] = struct{}{}
	}
	return &Plan{id: planID, sid: sid, name: name, zones: set}, nil
}

func (p *Plan) ID() uint     { return p.id }
func (p *Plan) SID() string  { return p.sid }
func (p *Plan) Name() string { return p.name }

// Zones returns the entitled zones in canonical order.
func (p *Plan) Zones() []contentvo.Zone {
	out := make([]contentvo.Zone, 0, len(p.zones))
	for _, z := range contentvo.AllZones() {
		if _, ok := p.zones[z]; ok {
			out = append(out, z)
		}
	}
	return out
}

// Covers reports whether the plan unlocks every zone in required.
func (p *Plan) Covers(required []contentvo.Zone) bool {
	for _, z := range required {
		if _, ok := p.zones[z]; !ok {
			return false
		}
	}
	return true
}
