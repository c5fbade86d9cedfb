package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentvo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	vo "github.com/folio-inc/folio/internal/domain/subscription/valueobjects"
)

var now = time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)

func newTestPlan(t *testing.T, zones ...contentvo.Zone) *Plan {
	t.Helper()
	p, err := NewPlan(1, "pl_basic", "Basic", zones)
	require.NoError(t, err)
	return p
}

func newTestSubscription(t *testing.T, status vo.Status, periodEnd time.Time, zones ...contentvo.Zone) *Subscription {
	t.Helper()
	s, err := ReconstructSubscription(1, "sub_1", "vw_reader", newTestPlan(t, zones...), status,
		periodEnd.Add(-30*24*time.Hour), periodEnd, false)
	require.NoError(t, err)
	return s
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		name      string
		status    vo.Status
		periodEnd time.Time
		want      bool
	}{
		{"active within period", vo.StatusActive, now.Add(time.Hour), true},
		{"active at exact period end", vo.StatusActive, now, true},
		{"active but period elapsed", vo.StatusActive, now.Add(-time.Second), false},
		{"canceled", vo.StatusCanceled, now.Add(time.Hour), false},
		{"past due", vo.StatusPastDue, now.Add(time.Hour), false},
		{"unpaid", vo.StatusUnpaid, now.Add(time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSubscription(t, tt.status, tt.periodEnd)
			assert.Equal(t, tt.want, s.IsActive(now))
		})
	}
}

func TestEntitles(t *testing.T) {
	s := newTestSubscription(t, vo.StatusActive, now.Add(time.Hour), contentvo.ZoneNews, contentvo.ZoneAnalysis)

	assert.True(t, s.Entitles(nil))
	assert.True(t, s.Entitles([]contentvo.Zone{contentvo.ZoneAnalysis}))
	assert.False(t, s.Entitles([]contentvo.Zone{contentvo.ZoneAnalysis, contentvo.ZoneResearch}))
}

func TestReconstructSubscription_Validation(t *testing.T) {
	plan := newTestPlan(t)

	_, err := ReconstructSubscription(1, "sub_1", "vw_1", plan, "trialing", now, now, false)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ReconstructSubscription(1, "sub_1", "vw_1", nil, vo.StatusActive, now, now, false)
	assert.ErrorIs(t, err, ErrPlanRequired)

	_, err = ReconstructSubscription(1, "sub_1", "vw_1", plan, vo.StatusActive, now, now.Add(-time.Hour), false)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPlan_Zones(t *testing.T) {
	p := newTestPlan(t, contentvo.ZoneSeries, contentvo.ZoneNews)
	assert.Equal(t, []contentvo.Zone{contentvo.ZoneNews, contentvo.ZoneSeries}, p.Zones())

	_, err := NewPlan(2, "pl_x", "X", []contentvo.Zone{"bogus"})
	assert.ErrorIs(t, err, contentvo.ErrUnknownZone)
}
