package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/folio-inc/folio/internal/domain/content"
	contentvo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	vo "github.com/folio-inc/folio/internal/domain/subscription/valueobjects"
	"github.com/folio-inc/folio/internal/infrastructure/persistence/models"
)

var ts = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

func TestContentItemMapper_ToModelAndBack(t *testing.T) {
	m := NewContentItemMapper()
	preview := 150
	release := ts.Add(72 * time.Hour)
	item, err := content.ReconstructContentItem(5, "ct_abc", "Title", "Body", true, &release, nil,
		[]contentvo.ZoneRequirement{{Zone: contentvo.ZoneResearch, RequiresSubscription: true}},
		&preview, 3, ts, ts)
	require.NoError(t, err)

	model, err := m.ToModel(item)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"zone":"research","requires_subscription":true}]`, string(model.Zones))

	back, err := m.ToEntity(model)
	require.NoError(t, err)
	assert.Equal(t, item.SID(), back.SID())
	assert.Equal(t, item.RequiredZones(), back.RequiredZones())
	assert.Equal(t, release, *back.ReleaseDate())
	assert.Equal(t, 150, back.PreviewLength(300))
}

func TestContentItemMapper_RejectsUnknownZone(t *testing.T) {
	m := NewContentItemMapper()
	model := &models.ContentItemModel{ID: 1, SID: "ct_x", Title: "T", Zones: datatypes.JSON(`[{"zone":"gossip"}]`)}

	_, err := m.ToEntity(model)
	assert.ErrorIs(t, err, contentvo.ErrUnknownZone)
}

func TestContentItemMapper_ToEntities_ReportsBadRowsBySID(t *testing.T) {
	m := NewContentItemMapper()
	rows := []models.ContentItemModel{
		{ID: 1, SID: "ct_ok1", Title: "A", Zones: datatypes.JSON(`[{"zone":"news"}]`)},
		{ID: 2, SID: "ct_bad", Title: "B", Zones: datatypes.JSON(`[{"zone":"sports"}]`)},
		{ID: 3, SID: "ct_ok2", Title: "C", Zones: datatypes.JSON(`[]`)},
	}

	items, failed := m.ToEntities(rows)
	require.Len(t, items, 2)
	assert.Equal(t, "ct_ok1", items[0].SID())
	assert.Equal(t, "ct_ok2", items[1].SID())
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed["ct_bad"], contentvo.ErrUnknownZone)

	_, failed = m.ToEntities(rows[:1])
	assert.Nil(t, failed)
}

func TestSubscriptionMapper_ToEntity(t *testing.T) {
	m := NewSubscriptionMapper()
	model := &models.SubscriptionModel{
		ID: 1, SID: "sub_1", ViewerID: "vw_1", PlanID: 2,
		Plan:               models.PlanModel{ID: 2, SID: "pl_pro", Name: "Pro", Zones: datatypes.JSON(`["analysis","news"]`)},
		Status:             "active",
		CurrentPeriodStart: ts,
		CurrentPeriodEnd:   ts.AddDate(0, 1, 0),
	}

	sub, err := m.ToEntity(model)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.True(t, sub.Entitles([]contentvo.Zone{contentvo.ZoneAnalysis}))
	assert.True(t, sub.IsActive(ts.AddDate(0, 0, 10)))

	model.Plan = models.PlanModel{}
	_, err = m.ToEntity(model)
	assert.Error(t, err)
}
