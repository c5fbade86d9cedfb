package mappers

import (
	"encoding/json"
	"fmt"

	contentvo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	"github.com/folio-inc/folio/internal/domain/subscription"
	vo "github.com/folio-inc/folio/internal/domain/subscription/valueobjects"
	"github.com/folio-inc/folio/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	PlanToEntity(model *models.PlanModel) (*subscription.Plan, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) PlanToEntity(model *models.PlanModel) (*subscription.Plan, error) {
	var tags []string
	if len(model.Zones) > 0 {
		if err := json.Unmarshal(model.Zones, &tags); err != nil {
			return nil, fmt.Errorf("failed to decode zones of plan %s: %w", model.SID, err)
		}
	}
	zones, err := contentvo.ParseZones(tags)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", model.SID, err)
	}
	return subscription.NewPlan(model.ID, model.SID, model.Name, zones)
}

// ToEntity expects model.Plan to be preloaded.
func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}
	if model.Plan.ID == 0 {
		return nil, fmt.Errorf("subscription %s: %w", model.SID, subscription.ErrPlanRequired)
	}

	plan, err := m.PlanToEntity(&model.Plan)
	if err != nil {
		return nil, err
	}

	return subscription.ReconstructSubscription(
		model.ID,
		model.SID,
		model.ViewerID,
		plan,
		vo.Status(model.Status),
		model.CurrentPeriodStart,
		model.CurrentPeriodEnd,
		model.CancelAtPeriodEnd,
	)
}
