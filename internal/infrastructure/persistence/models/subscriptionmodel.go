package models

import (
	"time"

	"github.com/folio-inc/folio/internal/shared/constants"
)

// SubscriptionModel mirrors the billing system's subscription rows. This
// service only reads it.
type SubscriptionModel struct {
	ID                 uint      `gorm:"primarykey"`
	SID                string    `gorm:"column:sid;uniqueIndex;not null;size:50"`
	ViewerID           string    `gorm:"not null;size:50;index:idx_viewer_subscription,priority:1"`
	PlanID             uint      `gorm:"not null;index"`
	Plan               PlanModel `gorm:"foreignKey:PlanID"`
	Status             string    `gorm:"not null;size:20"`
	CurrentPeriodStart time.Time `gorm:"not null"`
	CurrentPeriodEnd   time.Time `gorm:"not null;index:idx_viewer_subscription,priority:2"`
	CancelAtPeriodEnd  bool      `gorm:"not null;default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
