package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/folio-inc/folio/internal/shared/constants"
)

// PlanModel is the billing plan as replicated from the billing system.
type PlanModel struct {
	ID        uint           `gorm:"primarykey"`
	SID       string         `gorm:"column:sid;uniqueIndex;not null;size:50"`
	Name      string         `gorm:"not null;size:100"`
	Zones     datatypes.JSON `gorm:"comment:entitled zone tags"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PlanModel) TableName() string {
	return constants.TablePlans
}
