package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/folio-inc/folio/internal/shared/constants"
)

// ContentItemModel stores the gating attributes of a content record.
type ContentItemModel struct {
	ID            uint       `gorm:"primarykey"`
	SID           string     `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: ct_xxx"`
	Title         string     `gorm:"not null;size:255"`
	Body          string     `gorm:"type:text"`
	IsPremium     bool       `gorm:"not null;default:false;index:idx_content_release,priority:1"`
	ReleaseDate   *time.Time `gorm:"index:idx_content_release,priority:2"`
	ReleasedAt    *time.Time
	Zones         datatypes.JSON
	PreviewLength *int
	Version       int `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (ContentItemModel) TableName() string {
	return constants.TableContentItems
}

func (m *ContentItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}
