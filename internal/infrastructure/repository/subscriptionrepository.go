package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-inc/folio/internal/domain/subscription"
	"github.com/folio-inc/folio/internal/infrastructure/persistence/mappers"
	"github.com/folio-inc/folio/internal/infrastructure/persistence/models"
	"github.com/folio-inc/folio/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

// GetCurrentByViewer picks the subscription whose period ends last, which is
// the one billing considers current.
func (r *SubscriptionRepositoryImpl) GetCurrentByViewer(ctx context.Context, viewerID string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("viewer_id = ?", viewerID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "current_period_end"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by viewer", "viewer_id", viewerID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map subscription", "viewer_id", viewerID, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}
	return entity, nil
}
