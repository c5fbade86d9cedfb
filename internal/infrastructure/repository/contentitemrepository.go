package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-inc/folio/internal/domain/content"
	vo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	"github.com/folio-inc/folio/internal/infrastructure/persistence/mappers"
	"github.com/folio-inc/folio/internal/infrastructure/persistence/models"
	"github.com/folio-inc/folio/internal/shared/constants"
	"github.com/folio-inc/folio/internal/shared/db"
	"github.com/folio-inc/folio/internal/shared/logger"
)

type ContentItemRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ContentItemMapper
	logger logger.Interface
}

func NewContentItemRepository(db *gorm.DB, logger logger.Interface) content.Repository {
	return &ContentItemRepositoryImpl{
		db:     db,
		mapper: mappers.NewContentItemMapper(),
		logger: logger,
	}
}

func (r *ContentItemRepositoryImpl) Create(ctx context.Context, item *content.ContentItem) error {
	model, err := r.mapper.ToModel(item)
	if err != nil {
		r.logger.Errorw("failed to map content item to model", "sid", item.SID(), "error", err)
		return fmt.Errorf("failed to map content item: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create content item", "sid", item.SID(), "error", err)
		return fmt.Errorf("failed to create content item: %w", err)
	}

	if err := item.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set content item ID: %w", err)
	}
	return nil
}

func (r *ContentItemRepositoryImpl) GetBySID(ctx context.Context, sid string) (*content.ContentItem, error) {
	var model models.ContentItemModel
	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get content item by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get content item: %w", err)
	}

	item, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map content item", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to map content item: %w", err)
	}
	return item, nil
}

func (r *ContentItemRepositoryImpl) GetBySIDs(ctx context.Context, sids []string) (*content.ItemBatch, error) {
	if len(sids) == 0 {
		return &content.ItemBatch{}, nil
	}

	var rows []models.ContentItemModel
	if err := db.GetTxFromContext(ctx, r.db).Where("sid IN ?", sids).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to get content items by SIDs", "count", len(sids), "error", err)
		return nil, fmt.Errorf("failed to get content items: %w", err)
	}

	items, failed := r.toEntities(rows)
	batch := &content.ItemBatch{Items: items}
	if len(failed) > 0 {
		batch.Undecodable = make(map[string]error, len(failed))
		for sid, err := range failed {
			batch.Undecodable[sid] = fmt.Errorf("%w: %v", content.ErrUndecodable, err)
		}
	}
	return batch, nil
}

// dueReleaseRow is the projection read by the release sweep.
type dueReleaseRow struct {
	ID          uint
	SID         string `gorm:"column:sid"`
	ReleaseDate time.Time
}

func (r *ContentItemRepositoryImpl) FindDueForRelease(ctx context.Context, now time.Time, afterID uint, limit int) ([]content.DueRelease, error) {
	var rows []dueReleaseRow
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ContentItemModel{}).
		Select("id", "sid", "release_date").
		Where("is_premium = ? AND release_date IS NOT NULL AND release_date <= ?", true, now).
		Where("id > ?", afterID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to find content due for release", "after_id", afterID, "error", err)
		return nil, fmt.Errorf("failed to find content due for release: %w", err)
	}

	due := make([]content.DueRelease, 0, len(rows))
	for _, row := range rows {
		due = append(due, content.DueRelease{ID: row.ID, SID: row.SID, ReleaseDate: row.ReleaseDate.UTC()})
	}
	return due, nil
}

func (r *ContentItemRepositoryImpl) ListScheduled(ctx context.Context, now time.Time, limit int) ([]*content.ContentItem, error) {
	var rows []models.ContentItemModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("is_premium = ? AND release_date > ?", true, now).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "release_date"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list scheduled content", "error", err)
		return nil, fmt.Errorf("failed to list scheduled content: %w", err)
	}
	items, _ := r.toEntities(rows)
	return items, nil
}

func (r *ContentItemRepositoryImpl) ListGatedByZones(ctx context.Context, now time.Time, zones []vo.Zone, limit int) ([]*content.ContentItem, error) {
	if len(zones) == 0 || limit <= 0 {
		return nil, nil
	}

	tx := db.GetTxFromContext(ctx, r.db)
	var rows []models.ContentItemModel
	err := tx.
		Where("is_premium = ? AND (release_date IS NULL OR release_date > ?)", true, now).
		Where(zoneFilter(tx.Dialector.Name(), zones)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list gated content", "error", err)
		return nil, fmt.Errorf("failed to list gated content: %w", err)
	}
	items, _ := r.toEntities(rows)
	return items, nil
}

// zoneFilter matches rows whose zones column lists any of zones.
func zoneFilter(dialect string, zones []vo.Zone) clause.Expr {
	names := make([]string, 0, len(zones))
	for _, z := range zones {
		names = append(names, z.String())
	}

	var (
		conds []string
		vars  []interface{}
	)
	switch dialect {
	case "mysql":
		for _, name := range names {
			conds = append(conds, "JSON_CONTAINS(zones, JSON_OBJECT('zone', ?))")
			vars = append(vars, name)
		}
	case "postgres":
		for _, name := range names {
			conds = append(conds, "zones @> ?::jsonb")
			vars = append(vars, fmt.Sprintf(`[{"zone":%q}]`, name))
		}
	default:
		return clause.Expr{
			SQL:  "EXISTS (SELECT 1 FROM json_each(" + constants.TableContentItems + ".zones) AS z WHERE json_extract(z.value, '$.zone') IN ?)",
			Vars: []interface{}{names},
		}
	}
	return clause.Expr{SQL: "(" + strings.Join(conds, " OR ") + ")", Vars: vars}
}

func (r *ContentItemRepositoryImpl) UpdateReleaseDate(ctx context.Context, sid string, releaseDate, now time.Time) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ContentItemModel{}).
		Where("sid = ? AND is_premium = ?", sid, true).
		Where("(release_date IS NULL OR release_date > ?)", now).
		Updates(map[string]interface{}{
			"release_date": releaseDate.UTC(),
			"version":      gorm.Expr("version + 1"),
			"updated_at":   now,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update release date", "sid", sid, "error", result.Error)
		return false, fmt.Errorf("failed to update release date: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ContentItemRepositoryImpl) MarkReleased(ctx context.Context, itemID uint, now time.Time) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ContentItemModel{}).
		Where("id = ? AND is_premium = ?", itemID, true).
		Where("release_date IS NOT NULL AND release_date <= ?", now).
		Updates(map[string]interface{}{
			"is_premium":  false,
			"released_at": now,
			"version":     gorm.Expr("version + 1"),
			"updated_at":  now,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to mark content released", "id", itemID, "error", result.Error)
		return false, fmt.Errorf("failed to mark content released: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ContentItemRepositoryImpl) toEntities(rows []models.ContentItemModel) ([]*content.ContentItem, map[string]error) {
	items, failed := r.mapper.ToEntities(rows)
	for sid, err := range failed {
		r.logger.Warnw("skipping undecodable content item", "sid", sid, "error", err)
	}
	return items, failed
}
