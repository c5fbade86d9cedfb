package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/folio-inc/folio/internal/domain/content"
	vo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	"github.com/folio-inc/folio/internal/infrastructure/persistence/models"
)

// ContentItemMapper converts between ContentItem and its table row.
type ContentItemMapper interface {
	ToModel(item *content.ContentItem) (*models.ContentItemModel, error)
	ToEntity(model *models.ContentItemModel) (*content.ContentItem, error)
	// ToEntities maps rows one by one. Rows that fail to decode are left out
	// of the result and reported by SID.
	ToEntities(models []models.ContentItemModel) ([]*content.ContentItem, map[string]error)
}

type ContentItemMapperImpl struct{}

func NewContentItemMapper() ContentItemMapper {
	return &ContentItemMapperImpl{}
}

func (m *ContentItemMapperImpl) ToModel(item *content.ContentItem) (*models.ContentItemModel, error) {
	zones, err := json.Marshal(item.Zones())
	if err != nil {
		return nil, fmt.Errorf("failed to encode zones: %w", err)
	}
	return &models.ContentItemModel{
		ID:            item.ID(),
		SID:           item.SID(),
		Title:         item.Title(),
		Body:          item.Body(),
		IsPremium:     item.IsPremium(),
		ReleaseDate:   item.ReleaseDate(),
		ReleasedAt:    item.ReleasedAt(),
		Zones:         datatypes.JSON(zones),
		PreviewLength: item.CustomPreviewLength(),
		Version:       item.Version(),
		CreatedAt:     item.CreatedAt(),
		UpdatedAt:     item.UpdatedAt(),
	}, nil
}

// ToEntity rejects rows carrying zone tags outside the closed set.
func (m *ContentItemMapperImpl) ToEntity(model *models.ContentItemModel) (*content.ContentItem, error) {
	if model == nil {
		return nil, nil
	}

	var zones []vo.ZoneRequirement
	if len(model.Zones) > 0 {
		if err := json.Unmarshal(model.Zones, &zones); err != nil {
			return nil, fmt.Errorf("failed to decode zones of %s: %w", model.SID, err)
		}
	}

	return content.ReconstructContentItem(
		model.ID,
		model.SID,
		model.Title,
		model.Body,
		model.IsPremium,
		model.ReleaseDate,
		model.ReleasedAt,
		zones,
		model.PreviewLength,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ContentItemMapperImpl) ToEntities(rows []models.ContentItemModel) ([]*content.ContentItem, map[string]error) {
	items := make([]*content.ContentItem, 0, len(rows))
	var failed map[string]error
	for i := range rows {
		item, err := m.ToEntity(&rows[i])
		if err != nil {
			if failed == nil {
				failed = make(map[string]error)
			}
			failed[rows[i].SID] = err
			continue
		}
		items = append(items, item)
	}
	return items, failed
}
