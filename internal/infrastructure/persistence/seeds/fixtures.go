// Package seeds loads demo and test fixtures from YAML into the database.
package seeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	contentvo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	subvo "github.com/folio-inc/folio/internal/domain/subscription/valueobjects"
	"github.com/folio-inc/folio/internal/infrastructure/persistence/models"
	"github.com/folio-inc/folio/internal/shared/db"
	"github.com/folio-inc/folio/internal/shared/id"
)

type PlanFixture struct {
	SID   string   `yaml:"sid"`
	Name  string   `yaml:"name"`
	Zones []string `yaml:"zones"`
}

type SubscriptionFixture struct {
	SID               string    `yaml:"sid"`
	ViewerID          string    `yaml:"viewer_id"`
	Plan              string    `yaml:"plan"`
	Status            string    `yaml:"status"`
	PeriodStart       time.Time `yaml:"period_start"`
	PeriodEnd         time.Time `yaml:"period_end"`
	CancelAtPeriodEnd bool      `yaml:"cancel_at_period_end"`
}

type ContentFixture struct {
	SID           string                      `yaml:"sid"`
	Title         string                      `yaml:"title"`
	Body          string                      `yaml:"body"`
	IsPremium     bool                        `yaml:"is_premium"`
	ReleaseDate   *time.Time                  `yaml:"release_date"`
	Zones         []contentvo.ZoneRequirement `yaml:"zones"`
	PreviewLength *int                        `yaml:"preview_length"`
}

// Fixture is the top level document.
type Fixture struct {
	Plans         []PlanFixture         `yaml:"plans"`
	Subscriptions []SubscriptionFixture `yaml:"subscriptions"`
	Content       []ContentFixture      `yaml:"content"`
}

// Parse decodes and validates a fixture document. Unknown keys are errors.
func Parse(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// ParseFile reads a fixture from path.
func ParseFile(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

func (f *Fixture) Validate() error {
	plans := make(map[string]bool, len(f.Plans))
	for i, p := range f.Plans {
		if p.SID == "" || p.Name == "" {
			return fmt.Errorf("plans[%d]: sid and name are required", i)
		}
		if _, err := contentvo.ParseZones(p.Zones); err != nil {
			return fmt.Errorf("plans[%d]: %w", i, err)
		}
		plans[p.SID] = true
	}
	for i, s := range f.Subscriptions {
		if s.SID == "" || s.ViewerID == "" {
			return fmt.Errorf("subscriptions[%d]: sid and viewer_id are required", i)
		}
		if !plans[s.Plan] {
			return fmt.Errorf("subscriptions[%d]: unknown plan %q", i, s.Plan)
		}
		if !subvo.Status(s.Status).IsValid() {
			return fmt.Errorf("subscriptions[%d]: invalid status %q", i, s.Status)
		}
		if s.PeriodEnd.Before(s.PeriodStart) {
			return fmt.Errorf("subscriptions[%d]: period_end precedes period_start", i)
		}
	}
	for i, c := range f.Content {
		if c.Title == "" {
			return fmt.Errorf("content[%d]: title is required", i)
		}
		for _, z := range c.Zones {
			if err := z.Validate(); err != nil {
				return fmt.Errorf("content[%d]: %w", i, err)
			}
		}
		if c.PreviewLength != nil && *c.PreviewLength <= 0 {
			return fmt.Errorf("content[%d]: preview_length must be positive", i)
		}
	}
	return nil
}

// Result counts the rows created by Apply. Rows whose SID already exists
// are left untouched.
type Result struct {
	Plans         int
	Subscriptions int
	Content       int
}

// Apply inserts the fixture in one transaction. When ctx already carries a
// transaction the rows join it.
func Apply(ctx context.Context, gdb *gorm.DB, f *Fixture) (*Result, error) {
	result := &Result{}
	err := db.NewTransactionManager(gdb).RunInTransaction(ctx, func(ctx context.Context) error {
		tx := db.GetTxFromContext(ctx, gdb)
		planIDs := make(map[string]uint, len(f.Plans))
		for _, p := range f.Plans {
			zones, err := json.Marshal(p.Zones)
			if err != nil {
				return err
			}
			model := models.PlanModel{SID: p.SID, Name: p.Name, Zones: datatypes.JSON(zones)}
			created, err := insertMissing(tx, p.SID, &model)
			if err != nil {
				return fmt.Errorf("failed to seed plan %s: %w", p.SID, err)
			}
			if created {
				result.Plans++
			} else if err := tx.Where("sid = ?", p.SID).First(&model).Error; err != nil {
				return fmt.Errorf("failed to load plan %s: %w", p.SID, err)
			}
			planIDs[p.SID] = model.ID
		}

		for _, s := range f.Subscriptions {
			model := models.SubscriptionModel{
				SID:                s.SID,
				ViewerID:           s.ViewerID,
				PlanID:             planIDs[s.Plan],
				Status:             s.Status,
				CurrentPeriodStart: s.PeriodStart.UTC(),
				CurrentPeriodEnd:   s.PeriodEnd.UTC(),
				CancelAtPeriodEnd:  s.CancelAtPeriodEnd,
			}
			created, err := insertMissing(tx.Omit("Plan"), s.SID, &model)
			if err != nil {
				return fmt.Errorf("failed to seed subscription %s: %w", s.SID, err)
			}
			if created {
				result.Subscriptions++
			}
		}

		for _, c := range f.Content {
			sid := c.SID
			if sid == "" {
				generated, err := id.NewContentID()
				if err != nil {
					return err
				}
				sid = generated
			}
			zones, err := json.Marshal(c.Zones)
			if err != nil {
				return err
			}
			var releaseDate *time.Time
			if c.ReleaseDate != nil {
				utc := c.ReleaseDate.UTC()
				releaseDate = &utc
			}
			model := models.ContentItemModel{
				SID:           sid,
				Title:         c.Title,
				Body:          c.Body,
				IsPremium:     c.IsPremium,
				ReleaseDate:   releaseDate,
				Zones:         datatypes.JSON(zones),
				PreviewLength: c.PreviewLength,
			}
			created, err := insertMissing(tx, sid, &model)
			if err != nil {
				return fmt.Errorf("failed to seed content %s: %w", sid, err)
			}
			if created {
				result.Content++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// insertMissing creates row unless a row with the same sid exists.
func insertMissing[T any](tx *gorm.DB, sid string, row *T) (bool, error) {
	var count int64
	if err := tx.Session(&gorm.Session{}).Model(new(T)).Where("sid = ?", sid).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := tx.Create(row).Error; err != nil {
		return false, err
	}
	return true, nil
}
