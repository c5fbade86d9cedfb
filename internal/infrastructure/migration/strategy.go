package migration

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/folio-inc/folio/internal/infrastructure/persistence/models"
	"github.com/folio-inc/folio/internal/shared/config"
	"github.com/folio-inc/folio/internal/shared/logger"
)

//go:embed scripts
var scripts embed.FS

// Strategy defines the interface for different migration strategies
type Strategy interface {
	Migrate(ctx context.Context, db *gorm.DB) error
	GetName() string
}

// GooseStrategy applies the versioned SQL scripts for one dialect.
type GooseStrategy struct {
	dialect string
	logger  logger.Interface
}

// NewGooseStrategy picks the script set matching driver.
func NewGooseStrategy(driver string, log logger.Interface) (*GooseStrategy, error) {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return nil, err
	}
	return &GooseStrategy{
		dialect: dialect,
		logger:  log.With("component", "migration.goose"),
	}, nil
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case config.DriverMySQL, "":
		return "mysql", nil
	case config.DriverPostgres:
		return "postgres", nil
	case config.DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("no migration scripts for driver %q", driver)
	}
}

func (s *GooseStrategy) prepare() error {
	sub, err := fs.Sub(scripts, "scripts")
	if err != nil {
		return fmt.Errorf("failed to open embedded scripts: %w", err)
	}
	goose.SetBaseFS(sub)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(s.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

func (s *GooseStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	currentVersion, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		s.logger.Errorw("failed to get current migration version", "error", err)
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	s.logger.Infow("starting goose migration", "dialect", s.dialect, "current_version", currentVersion)

	if err := goose.UpContext(ctx, sqlDB, s.dialect); err != nil {
		s.logger.Errorw("goose migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get final migration version: %w", err)
	}
	s.logger.Infow("goose migration completed", "from_version", currentVersion, "to_version", finalVersion)
	return nil
}

// MigrateDown rolls back steps migrations.
func (s *GooseStrategy) MigrateDown(ctx context.Context, db *gorm.DB, steps int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}
	for i := 0; i < steps; i++ {
		if err := goose.DownContext(ctx, sqlDB, s.dialect); err != nil {
			return fmt.Errorf("failed to roll back migration %d of %d: %w", i+1, steps, err)
		}
	}
	return nil
}

func (s *GooseStrategy) GetVersion(ctx context.Context, db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, sqlDB)
}

// Status prints the per-script state through goose's standard output.
func (s *GooseStrategy) Status(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}
	goose.SetLogger(log.New(os.Stdout, "", 0))
	return goose.StatusContext(ctx, sqlDB, s.dialect)
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

// AutoMigrateStrategy derives the schema from the gorm models. Development
// and tests only.
type AutoMigrateStrategy struct {
	logger logger.Interface
}

func NewAutoMigrateStrategy(log logger.Interface) *AutoMigrateStrategy {
	return &AutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

func (s *AutoMigrateStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	s.logger.Infow("starting gorm auto migration", "models", len(models.All()))
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}

func (s *AutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// NewStrategy returns the auto migrator for development and goose otherwise.
func NewStrategy(env, driver string, log logger.Interface) (Strategy, error) {
	if env == "development" {
		return NewAutoMigrateStrategy(log), nil
	}
	return NewGooseStrategy(driver, log)
}
