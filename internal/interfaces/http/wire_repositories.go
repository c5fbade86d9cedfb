package http

import (
	"gorm.io/gorm"

	"github.com/folio-inc/folio/internal/domain/content"
	"github.com/folio-inc/folio/internal/domain/subscription"
	"github.com/folio-inc/folio/internal/infrastructure/repository"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	contentRepo      content.Repository
	subscriptionRepo subscription.Repository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		contentRepo:      repository.NewContentItemRepository(db, log),
		subscriptionRepo: repository.NewSubscriptionRepository(db, log),
	}
}
