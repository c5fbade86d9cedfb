package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	accessServices "github.com/folio-inc/folio/internal/application/access/services"
	"github.com/folio-inc/folio/internal/domain/access"
	"github.com/folio-inc/folio/internal/infrastructure/auth"
	"github.com/folio-inc/folio/internal/infrastructure/cache"
	"github.com/folio-inc/folio/internal/infrastructure/config"
	"github.com/folio-inc/folio/internal/infrastructure/permission"
	"github.com/folio-inc/folio/internal/infrastructure/scheduler"
	"github.com/folio-inc/folio/internal/interfaces/http/middleware"
	"github.com/folio-inc/folio/internal/shared/biztime"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// Container holds infrastructure components, repositories, use cases,
// handlers and the release scheduler, wired together once per process.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client
	clock  biztime.Clock

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware

	// Access infrastructure
	jwtSvc           *auth.JWTService
	enforcer         *permission.Enforcer
	entitlementCache cache.EntitlementCache
	interestStore    *cache.ZoneInterestStore
	resolver         *accessServices.SubscriptionResolver
	evaluator        *access.Evaluator

	// Background services
	schedulerManager *scheduler.SchedulerManager
}

// NewContainer wires every component. redisClient may be nil when the
// entitlement cache runs in-process; zone interest tracking is then off.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
		clock:  biztime.SystemClock{},
	}

	// Section 1: Infrastructure - caches, resolver, auth, repositories
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Use cases
	c.initUseCases()

	// Section 3: Handlers
	c.initHandlers()

	// Section 4: Release sweep job
	if err := c.initScheduler(); err != nil {
		return nil, err
	}

	return c, nil
}
