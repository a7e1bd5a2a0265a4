// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/availability"
	"storefront/internal/bookings"
	"storefront/internal/checkout"
	"storefront/internal/experiences"
	"storefront/internal/navigation"
	"storefront/internal/notifications"
	"storefront/internal/promo"
	"storefront/internal/shared/config"
	"storefront/internal/shared/database"
	"storefront/internal/upstream"
	"storefront/pkg/cache"
)

const serviceName = "storefront-bff"

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	client    *upstream.Client
	publisher *notifications.Publisher
	registry  *checkout.Registry

	experienceService experiences.Service // shared by the catalog and the details view
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher *notifications.Publisher, registry *checkout.Registry) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		client:    upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout),
		publisher: publisher,
		registry:  registry,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Catalog first: the checkout flow reuses its experience service
		r.setupExperienceRoutes(api)

		r.setupCheckoutRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   serviceName,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   serviceName,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "operational",
			"api_version":   r.config.APIVersion,
			"open_sessions": r.registry.Len(),
			"redis":         r.db.GetRedisClient() != nil,
			"timestamp":     time.Now(),
		})
	})
}

// setupExperienceRoutes configures the catalog routes
func (r *Router) setupExperienceRoutes(rg *gin.RouterGroup) {
	var cacheService cache.Service
	if rdb := r.db.GetRedisClient(); rdb != nil {
		cacheService = cache.NewService(rdb)
	}

	experienceRepo := experiences.NewRepository(r.client)
	r.experienceService = experiences.NewService(experienceRepo, cacheService, r.config.Redis.CatalogTTL)
	experienceController := experiences.NewController(r.experienceService)

	experiences.SetupExperienceRoutes(rg, experienceController)
}

// setupCheckoutRoutes configures the details, checkout and confirmation flow
func (r *Router) setupCheckoutRoutes(rg *gin.RouterGroup) {
	navStore := navigation.NewMemoryStore(r.config.Checkout.NavContextTTL)
	if rdb := r.db.GetRedisClient(); rdb != nil {
		navStore = navigation.NewRedisStore(rdb, r.config.Checkout.NavContextTTL)
	}

	checkoutService := checkout.NewService(checkout.Deps{
		Experiences: r.experienceService,
		Promos:      promo.NewRepository(r.client),
		Bookings:    bookings.NewRepository(r.client),
		Navigation:  navStore,
		Publisher:   r.publisher,
		Registry:    r.registry,
		Catalog:     availability.DefaultCatalog(),
		Taxes:       r.config.Checkout.Taxes,
	})
	checkoutController := checkout.NewController(checkoutService, r.config.GetCatalogPath())

	checkout.SetupCheckoutRoutes(rg, checkoutController)
}
