package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davidkuria/resto-api/internal/config"
	"github.com/davidkuria/resto-api/internal/presentation/http/handler"
	"github.com/davidkuria/resto-api/internal/presentation/http/middleware"
	"github.com/davidkuria/resto-api/pkg/metrics"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Bill *handler.BillHandler
	Menu *handler.MenuHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg     *config.Config
	Metrics *metrics.ServerMetrics
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	if deps.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(deps.Metrics))
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Uploaded menu item images
	router.Static("/uploads", deps.Cfg.Storage.Path)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		bills := v1.Group("/bills")
		{
			bills.POST("", h.Bill.Create)
			bills.GET("", h.Bill.List)
			bills.GET("/:id", h.Bill.Get)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/daily", h.Bill.Report)
		}

		menu := v1.Group("/menu")
		{
			menu.GET("", h.Menu.List)
			menu.POST("", h.Menu.Create)
			menu.GET("/:id", h.Menu.Get)
			menu.PUT("/:id", h.Menu.Update)
			menu.DELETE("/:id", h.Menu.Delete)
			menu.POST("/:id/image", h.Menu.UploadImage)
		}
	}

	return router
}
