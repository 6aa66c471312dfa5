package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bilgisen/contentfeed/internal/config"
	"github.com/bilgisen/contentfeed/internal/gallery"
	"github.com/bilgisen/contentfeed/internal/middleware"
	"github.com/bilgisen/contentfeed/internal/models"
)

// HealthPath is polled by load balancers and kept out of the request log.
const HealthPath = "/api/v1/health"

// NewApp creates the fiber app with global middleware and every route.
func NewApp(cfg *config.Config, handlers *Handlers, gatherer prometheus.Gatherer) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.HTTPTimeout,
		WriteTimeout:          cfg.HTTPTimeout,
		IdleTimeout:           120 * time.Second,
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.NewLogger(middleware.LoggerConfig{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == HealthPath
		},
	}))

	SetupRoutes(app, handlers, cfg, gatherer)
	return app
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, handlers *Handlers, cfg *config.Config, gatherer prometheus.Gatherer) {
	// Metrics endpoint (admin only)
	app.Get("/metrics",
		middleware.AdminOnly(cfg.AdminAPIKey),
		adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// API group with versioning
	api := app.Group("/api/v1", middleware.RequestTimeout(cfg.RequestTimeout))

	// Health check endpoint
	api.Get("/health", handlers.HealthCheck)

	// Feeds
	api.Get("/home", handlers.GetHome)
	api.Get("/gallery", middleware.ValidateQuery(func() gallery.Query {
		return gallery.Query{Type: models.MediaKindAll, Page: 1, Limit: cfg.GalleryDefaultLimit}
	}), handlers.GetGallery)

	// Detail pages
	api.Get("/organizations/:id", handlers.GetOrganization)
	api.Get("/testimonies/:id", handlers.GetTestimony)
	api.Get("/stories/:id", handlers.GetStory)

	// Static pages
	api.Get("/pages/:name", handlers.GetPage)

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
