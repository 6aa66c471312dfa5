package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bilgisen/contentfeed/internal/cache"
	"github.com/bilgisen/contentfeed/internal/feed"
	"github.com/bilgisen/contentfeed/internal/gallery"
	"github.com/bilgisen/contentfeed/internal/logger"
	"github.com/bilgisen/contentfeed/internal/middleware"
	"github.com/bilgisen/contentfeed/internal/pages"
	"github.com/bilgisen/contentfeed/internal/sources"
)

// Version is reported by the health endpoint.
var Version = "dev"

type Handlers struct {
	home    *feed.Home
	gallery *gallery.Paginator
	pages   *pages.Service
	store   sources.Store
	cache   cache.Store
}

func NewHandlers(home *feed.Home, paginator *gallery.Paginator, pageService *pages.Service, store sources.Store, cacheStore cache.Store) *Handlers {
	return &Handlers{
		home:    home,
		gallery: paginator,
		pages:   pageService,
		store:   store,
		cache:   cacheStore,
	}
}

// sendDocument writes an encoded document and records the cache outcome.
func sendDocument(c *fiber.Ctx, doc json.RawMessage, hit bool, err error) error {
	if err != nil {
		return err
	}
	status := "miss"
	if hit {
		status = "hit"
	}
	c.Locals(middleware.CacheStatusKey, status)
	c.Set("X-Cache", status)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(doc)
}

// GetHome handles GET /api/v1/home
func (h *Handlers) GetHome(c *fiber.Ctx) error {
	doc, hit, err := h.home.Document(c.UserContext())
	return sendDocument(c, doc, hit, err)
}

// GetGallery handles GET /api/v1/gallery
func (h *Handlers) GetGallery(c *fiber.Ctx) error {
	q, ok := c.Locals(middleware.QueryKey).(*gallery.Query)
	if !ok {
		return fiber.NewError(fiber.StatusInternalServerError, "gallery query not parsed")
	}
	doc, hit, err := h.gallery.Document(c.UserContext(), *q)
	return sendDocument(c, doc, hit, err)
}

// GetOrganization handles GET /api/v1/organizations/:id
func (h *Handlers) GetOrganization(c *fiber.Ctx) error {
	doc, hit, err := h.pages.Organization(c.UserContext(), c.Params("id"))
	return sendDocument(c, doc, hit, err)
}

// GetTestimony handles GET /api/v1/testimonies/:id
func (h *Handlers) GetTestimony(c *fiber.Ctx) error {
	doc, hit, err := h.pages.Testimony(c.UserContext(), c.Params("id"))
	return sendDocument(c, doc, hit, err)
}

// GetStory handles GET /api/v1/stories/:id
func (h *Handlers) GetStory(c *fiber.Ctx) error {
	doc, hit, err := h.pages.Story(c.UserContext(), c.Params("id"))
	return sendDocument(c, doc, hit, err)
}

// GetPage handles GET /api/v1/pages/:name
func (h *Handlers) GetPage(c *fiber.Ctx) error {
	doc, hit, err := h.pages.Static(c.UserContext(), c.Params("name"))
	return sendDocument(c, doc, hit, err)
}

// HealthCheck handles GET /api/v1/health. It answers 503 when the record
// store or the cache store cannot be reached.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	checks := fiber.Map{"store": "ok", "cache": "ok"}
	healthy := true

	if err := h.store.Ping(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("Record store unreachable")
		checks["store"] = "unavailable"
		healthy = false
	}
	if pinger, ok := h.cache.(cache.Pinger); ok {
		if err := pinger.Ping(ctx); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Msg("Cache store unreachable")
			checks["cache"] = "unavailable"
			healthy = false
		}
	}

	status := "ok"
	code := fiber.StatusOK
	if !healthy {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"version": Version,
		"checks":  checks,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
