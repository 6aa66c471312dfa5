package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/bilgisen/contentfeed/internal/logger"
)

// CacheStatusKey is the fiber local under which handlers record "hit" or "miss".
const CacheStatusKey = "cache_status"

// LoggerConfig defines the config for the logger middleware
type LoggerConfig struct {
	// Skip defines a function to skip middleware.
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Logger is the zerolog logger instance to use.
	// If not provided, the default logger will be used.
	Logger *zerolog.Logger

	// Fields to include in the logs
	Fields []string
}

// DefaultLoggerConfig is the default config
var DefaultLoggerConfig = LoggerConfig{
	Next:   nil,
	Fields: []string{"latency", "status", "method", "path", "ip", "request_id", "cache"},
}

// NewLogger creates a new middleware handler. It also stores a logger tagged
// with the request id on the request context, so it must run after requestid.
func NewLogger(config ...LoggerConfig) fiber.Handler {
	// Set default config
	cfg := DefaultLoggerConfig

	// Override config if provided
	if len(config) > 0 {
		cfg = config[0]

		if len(cfg.Fields) == 0 {
			cfg.Fields = DefaultLoggerConfig.Fields
		}
	}

	// Create a set of fields for quick lookup
	fields := make(map[string]bool)
	for _, f := range cfg.Fields {
		fields[f] = true
	}

	return func(c *fiber.Ctx) error {
		// Skip middleware if Next returns true
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		requestID := c.GetRespHeader(fiber.HeaderXRequestID)
		c.SetUserContext(logger.WithRequestID(c.UserContext(), requestID))

		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		log := cfg.Logger
		if log == nil {
			log = logger.Get()
		}

		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not rendered the response yet.
			status = StatusFor(err)
		}

		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error()
		}

		if fields["method"] {
			event = event.Str("method", c.Method())
		}
		if fields["path"] {
			event = event.Str("path", c.Path())
		}
		if fields["status"] {
			event = event.Int("status", status)
		}
		if fields["ip"] {
			event = event.Str("ip", c.IP())
		}
		if fields["user_agent"] {
			event = event.Str("user_agent", c.Get(fiber.HeaderUserAgent))
		}
		if fields["request_id"] {
			event = event.Str("request_id", requestID)
		}
		if fields["cache"] {
			if status, ok := c.Locals(CacheStatusKey).(string); ok {
				event = event.Str("cache", status)
			}
		}
		if fields["latency"] {
			event = event.Dur("latency", latency)
		}

		if err != nil {
			event = event.Err(err)
		}

		event.Msg("request")

		return err
	}
}
