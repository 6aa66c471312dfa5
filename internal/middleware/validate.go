package middleware

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bilgisen/contentfeed/internal/logger"
	"github.com/bilgisen/contentfeed/internal/models"
	"github.com/bilgisen/contentfeed/internal/utils"
)

// QueryKey is the fiber local holding the parsed query of ValidateQuery.
const QueryKey = "queryParams"

// ValidateQuery parses the query string into a fresh T seeded by defaults,
// validates its tags and stores a *T under QueryKey. Failures become a
// *models.ValidationError.
func ValidateQuery[T any](defaults func() T) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := defaults()
		if err := c.QueryParser(&params); err != nil {
			return &models.ValidationError{Fields: map[string]string{"query": "malformed"}}
		}

		if err := utils.ValidateStruct(&params); err != nil {
			return err
		}

		c.Locals(QueryKey, &params)
		return c.Next()
	}
}

// StatusFor maps an error to the HTTP status the error handler renders.
func StatusFor(err error) int {
	var (
		notFound   *models.NotFoundError
		validation *models.ValidationError
		fiberErr   *fiber.Error
	)
	switch {
	case errors.As(err, &notFound), errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &validation):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders errors as JSON with the status of StatusFor.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusFor(err)

	body := fiber.Map{"error": http.StatusText(code)}
	var (
		notFound   *models.NotFoundError
		validation *models.ValidationError
		fiberErr   *fiber.Error
	)
	switch {
	case errors.As(err, &notFound):
		body["error"] = notFound.Error()
	case errors.As(err, &validation):
		body["error"] = "Validation failed"
		body["fields"] = validation.Fields
	case errors.As(err, &fiberErr):
		body["error"] = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		logger.FromContext(c.UserContext()).Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", code).
			Msg("HTTP error")
	}

	return c.Status(code).JSON(body)
}
