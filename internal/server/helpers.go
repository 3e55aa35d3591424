package server

import (
	"errors"

	"snapfeed/internal/models"
	"snapfeed/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		label := "ID"
		if param == "commentId" {
			label = "comment ID"
		}
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parsePage extracts the page query parameter, defaulting to the first page.
func parsePage(c *fiber.Ctx) int {
	return pagination.Normalize(c.QueryInt("page", 1))
}

// respondServiceError maps an application error code to its HTTP status and
// writes the JSON error response. Unknown or wrapped errors become a 500.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			status = fiber.StatusNotFound
		case models.CodeConflict:
			status = fiber.StatusUnprocessableEntity
		case models.CodeUnauthorized:
			status = fiber.StatusUnauthorized
		case models.CodeValidation:
			status = fiber.StatusBadRequest
		case models.CodeInvalidCategory:
			status = fiber.StatusNotAcceptable
		}
	}
	return models.RespondWithError(c, status, err)
}

// pageEnvelope is the shape of every paginated list response.
func pageEnvelope(items any, meta pagination.Meta) fiber.Map {
	return fiber.Map{
		"items":      items,
		"pagination": meta,
	}
}
