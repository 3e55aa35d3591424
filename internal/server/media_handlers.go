package server

import (
	"errors"
	"mime"
	"path/filepath"

	"snapfeed/internal/models"
	"snapfeed/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// GetMedia handles GET /api/media/:key, streaming the stored blob to the
// client. The content type is inferred from the key's extension.
func (s *Server) GetMedia(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Media key is required"))
	}

	r, err := s.blobs.Open(c.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Media", 0))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		c.Set(fiber.HeaderContentType, ct)
	}
	// fasthttp closes the reader once the stream is drained
	return c.SendStream(r)
}
