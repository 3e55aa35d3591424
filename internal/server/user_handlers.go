package server

import (
	"snapfeed/internal/models"
	"snapfeed/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/users/profile/:nickname
func (s *Server) GetProfile(c *fiber.Ctx) error {
	nickname := c.Params("nickname")
	if nickname == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Nickname is required"))
	}

	user, err := s.userService.GetProfile(c.Context(), nickname)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserLikes handles GET /api/users/:nickname/likes
func (s *Server) GetUserLikes(c *fiber.Ctx) error {
	nickname := c.Params("nickname")
	if nickname == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Nickname is required"))
	}

	posts, meta, err := s.userService.ListLikedPosts(c.Context(), nickname, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(pageEnvelope(posts, meta))
}

// UpdateMyAccount handles PATCH /api/users/me. Multipart form data; only the
// fields present in the form are changed.
func (s *Server) UpdateMyAccount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	in := service.UpdateAccountInput{UserID: userID}
	if nickname := c.FormValue("nickname"); nickname != "" {
		in.Nickname = &nickname
	}
	if email := c.FormValue("email"); email != "" {
		in.Email = &email
	}
	if file, err := c.FormFile("image"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Could not read uploaded image"))
		}
		defer f.Close()
		in.Image = f
		in.ImageName = file.Filename
	}

	user, err := s.userService.UpdateAccount(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}
