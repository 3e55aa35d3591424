package server

import (
	"strconv"

	"snapfeed/internal/models"
	"snapfeed/internal/repository"
	"snapfeed/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts. Supports page, title, category, and
// creator query parameters; filters combine with AND.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	filter := repository.PostFilter{
		Title: c.Query("title"),
	}
	if raw := c.Query("category"); raw != "" {
		category := models.Category(raw)
		if !category.Valid() {
			return models.RespondWithError(c, fiber.StatusNotAcceptable,
				models.NewInvalidCategoryError(raw))
		}
		filter.Category = category
	}
	if raw := c.Query("creator"); raw != "" {
		creatorID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid creator ID"))
		}
		filter.CreatorID = uint(creatorID)
	}

	posts, meta, err := s.postService.ListPosts(c.Context(), filter, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(pageEnvelope(posts, meta))
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts. Multipart form data with a required
// image file.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	in := service.CreatePostInput{
		CreatorID:   userID,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
	}

	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("An image file is required"))
	}
	f, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded image"))
	}
	defer f.Close()
	in.Image = f
	in.ImageName = file.Filename

	post, err := s.postService.CreatePost(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PATCH /api/posts/:id. Only the caller's own posts.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:      userID,
		PostID:      id,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id. The post's comments and likes go
// with it.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), userID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// LikePost handles POST /api/posts/:id/like. The body carries the desired
// state, so repeating a request is harmless.
func (s *Server) LikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Like bool `json:"like"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.SetLike(c.Context(), userID, id, req.Like)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}
