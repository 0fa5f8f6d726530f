package server

import (
	"critiq/internal/middleware"
	"critiq/internal/models"
	"critiq/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListGenres handles GET /api/v1/genres
func (s *Server) ListGenres(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	genres, count, err := s.genreService.List(c.UserContext(), c.Query("search"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return respondList(c, count, genres)
}

// CreateGenre handles POST /api/v1/genres
func (s *Server) CreateGenre(c *fiber.Ctx) error {
	var req service.TaxonomyInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	genre, err := s.genreService.Create(c.UserContext(), middleware.ActorFromCtx(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(genre)
}

// DeleteGenre handles DELETE /api/v1/genres/:slug
func (s *Server) DeleteGenre(c *fiber.Ctx) error {
	if err := s.genreService.Delete(c.UserContext(), middleware.ActorFromCtx(c), c.Params("slug")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCategories handles GET /api/v1/categories
func (s *Server) ListCategories(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	categories, count, err := s.categoryService.List(c.UserContext(), c.Query("search"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return respondList(c, count, categories)
}

// CreateCategory handles POST /api/v1/categories
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req service.TaxonomyInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.Create(c.UserContext(), middleware.ActorFromCtx(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// DeleteCategory handles DELETE /api/v1/categories/:slug
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	if err := s.categoryService.Delete(c.UserContext(), middleware.ActorFromCtx(c), c.Params("slug")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
