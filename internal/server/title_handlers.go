package server

import (
	"strconv"

	"critiq/internal/middleware"
	"critiq/internal/models"
	"critiq/internal/repository"
	"critiq/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListTitles handles GET /api/v1/titles
func (s *Server) ListTitles(c *fiber.Ctx) error {
	filter := repository.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, models.NewValidationError("year must be a number"))
		}
		filter.Year = year
	}

	limit, offset := pagination(c)
	titles, count, err := s.titleService.List(c.UserContext(), filter, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return respondList(c, count, titles)
}

// CreateTitle handles POST /api/v1/titles
func (s *Server) CreateTitle(c *fiber.Ctx) error {
	var req service.CreateTitleInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	title, err := s.titleService.Create(c.UserContext(), middleware.ActorFromCtx(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(title)
}

// GetTitle handles GET /api/v1/titles/:titleId
func (s *Server) GetTitle(c *fiber.Ctx) error {
	id, err := pathID(c, "titleId")
	if err != nil {
		return respondError(c, err)
	}

	title, err := s.titleService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(title)
}

// UpdateTitle handles PATCH /api/v1/titles/:titleId
func (s *Server) UpdateTitle(c *fiber.Ctx) error {
	id, err := pathID(c, "titleId")
	if err != nil {
		return respondError(c, err)
	}

	var req service.UpdateTitleInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	title, err := s.titleService.Update(c.UserContext(), middleware.ActorFromCtx(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(title)
}

// DeleteTitle handles DELETE /api/v1/titles/:titleId
func (s *Server) DeleteTitle(c *fiber.Ctx) error {
	id, err := pathID(c, "titleId")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.titleService.Delete(c.UserContext(), middleware.ActorFromCtx(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
