package server

import (
	"critiq/internal/middleware"
	"critiq/internal/models"
	"critiq/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /api/v1/users
func (s *Server) ListUsers(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	users, count, err := s.userService.List(c.UserContext(), middleware.ActorFromCtx(c), c.Query("search"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return respondList(c, count, users)
}

// CreateUser handles POST /api/v1/users
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Create(c.UserContext(), middleware.ActorFromCtx(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser handles GET /api/v1/users/:username
func (s *Server) GetUser(c *fiber.Ctx) error {
	user, err := s.userService.Get(c.UserContext(), middleware.ActorFromCtx(c), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PATCH /api/v1/users/:username
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	var req service.UpdateUserInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Update(c.UserContext(), middleware.ActorFromCtx(c), c.Params("username"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/v1/users/:username
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	if err := s.userService.Delete(c.UserContext(), middleware.ActorFromCtx(c), c.Params("username")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMyProfile handles GET /api/v1/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.UserContext(), middleware.ActorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PATCH /api/v1/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req service.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), middleware.ActorFromCtx(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
