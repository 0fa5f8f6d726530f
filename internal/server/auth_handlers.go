package server

import (
	"critiq/internal/models"
	"critiq/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/v1/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req service.SignupInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	out, err := s.authService.Signup(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	// Signup and resend both return 200 with the echoed pair.
	return c.JSON(out)
}

// IssueToken handles POST /api/v1/auth/token
func (s *Server) IssueToken(c *fiber.Ctx) error {
	var req struct {
		Username         string `json:"username"`
		ConfirmationCode string `json:"confirmation_code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" || req.ConfirmationCode == "" {
		return respondError(c, models.NewValidationError("username and confirmation_code are required"))
	}

	accessToken, err := s.authService.IssueToken(c.UserContext(), req.Username, req.ConfirmationCode)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"token": accessToken})
}
