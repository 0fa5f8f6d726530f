package server

import (
	"critiq/internal/middleware"
	"critiq/internal/models"
	"critiq/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListReviews handles GET /api/v1/titles/:titleId/reviews
func (s *Server) ListReviews(c *fiber.Ctx) error {
	titleID, err := pathID(c, "titleId")
	if err != nil {
		return respondError(c, err)
	}

	limit, offset := pagination(c)
	reviews, count, err := s.reviewService.List(c.UserContext(), titleID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return respondList(c, count, reviews)
}

// CreateReview handles POST /api/v1/titles/:titleId/reviews
func (s *Server) CreateReview(c *fiber.Ctx) error {
	titleID, err := pathID(c, "titleId")
	if err != nil {
		return respondError(c, err)
	}

	var req service.CreateReviewInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.Create(c.UserContext(), middleware.ActorFromCtx(c), titleID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetReview handles GET /api/v1/titles/:titleId/reviews/:reviewId
func (s *Server) GetReview(c *fiber.Ctx) error {
	titleID, err := pathID(c, "titleId")
	if err != nil {
		return respondError(c, err)
	}
	reviewID, err := pathID(c, "reviewId")
	if err != nil {
		return respondError(c, err)
	}

	review, err := s.reviewService.Get(c.UserContext(), titleID, reviewID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(review)
}

// UpdateReview handles PATCH /api/v1/titles/:titleId/reviews/:reviewId
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	titleID, err := pathID(c, "titleId")
	if err != nil {
		return respondError(c, err)
	}
	reviewID, err := pathID(c, "reviewId")
	if err != nil {
		return respondError(c, err)
	}

	var req service.UpdateReviewInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.Update(c.UserContext(), middleware.ActorFromCtx(c), titleID, reviewID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(review)
}

// DeleteReview handles DELETE /api/v1/titles/:titleId/reviews/:reviewId
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	titleID, err := pathID(c, "titleId")
	if err != nil {
		return respondError(c, err)
	}
	reviewID, err := pathID(c, "reviewId")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.reviewService.Delete(c.UserContext(), middleware.ActorFromCtx(c), titleID, reviewID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
