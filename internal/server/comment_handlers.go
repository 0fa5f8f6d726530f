package server

import (
	"critiq/internal/middleware"
	"critiq/internal/models"
	"critiq/internal/service"

	"github.com/gofiber/fiber/v2"
)

// reviewPath parses the nested title and review IDs from the URL.
func reviewPath(c *fiber.Ctx) (titleID, reviewID uint, err error) {
	titleID, err = pathID(c, "titleId")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = pathID(c, "reviewId")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

// ListComments handles GET /api/v1/titles/:titleId/reviews/:reviewId/comments
func (s *Server) ListComments(c *fiber.Ctx) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return respondError(c, err)
	}

	limit, offset := pagination(c)
	comments, count, err := s.commentService.List(c.UserContext(), titleID, reviewID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return respondList(c, count, comments)
}

// CreateComment handles POST /api/v1/titles/:titleId/reviews/:reviewId/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return respondError(c, err)
	}

	var req service.CreateCommentInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Create(c.UserContext(), middleware.ActorFromCtx(c), titleID, reviewID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComment handles GET /api/v1/titles/:titleId/reviews/:reviewId/comments/:commentId
func (s *Server) GetComment(c *fiber.Ctx) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return respondError(c, err)
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return respondError(c, err)
	}

	comment, err := s.commentService.Get(c.UserContext(), titleID, reviewID, commentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// UpdateComment handles PATCH /api/v1/titles/:titleId/reviews/:reviewId/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return respondError(c, err)
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return respondError(c, err)
	}

	var req service.UpdateCommentInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Update(c.UserContext(), middleware.ActorFromCtx(c), titleID, reviewID, commentID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/v1/titles/:titleId/reviews/:reviewId/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return respondError(c, err)
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.commentService.Delete(c.UserContext(), middleware.ActorFromCtx(c), titleID, reviewID, commentID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
