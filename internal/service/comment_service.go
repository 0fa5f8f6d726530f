package service

import (
	"context"

	"critiq/internal/models"
	"critiq/internal/permissions"
	"critiq/internal/repository"
)

// CommentService manages comments nested under reviews.
type CommentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

type CreateCommentInput struct {
	Text string `json:"text"`
}

type UpdateCommentInput struct {
	Text *string `json:"text"`
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, reviewRepo: reviewRepo}
}

// resolveReview checks the nested path: the review must exist and belong to
// the title from the URL.
func (s *CommentService) resolveReview(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	return s.reviewRepo.GetByID(ctx, titleID, reviewID)
}

func (s *CommentService) List(ctx context.Context, titleID, reviewID uint, limit, offset int) ([]models.Comment, int64, error) {
	if _, err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByReview(ctx, reviewID, limit, offset)
}

func (s *CommentService) Get(ctx context.Context, titleID, reviewID, commentID uint) (*models.Comment, error) {
	if _, err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, reviewID, commentID)
}

func (s *CommentService) Create(ctx context.Context, actor *models.User, titleID, reviewID uint, in CreateCommentInput) (*models.Comment, error) {
	if !permissions.Allowed(actor, permissions.ActionCreate, permissions.Resource{Class: permissions.ClassComment}) {
		return nil, permissions.Deny(actor)
	}

	if _, err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	if in.Text == "" {
		return nil, models.NewValidationError("text is required")
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     in.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID uint, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	res := permissions.Resource{Class: permissions.ClassComment, OwnerID: comment.AuthorID}
	if !permissions.Allowed(actor, permissions.ActionUpdate, res) {
		return nil, permissions.Deny(actor)
	}

	if in.Text != nil {
		if *in.Text == "" {
			return nil, models.NewValidationError("text is required")
		}
		comment.Text = *in.Text
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID uint) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	res := permissions.Resource{Class: permissions.ClassComment, OwnerID: comment.AuthorID}
	if !permissions.Allowed(actor, permissions.ActionDelete, res) {
		return permissions.Deny(actor)
	}

	return s.commentRepo.Delete(ctx, comment)
}
