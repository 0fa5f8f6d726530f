package service

import (
	"context"

	"critiq/internal/cache"
	"critiq/internal/models"
	"critiq/internal/permissions"
	"critiq/internal/repository"
	"critiq/internal/validation"
)

// ReviewService manages reviews nested under titles.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	ratings    *cache.RatingCache
}

type CreateReviewInput struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type UpdateReviewInput struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository, ratings *cache.RatingCache) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, titleRepo: titleRepo, ratings: ratings}
}

func (s *ReviewService) List(ctx context.Context, titleID uint, limit, offset int) ([]models.Review, int64, error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(ctx, titleID, limit, offset)
}

func (s *ReviewService) Get(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(ctx, titleID, reviewID)
}

// Create adds a review authored by the actor. The title and author come
// from the path and the token; any client-supplied values are ignored by
// construction, since the input shape has no fields for them.
func (s *ReviewService) Create(ctx context.Context, actor *models.User, titleID uint, in CreateReviewInput) (*models.Review, error) {
	if !permissions.Allowed(actor, permissions.ActionCreate, permissions.Resource{Class: permissions.ClassReview}) {
		return nil, permissions.Deny(actor)
	}

	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		return nil, err
	}

	if in.Text == "" {
		return nil, models.NewValidationError("text is required")
	}
	if err := validation.ValidateScore(in.Score); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     in.Text,
		Score:    in.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.ratings.Invalidate(ctx, titleID); err != nil {
		return nil, models.NewInternalError(err)
	}
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, actor *models.User, titleID, reviewID uint, in UpdateReviewInput) (*models.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	res := permissions.Resource{Class: permissions.ClassReview, OwnerID: review.AuthorID}
	if !permissions.Allowed(actor, permissions.ActionUpdate, res) {
		return nil, permissions.Deny(actor)
	}

	if in.Text != nil {
		if *in.Text == "" {
			return nil, models.NewValidationError("text is required")
		}
		review.Text = *in.Text
	}
	if in.Score != nil {
		if err := validation.ValidateScore(*in.Score); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		review.Score = *in.Score
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	if err := s.ratings.Invalidate(ctx, titleID); err != nil {
		return nil, models.NewInternalError(err)
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor *models.User, titleID, reviewID uint) error {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	res := permissions.Resource{Class: permissions.ClassReview, OwnerID: review.AuthorID}
	if !permissions.Allowed(actor, permissions.ActionDelete, res) {
		return permissions.Deny(actor)
	}

	if err := s.reviewRepo.Delete(ctx, review); err != nil {
		return err
	}
	if err := s.ratings.Invalidate(ctx, titleID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
