package repository

import (
	"context"
	"errors"

	"critiq/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	// Create inserts a review inside a transaction; the duplicate check and
	// the insert race together, with the unique constraint as the final
	// arbiter under concurrency.
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, titleID, reviewID uint) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, review *models.Review) error
	ListByTitle(ctx context.Context, titleID uint, limit, offset int) ([]models.Review, int64, error)
	// TitleIDsByAuthor returns the distinct titles the author has reviewed,
	// used to refresh cached ratings when the account goes away.
	TitleIDsByAuthor(ctx context.Context, authorID uint) ([]uint, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Review{}).
			Where("title_id = ? AND author_id = ?", review.TitleID, review.AuthorID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return models.NewValidationError("you have already reviewed this title")
		}
		return tx.Create(review).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent request won the race.
			return models.NewValidationError("you have already reviewed this title")
		}
		return models.NewInternalError(err)
	}

	return r.loadAuthor(ctx, review)
}

func (r *reviewRepository) GetByID(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND title_id = ?", reviewID, titleID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", reviewID)
		}
		return nil, models.NewInternalError(err)
	}
	review.AuthorName = review.Author.Username
	return &review, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, review *models.Review) error {
	// Comments hanging off the review go with it.
	if err := r.db.WithContext(ctx).Select("Comments").Delete(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) ListByTitle(ctx context.Context, titleID uint, limit, offset int) ([]models.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Review{}).Where("title_id = ?", titleID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var reviews []models.Review
	err := query.Preload("Author").
		Order("pub_date DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	for i := range reviews {
		reviews[i].AuthorName = reviews[i].Author.Username
	}
	return reviews, count, nil
}

func (r *reviewRepository) TitleIDsByAuthor(ctx context.Context, authorID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("author_id = ?", authorID).
		Distinct().
		Pluck("title_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *reviewRepository) loadAuthor(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).First(&review.Author, review.AuthorID).Error; err != nil {
		return models.NewInternalError(err)
	}
	review.AuthorName = review.Author.Username
	return nil
}
