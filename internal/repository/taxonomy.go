package repository

import (
	"context"
	"errors"

	"critiq/internal/models"

	"gorm.io/gorm"
)

// GenreRepository defines the interface for genre data operations
type GenreRepository interface {
	Create(ctx context.Context, genre *models.Genre) error
	GetBySlug(ctx context.Context, slug string) (*models.Genre, error)
	DeleteBySlug(ctx context.Context, slug string) error
	List(ctx context.Context, search string, limit, offset int) ([]models.Genre, int64, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	DeleteBySlug(ctx context.Context, slug string) error
	List(ctx context.Context, search string, limit, offset int) ([]models.Category, int64, error)
}

type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository creates a new genre repository
func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	if err := r.db.WithContext(ctx).Create(genre).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewValidationError("genre slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *genreRepository) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Genre", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &genre, nil
}

func (r *genreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	genre, err := r.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	// Join rows on titles cascade at the database level.
	if err := r.db.WithContext(ctx).Delete(genre).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *genreRepository) List(ctx context.Context, search string, limit, offset int) ([]models.Genre, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Genre{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var genres []models.Genre
	if err := query.Order("name").Limit(limit).Offset(offset).Find(&genres).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return genres, count, nil
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewValidationError("category slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

func (r *categoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	category, err := r.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	// Titles referencing the category fall back to NULL (SET NULL constraint).
	if err := r.db.WithContext(ctx).Delete(category).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context, search string, limit, offset int) ([]models.Category, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Category{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var categories []models.Category
	if err := query.Order("name").Limit(limit).Offset(offset).Find(&categories).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return categories, count, nil
}
