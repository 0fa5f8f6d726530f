package repository

import (
	"context"
	"errors"

	"critiq/internal/models"

	"gorm.io/gorm"
)

// TitleFilter narrows title listings. Zero values mean "no filter".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         int
}

// TitleRepository defines the interface for title data operations
type TitleRepository interface {
	Create(ctx context.Context, title *models.Title) error
	GetByID(ctx context.Context, id uint) (*models.Title, error)
	Update(ctx context.Context, title *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter TitleFilter, limit, offset int) ([]models.Title, int64, error)
	// AverageScore returns the mean review score, or nil when the title
	// has no reviews.
	AverageScore(ctx context.Context, titleID uint) (*float64, error)
}

type titleRepository struct {
	db *gorm.DB
}

// NewTitleRepository creates a new title repository
func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	if err := r.db.WithContext(ctx).Create(title).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *titleRepository) GetByID(ctx context.Context, id uint) (*models.Title, error) {
	var title models.Title
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&title, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Title", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &title, nil
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title, genres []models.Genre) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(title).Error; err != nil {
			return err
		}
		if genres != nil {
			if err := tx.Model(title).Association("Genres").Replace(genres); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *titleRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Select("Reviews", "Genres").Delete(&models.Title{ID: id})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Title", id)
	}
	return nil
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, limit, offset int) ([]models.Title, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Title{})

	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		query = query.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.Name != "" {
		query = query.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != 0 {
		query = query.Where("titles.year = ?", filter.Year)
	}

	var count int64
	if err := query.Distinct("titles.id").Count(&count).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var titles []models.Title
	err := query.Distinct().
		Preload("Category").
		Preload("Genres").
		Order("titles.name").
		Limit(limit).Offset(offset).
		Find(&titles).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	if err := r.fillRatings(ctx, titles); err != nil {
		return nil, 0, err
	}
	return titles, count, nil
}

func (r *titleRepository) AverageScore(ctx context.Context, titleID uint) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("title_id = ?", titleID).
		Select("AVG(score)").
		Scan(&avg).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return avg, nil
}

// fillRatings computes average scores for a page of titles in one query.
func (r *titleRepository) fillRatings(ctx context.Context, titles []models.Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]uint, len(titles))
	for i, t := range titles {
		ids[i] = t.ID
	}

	var rows []struct {
		TitleID uint
		Avg     float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("title_id IN ?", ids).
		Select("title_id, AVG(score) AS avg").
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return models.NewInternalError(err)
	}

	byID := make(map[uint]float64, len(rows))
	for _, row := range rows {
		byID[row.TitleID] = row.Avg
	}
	for i := range titles {
		if avg, ok := byID[titles[i].ID]; ok {
			v := avg
			titles[i].Rating = &v
		}
	}
	return nil
}
