package service

import (
	"context"
	"errors"

	"critiq/internal/cache"
	"critiq/internal/models"
	"critiq/internal/permissions"
	"critiq/internal/repository"
	"critiq/internal/validation"
)

// TitleService manages titles and their taxonomy references.
type TitleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	ratings      *cache.RatingCache
}

type CreateTitleInput struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description *string  `json:"description"`
	Category    string   `json:"category"`
	Genres      []string `json:"genre"`
}

// UpdateTitleInput is a partial edit; nil fields stay untouched. A non-nil
// empty Category detaches the current one.
type UpdateTitleInput struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genres      *[]string `json:"genre"`
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	ratings *cache.RatingCache,
) *TitleService {
	return &TitleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		ratings:      ratings,
	}
}

func (s *TitleService) List(ctx context.Context, filter repository.TitleFilter, limit, offset int) ([]models.Title, int64, error) {
	return s.titleRepo.List(ctx, filter, limit, offset)
}

// Get returns a title with its computed rating, from cache when possible.
func (s *TitleService) Get(ctx context.Context, id uint) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if rating, ok := s.ratings.Get(ctx, id); ok {
		title.Rating = rating
		return title, nil
	}

	rating, err := s.titleRepo.AverageScore(ctx, id)
	if err != nil {
		return nil, err
	}
	title.Rating = rating
	s.ratings.Set(ctx, id, rating)
	return title, nil
}

func (s *TitleService) Create(ctx context.Context, actor *models.User, in CreateTitleInput) (*models.Title, error) {
	if !permissions.Allowed(actor, permissions.ActionCreate, permissions.Resource{Class: permissions.ClassTitle}) {
		return nil, permissions.Deny(actor)
	}

	if in.Name == "" {
		return nil, models.NewValidationError("name is required")
	}
	if len(in.Name) > 256 {
		return nil, models.NewValidationError("name must not exceed 256 characters")
	}
	if err := validation.ValidateYear(in.Year); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	title := &models.Title{
		Name:        in.Name,
		Year:        in.Year,
		Description: in.Description,
	}

	if in.Category != "" {
		category, err := s.resolveCategory(ctx, in.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	genres, err := s.resolveGenres(ctx, in.Genres)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}
	return s.Get(ctx, title.ID)
}

func (s *TitleService) Update(ctx context.Context, actor *models.User, id uint, in UpdateTitleInput) (*models.Title, error) {
	if !permissions.Allowed(actor, permissions.ActionUpdate, permissions.Resource{Class: permissions.ClassTitle}) {
		return nil, permissions.Deny(actor)
	}

	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, models.NewValidationError("name is required")
		}
		if len(*in.Name) > 256 {
			return nil, models.NewValidationError("name must not exceed 256 characters")
		}
		title.Name = *in.Name
	}
	if in.Year != nil {
		if err := validation.ValidateYear(*in.Year); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		title.Year = *in.Year
	}
	if in.Description != nil {
		title.Description = in.Description
	}
	if in.Category != nil {
		if *in.Category == "" {
			title.CategoryID = nil
			title.Category = nil
		} else {
			category, err := s.resolveCategory(ctx, *in.Category)
			if err != nil {
				return nil, err
			}
			title.CategoryID = &category.ID
			title.Category = category
		}
	}

	var genres []models.Genre
	if in.Genres != nil {
		genres, err = s.resolveGenres(ctx, *in.Genres)
		if err != nil {
			return nil, err
		}
	}

	if err := s.titleRepo.Update(ctx, title, genres); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *TitleService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if !permissions.Allowed(actor, permissions.ActionDelete, permissions.Resource{Class: permissions.ClassTitle}) {
		return permissions.Deny(actor)
	}
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.ratings.Invalidate(ctx, id)
}

// resolveCategory maps a slug to a category, reporting an unknown slug as a
// validation error: the client referenced it in a write body.
func (s *TitleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return nil, models.NewValidationError("unknown category slug: " + slug)
		}
		return nil, err
	}
	return category, nil
}

func (s *TitleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	genres := make([]models.Genre, 0, len(slugs))
	for _, slug := range slugs {
		genre, err := s.genreRepo.GetBySlug(ctx, slug)
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
				return nil, models.NewValidationError("unknown genre slug: " + slug)
			}
			return nil, err
		}
		genres = append(genres, *genre)
	}
	return genres, nil
}
