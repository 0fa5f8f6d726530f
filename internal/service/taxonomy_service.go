package service

import (
	"context"

	"critiq/internal/models"
	"critiq/internal/permissions"
	"critiq/internal/repository"
	"critiq/internal/validation"
)

// GenreService manages the genre taxonomy.
type GenreService struct {
	genreRepo repository.GenreRepository
}

// CategoryService manages the category taxonomy.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

type TaxonomyInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (in TaxonomyInput) validate() error {
	if in.Name == "" {
		return models.NewValidationError("name is required")
	}
	if len(in.Name) > 256 {
		return models.NewValidationError("name must not exceed 256 characters")
	}
	if err := validation.ValidateSlug(in.Slug); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

func NewGenreService(genreRepo repository.GenreRepository) *GenreService {
	return &GenreService{genreRepo: genreRepo}
}

func (s *GenreService) List(ctx context.Context, search string, limit, offset int) ([]models.Genre, int64, error) {
	return s.genreRepo.List(ctx, search, limit, offset)
}

func (s *GenreService) Create(ctx context.Context, actor *models.User, in TaxonomyInput) (*models.Genre, error) {
	if !permissions.Allowed(actor, permissions.ActionCreate, permissions.Resource{Class: permissions.ClassGenre}) {
		return nil, permissions.Deny(actor)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	genre := &models.Genre{Name: in.Name, Slug: in.Slug}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *GenreService) Delete(ctx context.Context, actor *models.User, slug string) error {
	if !permissions.Allowed(actor, permissions.ActionDelete, permissions.Resource{Class: permissions.ClassGenre}) {
		return permissions.Deny(actor)
	}
	return s.genreRepo.DeleteBySlug(ctx, slug)
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) List(ctx context.Context, search string, limit, offset int) ([]models.Category, int64, error) {
	return s.categoryRepo.List(ctx, search, limit, offset)
}

func (s *CategoryService) Create(ctx context.Context, actor *models.User, in TaxonomyInput) (*models.Category, error) {
	if !permissions.Allowed(actor, permissions.ActionCreate, permissions.Resource{Class: permissions.ClassCategory}) {
		return nil, permissions.Deny(actor)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	category := &models.Category{Name: in.Name, Slug: in.Slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, actor *models.User, slug string) error {
	if !permissions.Allowed(actor, permissions.ActionDelete, permissions.Resource{Class: permissions.ClassCategory}) {
		return permissions.Deny(actor)
	}
	return s.categoryRepo.DeleteBySlug(ctx, slug)
}
