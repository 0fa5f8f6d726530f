package service

import (
	"context"

	"critiq/internal/cache"
	"critiq/internal/models"
	"critiq/internal/permissions"
	"critiq/internal/repository"
	"critiq/internal/validation"
)

// UserService covers admin user management and the self-profile endpoint.
// Deleting a user cascades to their reviews, so the service also drops the
// cached ratings of every title they reviewed.
type UserService struct {
	userRepo   repository.UserRepository
	reviewRepo repository.ReviewRepository
	ratings    *cache.RatingCache
}

type CreateUserInput struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Bio       string      `json:"bio"`
	Role      models.Role `json:"role"`
}

// UpdateUserInput carries a partial admin edit; nil fields stay untouched.
type UpdateUserInput struct {
	Email     *string      `json:"email"`
	FirstName *string      `json:"first_name"`
	LastName  *string      `json:"last_name"`
	Bio       *string      `json:"bio"`
	Role      *models.Role `json:"role"`
}

// UpdateProfileInput is the self-edit shape: deliberately without a role
// field, so a role supplied in the request body has nowhere to land.
type UpdateProfileInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
}

func NewUserService(userRepo repository.UserRepository, reviewRepo repository.ReviewRepository, ratings *cache.RatingCache) *UserService {
	return &UserService{userRepo: userRepo, reviewRepo: reviewRepo, ratings: ratings}
}

func (s *UserService) List(ctx context.Context, actor *models.User, search string, limit, offset int) ([]models.User, int64, error) {
	if !permissions.Allowed(actor, permissions.ActionRead, permissions.Resource{Class: permissions.ClassUser}) {
		return nil, 0, permissions.Deny(actor)
	}
	return s.userRepo.List(ctx, search, limit, offset)
}

func (s *UserService) Create(ctx context.Context, actor *models.User, in CreateUserInput) (*models.User, error) {
	if !permissions.Allowed(actor, permissions.ActionCreate, permissions.Resource{Class: permissions.ClassUser}) {
		return nil, permissions.Deny(actor)
	}

	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if !in.Role.Valid() {
		return nil, models.NewValidationError("unknown role")
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Role:      in.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, actor *models.User, username string) (*models.User, error) {
	if !permissions.Allowed(actor, permissions.ActionRead, permissions.Resource{Class: permissions.ClassUser}) {
		return nil, permissions.Deny(actor)
	}
	return s.userRepo.GetByUsername(ctx, username)
}

func (s *UserService) Update(ctx context.Context, actor *models.User, username string, in UpdateUserInput) (*models.User, error) {
	if !permissions.Allowed(actor, permissions.ActionUpdate, permissions.Resource{Class: permissions.ClassUser}) {
		return nil, permissions.Deny(actor)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, models.NewValidationError("unknown role")
		}
		user.Role = *in.Role
	}
	if err := applyProfileFields(user, in.Email, in.FirstName, in.LastName, in.Bio); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor *models.User, username string) error {
	if !permissions.Allowed(actor, permissions.ActionDelete, permissions.Resource{Class: permissions.ClassUser}) {
		return permissions.Deny(actor)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	// Collect before the cascade wipes the reviews.
	titleIDs, err := s.reviewRepo.TitleIDsByAuthor(ctx, user.ID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return err
	}

	for _, titleID := range titleIDs {
		if err := s.ratings.Invalidate(ctx, titleID); err != nil {
			return models.NewInternalError(err)
		}
	}
	return nil
}

// GetProfile returns the actor's own record.
func (s *UserService) GetProfile(ctx context.Context, actor *models.User) (*models.User, error) {
	if !permissions.Allowed(actor, permissions.ActionRead, permissions.Resource{Class: permissions.ClassOwnProfile}) {
		return nil, permissions.Deny(actor)
	}
	return actor, nil
}

// UpdateProfile applies a self-edit. Role and username are not part of the
// input shape and therefore cannot change here.
func (s *UserService) UpdateProfile(ctx context.Context, actor *models.User, in UpdateProfileInput) (*models.User, error) {
	if !permissions.Allowed(actor, permissions.ActionUpdate, permissions.Resource{Class: permissions.ClassOwnProfile}) {
		return nil, permissions.Deny(actor)
	}

	if err := applyProfileFields(actor, in.Email, in.FirstName, in.LastName, in.Bio); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, actor); err != nil {
		return nil, err
	}
	return actor, nil
}

func applyProfileFields(user *models.User, email, firstName, lastName, bio *string) error {
	if email != nil {
		if err := validation.ValidateEmail(*email); err != nil {
			return models.NewValidationError(err.Error())
		}
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
	return nil
}
