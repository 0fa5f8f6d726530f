package service

import (
	"context"
	"testing"

	"critiq/internal/models"
	"critiq/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Function-field stubs for the repository interfaces, shared by the service
// tests in this package.

type userRepoStub struct {
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByUsernameFn  func(context.Context, string) (*models.User, error)
	findByUsernameFn func(context.Context, string) (*models.User, error)
	findByEmailFn    func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, *models.User) error
	updateFn         func(context.Context, *models.User) error
	deleteFn         func(context.Context, uint) error
	listFn           func(context.Context, string, int, int) ([]models.User, int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findByUsernameFn(ctx, username)
}
func (s *userRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, search string, limit, offset int) ([]models.User, int64, error) {
	return s.listFn(ctx, search, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:        func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn:  func(_ context.Context, u string) (*models.User, error) { return &models.User{Username: u}, nil },
		findByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		findByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:         func(_ context.Context, _ *models.User) error { return nil },
		updateFn:         func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		listFn:           func(_ context.Context, _ string, _, _ int) ([]models.User, int64, error) { return nil, 0, nil },
	}
}

type titleRepoStub struct {
	createFn       func(context.Context, *models.Title) error
	getByIDFn      func(context.Context, uint) (*models.Title, error)
	updateFn       func(context.Context, *models.Title, []models.Genre) error
	deleteFn       func(context.Context, uint) error
	listFn         func(context.Context, repository.TitleFilter, int, int) ([]models.Title, int64, error)
	averageScoreFn func(context.Context, uint) (*float64, error)
}

func (s *titleRepoStub) Create(ctx context.Context, title *models.Title) error {
	return s.createFn(ctx, title)
}
func (s *titleRepoStub) GetByID(ctx context.Context, id uint) (*models.Title, error) {
	return s.getByIDFn(ctx, id)
}
func (s *titleRepoStub) Update(ctx context.Context, title *models.Title, genres []models.Genre) error {
	return s.updateFn(ctx, title, genres)
}
func (s *titleRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *titleRepoStub) List(ctx context.Context, filter repository.TitleFilter, limit, offset int) ([]models.Title, int64, error) {
	return s.listFn(ctx, filter, limit, offset)
}
func (s *titleRepoStub) AverageScore(ctx context.Context, titleID uint) (*float64, error) {
	return s.averageScoreFn(ctx, titleID)
}

func noopTitleRepo() *titleRepoStub {
	return &titleRepoStub{
		createFn:  func(_ context.Context, _ *models.Title) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Title, error) { return &models.Title{ID: id}, nil },
		updateFn:  func(_ context.Context, _ *models.Title, _ []models.Genre) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		listFn: func(_ context.Context, _ repository.TitleFilter, _, _ int) ([]models.Title, int64, error) {
			return nil, 0, nil
		},
		averageScoreFn: func(_ context.Context, _ uint) (*float64, error) { return nil, nil },
	}
}

type reviewRepoStub struct {
	createFn           func(context.Context, *models.Review) error
	getByIDFn          func(context.Context, uint, uint) (*models.Review, error)
	updateFn           func(context.Context, *models.Review) error
	deleteFn           func(context.Context, *models.Review) error
	listByTitleFn      func(context.Context, uint, int, int) ([]models.Review, int64, error)
	titleIDsByAuthorFn func(context.Context, uint) ([]uint, error)
}

func (s *reviewRepoStub) Create(ctx context.Context, review *models.Review) error {
	return s.createFn(ctx, review)
}
func (s *reviewRepoStub) GetByID(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	return s.getByIDFn(ctx, titleID, reviewID)
}
func (s *reviewRepoStub) Update(ctx context.Context, review *models.Review) error {
	return s.updateFn(ctx, review)
}
func (s *reviewRepoStub) Delete(ctx context.Context, review *models.Review) error {
	return s.deleteFn(ctx, review)
}
func (s *reviewRepoStub) ListByTitle(ctx context.Context, titleID uint, limit, offset int) ([]models.Review, int64, error) {
	return s.listByTitleFn(ctx, titleID, limit, offset)
}
func (s *reviewRepoStub) TitleIDsByAuthor(ctx context.Context, authorID uint) ([]uint, error) {
	return s.titleIDsByAuthorFn(ctx, authorID)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		createFn: func(_ context.Context, _ *models.Review) error { return nil },
		getByIDFn: func(_ context.Context, titleID, reviewID uint) (*models.Review, error) {
			return &models.Review{ID: reviewID, TitleID: titleID}, nil
		},
		updateFn: func(_ context.Context, _ *models.Review) error { return nil },
		deleteFn: func(_ context.Context, _ *models.Review) error { return nil },
		listByTitleFn: func(_ context.Context, _ uint, _, _ int) ([]models.Review, int64, error) {
			return nil, 0, nil
		},
		titleIDsByAuthorFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	getByIDFn      func(context.Context, uint, uint) (*models.Comment, error)
	updateFn       func(context.Context, *models.Comment) error
	deleteFn       func(context.Context, *models.Comment) error
	listByReviewFn func(context.Context, uint, int, int) ([]models.Comment, int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, reviewID, commentID uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, reviewID, commentID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, comment *models.Comment) error {
	return s.deleteFn(ctx, comment)
}
func (s *commentRepoStub) ListByReview(ctx context.Context, reviewID uint, limit, offset int) ([]models.Comment, int64, error) {
	return s.listByReviewFn(ctx, reviewID, limit, offset)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, reviewID, commentID uint) (*models.Comment, error) {
			return &models.Comment{ID: commentID, ReviewID: reviewID}, nil
		},
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ *models.Comment) error { return nil },
		listByReviewFn: func(_ context.Context, _ uint, _, _ int) ([]models.Comment, int64, error) {
			return nil, 0, nil
		},
	}
}

type genreRepoStub struct {
	createFn       func(context.Context, *models.Genre) error
	getBySlugFn    func(context.Context, string) (*models.Genre, error)
	deleteBySlugFn func(context.Context, string) error
	listFn         func(context.Context, string, int, int) ([]models.Genre, int64, error)
}

func (s *genreRepoStub) Create(ctx context.Context, genre *models.Genre) error {
	return s.createFn(ctx, genre)
}
func (s *genreRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *genreRepoStub) DeleteBySlug(ctx context.Context, slug string) error {
	return s.deleteBySlugFn(ctx, slug)
}
func (s *genreRepoStub) List(ctx context.Context, search string, limit, offset int) ([]models.Genre, int64, error) {
	return s.listFn(ctx, search, limit, offset)
}

func noopGenreRepo() *genreRepoStub {
	return &genreRepoStub{
		createFn: func(_ context.Context, _ *models.Genre) error { return nil },
		getBySlugFn: func(_ context.Context, slug string) (*models.Genre, error) {
			return &models.Genre{Name: slug, Slug: slug}, nil
		},
		deleteBySlugFn: func(_ context.Context, _ string) error { return nil },
		listFn: func(_ context.Context, _ string, _, _ int) ([]models.Genre, int64, error) {
			return nil, 0, nil
		},
	}
}

type categoryRepoStub struct {
	createFn       func(context.Context, *models.Category) error
	getBySlugFn    func(context.Context, string) (*models.Category, error)
	deleteBySlugFn func(context.Context, string) error
	listFn         func(context.Context, string, int, int) ([]models.Category, int64, error)
}

func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *categoryRepoStub) DeleteBySlug(ctx context.Context, slug string) error {
	return s.deleteBySlugFn(ctx, slug)
}
func (s *categoryRepoStub) List(ctx context.Context, search string, limit, offset int) ([]models.Category, int64, error) {
	return s.listFn(ctx, search, limit, offset)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		createFn: func(_ context.Context, _ *models.Category) error { return nil },
		getBySlugFn: func(_ context.Context, slug string) (*models.Category, error) {
			return &models.Category{ID: 1, Name: slug, Slug: slug}, nil
		},
		deleteBySlugFn: func(_ context.Context, _ string) error { return nil },
		listFn: func(_ context.Context, _ string, _, _ int) ([]models.Category, int64, error) {
			return nil, 0, nil
		},
	}
}

// mailerStub records deliveries; failWith makes Send fail.
type mailerStub struct {
	sent     []sentMail
	failWith error
}

type sentMail struct {
	to, subject, body string
}

func (m *mailerStub) Send(_ context.Context, to, subject, body string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

// signerStub issues predictable tokens.
type signerStub struct {
	signFn   func(*models.User) (string, error)
	verifyFn func(string) (uint, error)
}

func (s *signerStub) Sign(user *models.User) (string, error) { return s.signFn(user) }
func (s *signerStub) Verify(tok string) (uint, error)        { return s.verifyFn(tok) }

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "FORBIDDEN")
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "UNAUTHORIZED")
}
