// Package service implements the application's business logic on top of the
// repository layer. Services take the acting user explicitly and consult the
// permissions package before every mutation.
package service

import (
	"context"
	"time"

	"critiq/internal/mail"
	"critiq/internal/models"
	"critiq/internal/repository"
	"critiq/internal/token"
	"critiq/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService runs the signup / confirmation-code / token flow. The mailer
// and token signer are injected collaborators.
type AuthService struct {
	userRepo repository.UserRepository
	mailer   mail.Mailer
	signer   token.Signer
	codeTTL  time.Duration
}

type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func NewAuthService(userRepo repository.UserRepository, mailer mail.Mailer, signer token.Signer, codeTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		mailer:   mailer,
		signer:   signer,
		codeTTL:  codeTTL,
	}
}

// Signup registers a user (or re-requests a code for an existing one) and
// emails a confirmation code. The same (username, email) pair can sign up
// repeatedly; each attempt replaces the previous code. A username or email
// that collides with a different account is a conflict.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*SignupInput, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	byName, err := s.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	byEmail, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}

	var user *models.User
	switch {
	case byName != nil && byEmail != nil && byName.ID == byEmail.ID:
		// Exact match on both: resend.
		user = byName
	case byName == nil && byEmail == nil:
		user = &models.User{
			Username: in.Username,
			Email:    in.Email,
			Role:     models.RoleUser,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	case byName != nil:
		return nil, models.NewValidationError("username already registered with a different email")
	default:
		return nil, models.NewValidationError("email already registered with a different username")
	}

	code := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	now := time.Now()
	user.ConfirmationHash = string(hash)
	user.ConfirmationIssuedAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// A failed delivery must not look like a successful signup.
	err = s.mailer.Send(ctx, user.Email,
		"Critiq registration",
		"Your confirmation code: "+code)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &SignupInput{Username: user.Username, Email: user.Email}, nil
}

// IssueToken exchanges a confirmation code for a bearer access token and
// marks the user confirmed. The code stays valid until its TTL runs out or
// a new signup replaces it, so confirmation is idempotent.
func (s *AuthService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if user.ConfirmationHash == "" || user.ConfirmationIssuedAt == nil {
		return "", models.NewValidationError("no confirmation code issued for this user")
	}
	if time.Since(*user.ConfirmationIssuedAt) > s.codeTTL {
		return "", models.NewValidationError("confirmation code expired")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.ConfirmationHash), []byte(code)); err != nil {
		return "", models.NewValidationError("invalid confirmation code")
	}

	accessToken, err := s.signer.Sign(user)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	if !user.Confirmed {
		user.Confirmed = true
		if err := s.userRepo.Update(ctx, user); err != nil {
			return "", err
		}
	}

	return accessToken, nil
}
