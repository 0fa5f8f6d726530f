package middleware

import (
	"context"
	"strings"

	"critiq/internal/models"
	"critiq/internal/token"

	"github.com/gofiber/fiber/v2"
)

// actorKey is the Fiber locals key holding the authenticated user.
const actorKey = "actor"

// UserLoader resolves a verified token subject to a live user record.
type UserLoader interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthRequired enforces a valid bearer token and stores the authenticated
// user in the request locals.
func AuthRequired(signer token.Signer, users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := authenticate(c, signer, users)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}
		if user == nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization header required"))
		}
		c.Locals(actorKey, user)
		return c.Next()
	}
}

// OptionalAuth authenticates when a bearer token is present and lets the
// request through anonymously when it is not. A token that is present but
// invalid is still rejected.
func OptionalAuth(signer token.Signer, users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := authenticate(c, signer, users)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}
		if user != nil {
			c.Locals(actorKey, user)
		}
		return c.Next()
	}
}

// ActorFromCtx returns the authenticated user, or nil for anonymous requests.
func ActorFromCtx(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals(actorKey).(*models.User); ok {
		return user
	}
	return nil
}

// authenticate extracts and verifies the bearer token. It returns (nil, nil)
// when no Authorization header is present.
func authenticate(c *fiber.Ctx, signer token.Signer, users UserLoader) (*models.User, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, models.NewUnauthorizedError("Invalid authorization header format")
	}

	userID, err := signer.Verify(parts[1])
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	user, err := users.GetByID(c.Context(), userID)
	if err != nil {
		// The token outlived its account.
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	return user, nil
}
