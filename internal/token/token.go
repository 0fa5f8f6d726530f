// Package token signs and verifies bearer access tokens.
package token

import (
	"fmt"
	"strconv"
	"time"

	"critiq/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Signer issues and verifies access tokens. It is injected into the auth
// service and middleware so tests can substitute their own implementation.
type Signer interface {
	Sign(user *models.User) (string, error)
	Verify(tokenString string) (uint, error)
}

// JWTSigner signs HS256 JWTs carrying the user ID in the subject claim.
type JWTSigner struct {
	secret []byte
	expiry time.Duration
}

// NewJWTSigner creates a JWTSigner with the given secret and token lifetime.
func NewJWTSigner(secret string, expiry time.Duration) (*JWTSigner, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret not configured")
	}
	return &JWTSigner{secret: []byte(secret), expiry: expiry}, nil
}

// Sign creates a signed token for the given user.
func (s *JWTSigner) Sign(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(user.ID), 10),
		"iat": now.Unix(),
		"exp": now.Add(s.expiry).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses the token, checks the signature and expiry, and returns the
// user ID from the subject claim.
func (s *JWTSigner) Verify(tokenString string) (uint, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !t.Valid {
		return 0, fmt.Errorf("invalid or expired token")
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("missing subject claim")
	}

	id, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID in token")
	}

	return uint(id), nil
}
