package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"critiq/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func postJSON(t *testing.T, path string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSignupEndpoint(t *testing.T) {
	t.Run("New User", func(t *testing.T) {
		app, m := newTestServer(t)
		m.users.On("FindByUsername", mock.Anything, "alice").Return(nil, nil)
		m.users.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, nil)
		m.users.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.users.On("Update", mock.Anything, mock.Anything).Return(nil)
		m.mailer.On("Send", mock.Anything, "alice@example.com", mock.Anything, mock.Anything).Return(nil)

		resp, err := app.Test(postJSON(t, "/api/v1/auth/signup", map[string]string{
			"username": "alice",
			"email":    "alice@example.com",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "alice", out["username"])
		assert.Equal(t, "alice@example.com", out["email"])
	})

	t.Run("Conflicting Username", func(t *testing.T) {
		app, m := newTestServer(t)
		m.users.On("FindByUsername", mock.Anything, "alice").
			Return(&models.User{ID: 1, Username: "alice", Email: "other@example.com"}, nil)
		m.users.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, nil)

		resp, err := app.Test(postJSON(t, "/api/v1/auth/signup", map[string]string{
			"username": "alice",
			"email":    "alice@example.com",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Reserved Username", func(t *testing.T) {
		app, _ := newTestServer(t)
		resp, err := app.Test(postJSON(t, "/api/v1/auth/signup", map[string]string{
			"username": "me",
			"email":    "me@example.com",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestIssueTokenEndpoint(t *testing.T) {
	issuedAt := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte("the-code"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		ID:                   9,
		Username:             "erin",
		Email:                "erin@example.com",
		Role:                 models.RoleUser,
		ConfirmationHash:     string(hash),
		ConfirmationIssuedAt: &issuedAt,
	}

	t.Run("Correct Code", func(t *testing.T) {
		app, m := newTestServer(t)
		m.users.On("GetByUsername", mock.Anything, "erin").Return(user, nil)
		m.users.On("Update", mock.Anything, mock.Anything).Return(nil)

		resp, err := app.Test(postJSON(t, "/api/v1/auth/token", map[string]string{
			"username":          "erin",
			"confirmation_code": "the-code",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "token-9", out["token"])
	})

	t.Run("Wrong Code", func(t *testing.T) {
		app, m := newTestServer(t)
		m.users.On("GetByUsername", mock.Anything, "erin").Return(user, nil)

		resp, err := app.Test(postJSON(t, "/api/v1/auth/token", map[string]string{
			"username":          "erin",
			"confirmation_code": "wrong",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown User", func(t *testing.T) {
		app, m := newTestServer(t)
		m.users.On("GetByUsername", mock.Anything, "ghost").
			Return(nil, models.NewNotFoundError("User", "ghost"))

		resp, err := app.Test(postJSON(t, "/api/v1/auth/token", map[string]string{
			"username":          "ghost",
			"confirmation_code": "anything",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		app, _ := newTestServer(t)
		resp, err := app.Test(postJSON(t, "/api/v1/auth/token", map[string]string{
			"username": "erin",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
