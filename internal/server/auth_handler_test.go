package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

func TestAuthHandler_Register(t *testing.T) {
	s := newTestServer(t, Dependencies{DB: newFakeDB()})

	token, user := registerUser(t, s, "Asha@Example.com")
	assert.NotEmpty(t, token)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, "Asha Rao", user.Name)

	claims, err := s.jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.GetUserID())

	w := do(t, s, http.MethodPost, "/auth/register", types.RegisterRequest{
		Name: "Someone Else", Email: "asha@example.com", Password: "another-pass",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	s := newTestServer(t, Dependencies{DB: newFakeDB()})

	w := do(t, s, http.MethodPost, "/auth/register", "invalid json", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestAuthHandler_Register_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		reqBody map[string]string
	}{
		{name: "missing name", reqBody: map[string]string{"email": "test@example.com", "password": "password123"}},
		{name: "invalid email", reqBody: map[string]string{"name": "Test User", "email": "invalid-email", "password": "password123"}},
		{name: "missing email", reqBody: map[string]string{"name": "Test User", "password": "password123"}},
		{name: "password too short", reqBody: map[string]string{"name": "Test User", "email": "test@example.com", "password": "short"}},
		{name: "missing password", reqBody: map[string]string{"name": "Test User", "email": "test@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Dependencies{DB: newFakeDB()})

			w := do(t, s, http.MethodPost, "/auth/register", tt.reqBody, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "validation error")
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	s := newTestServer(t, Dependencies{DB: newFakeDB()})
	_, user := registerUser(t, s, "asha@example.com")

	t.Run("success", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/auth/login", types.LoginRequest{
			Email: "ASHA@example.com", Password: "correct-horse",
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[types.AuthResponse](t, w)
		assert.NotEmpty(t, resp.Token)
		require.NotNil(t, resp.User)
		assert.Equal(t, user.ID, resp.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/auth/login", types.LoginRequest{
			Email: "asha@example.com", Password: "wrong-horse",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid email or password")
	})

	t.Run("unknown email looks the same", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/auth/login", types.LoginRequest{
			Email: "nobody@example.com", Password: "correct-horse",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid email or password")
	})
}

func TestAuthHandler_Login_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		reqBody map[string]string
	}{
		{name: "missing email", reqBody: map[string]string{"password": "password123"}},
		{name: "invalid email format", reqBody: map[string]string{"email": "invalid-email", "password": "password123"}},
		{name: "missing password", reqBody: map[string]string{"email": "test@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Dependencies{DB: newFakeDB()})

			w := do(t, s, http.MethodPost, "/auth/login", tt.reqBody, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "validation error")
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	s := newTestServer(t, Dependencies{DB: newFakeDB()})
	token, user := registerUser(t, s, "asha@example.com")

	w := do(t, s, http.MethodGet, "/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]types.User](t, w)
	assert.Equal(t, user.ID, resp["user"].ID)
	assert.NotContains(t, w.Body.String(), "password")

	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/auth/me", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/auth/me", nil, "not-a-jwt").Code)
}

func TestAuthHandler_Me_DeletedUser(t *testing.T) {
	fdb := newFakeDB()
	s := newTestServer(t, Dependencies{DB: fdb})
	token, user := registerUser(t, s, "asha@example.com")
	delete(fdb.users, user.ID)

	w := do(t, s, http.MethodGet, "/auth/me", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthHandler_UpdatePassword(t *testing.T) {
	s := newTestServer(t, Dependencies{DB: newFakeDB()})
	token, _ := registerUser(t, s, "asha@example.com")

	w := do(t, s, http.MethodPut, "/auth/password", types.UpdatePasswordRequest{
		CurrentPassword: "wrong-horse", NewPassword: "battery-staple",
	}, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, s, http.MethodPut, "/auth/password", types.UpdatePasswordRequest{
		CurrentPassword: "correct-horse", NewPassword: "battery-staple",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Password updated successfully")

	old := do(t, s, http.MethodPost, "/auth/login", types.LoginRequest{Email: "asha@example.com", Password: "correct-horse"}, "")
	assert.Equal(t, http.StatusUnauthorized, old.Code)
	fresh := do(t, s, http.MethodPost, "/auth/login", types.LoginRequest{Email: "asha@example.com", Password: "battery-staple"}, "")
	assert.Equal(t, http.StatusOK, fresh.Code)
}

func TestAuthHandler_UpdatePassword_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		reqBody map[string]string
	}{
		{name: "missing current password", reqBody: map[string]string{"new_password": "newpassword123"}},
		{name: "missing new password", reqBody: map[string]string{"current_password": "oldpassword"}},
		{name: "new password too short", reqBody: map[string]string{"current_password": "oldpassword", "new_password": "short"}},
		{name: "new password unchanged", reqBody: map[string]string{"current_password": "samepassword", "new_password": "samepassword"}},
	}

	s := newTestServer(t, Dependencies{DB: newFakeDB()})
	token, _ := registerUser(t, s, "asha@example.com")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPut, "/auth/password", tt.reqBody, token)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "validation error")
		})
	}
}

func TestAuthHandler_NoDatabase(t *testing.T) {
	s := newTestServer(t, Dependencies{})

	w := do(t, s, http.MethodPost, "/auth/register", types.RegisterRequest{
		Name: "Asha Rao", Email: "asha@example.com", Password: "correct-horse",
	}, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "database is not configured")

	w = do(t, s, http.MethodPost, "/auth/login", types.LoginRequest{Email: "asha@example.com", Password: "x"}, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
