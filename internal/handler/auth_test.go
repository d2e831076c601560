package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/internal/model"
)

func TestSignupSuccess(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/signup", "", model.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]any)
	assert.Equal(t, "Alice", user["name"])
	assert.Equal(t, "alice@example.com", user["email"])
	// The password hash must never appear in a response.
	assert.NotContains(t, w.Body.String(), "password")
}

func TestSignupRejectsBadBody(t *testing.T) {
	env := newTestEnv(t)

	req := env.do(t, http.MethodPost, "/api/v1/auth/signup", "", nil)
	assert.Equal(t, http.StatusBadRequest, req.Code)
}

func TestSignupValidationMessages(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/signup", "", model.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "abcdef",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "password must contain a number", body["message"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Alice", "alice@example.com", "secret1")

	w := env.do(t, http.MethodPost, "/api/v1/auth/signup", "", model.SignupRequest{
		Name:     "Imposter",
		Email:    "alice@example.com",
		Password: "other12",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email already exists", decodeBody(t, w)["message"])
}

func TestLoginSuccessAndFailureParity(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Alice", "alice@example.com", "secret1")

	ok := env.do(t, http.MethodPost, "/api/v1/auth/login", "", model.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.Equal(t, http.StatusOK, ok.Code, ok.Body.String())

	wrongPassword := env.do(t, http.MethodPost, "/api/v1/auth/login", "", model.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong12",
	})
	unknownEmail := env.do(t, http.MethodPost, "/api/v1/auth/login", "", model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret1",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// Identical bodies: the response must not reveal which check failed.
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, "invalid credentials", decodeBody(t, wrongPassword)["message"])
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["success"])
}
