package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/register", "", registerBody("a@x.com"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Message string `json:"message"`
		User    struct {
			Email      string `json:"email"`
			Role       string `json:"role"`
			IsVerified bool   `json:"isVerified"`
			IsBlocked  bool   `json:"isBlocked"`
		} `json:"user"`
	}
	decode(t, rec, &resp)

	assert.Equal(t, "Registration successful", resp.Message)
	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.Equal(t, "user", resp.User.Role)
	assert.False(t, resp.User.IsVerified)
	assert.False(t, resp.User.IsBlocked)

	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterEndpointDuplicateEmail(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/register", "", registerBody("a@x.com"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/v1/register", "", registerBody("a@x.com"))
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var resp struct {
		Error string `json:"error"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "User already exists", resp.Error)
}

func TestRegisterEndpointMissingFields(t *testing.T) {
	env := newTestEnv()

	body := registerBody("a@x.com")
	delete(body, "location")

	rec := env.do(t, http.MethodPost, "/api/v1/register", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Empty(t, env.users.users)
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/register", "", registerBody("a@x.com"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	decode(t, rec, &resp)

	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.Equal(t, "user", resp.User.Role)

	claims, err := env.tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/register", "", registerBody("a@x.com"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Wrong password and unknown email produce the same status and message.
	wrong := env.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "wrong-password",
	})
	unknown := env.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    "nobody@x.com",
		"password": "secret1",
	})

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.JSONEq(t, wrong.Body.String(), unknown.Body.String())
}

func TestLoginEndpointBlockedAccount(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/register", "", registerBody("a@x.com"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	env.users.users["a@x.com"].IsBlocked = true

	rec = env.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())

	var resp struct {
		Error string `json:"error"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "Your account has been blocked", resp.Error)
}
