package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/outreach-drafter/internal/config"
)

func testJWTService(secret string) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 1})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := testJWTService("test-secret")

	token, err := svc.GenerateToken("cli")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cli", claims.Subject)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestJWTService_ValidateToken_Errors(t *testing.T) {
	svc := testJWTService("test-secret")
	token, err := svc.GenerateToken("cli")
	require.NoError(t, err)

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.ValidateToken("")
		assert.Error(t, err)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := testJWTService("different-secret")
		_, err := other.ValidateToken(token)
		assert.Error(t, err)
	})
}

func TestWithAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := newTestServer(t, Config{})
	require.NotNil(t, svc.jwtService, "auth must be enabled when JWT_SECRET is set")

	token, err := svc.jwtService.GenerateToken("cli")
	require.NoError(t, err)

	t.Run("health stays open", func(t *testing.T) {
		rec := doRequest(svc, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := doRequest(svc, http.MethodPost, "/generate", `{}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := newAuthedRequest(http.MethodPost, "/generate", "Basic "+token)
		rec := serve(svc, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := newAuthedRequest(http.MethodPost, "/generate", "Bearer not-a-token")
		rec := serve(svc, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token reaches handler", func(t *testing.T) {
		req := newAuthedRequest(http.MethodPost, "/generate", "Bearer "+token)
		rec := serve(svc, req)
		// Past auth: the empty body fails request validation instead.
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func newAuthedRequest(method, path, authorization string) *http.Request {
	req := newJSONRequest(method, path, `{}`)
	req.Header.Set("Authorization", authorization)
	return req
}
