package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"soulink-backend/infrastructure/config"
	"soulink-backend/pkg/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func authedHandler(t *testing.T, captured *string) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := common.GetUserID(r.Context())
		require.True(t, ok)
		*captured = userID
		w.WriteHeader(http.StatusOK)
	})
}

func newAuthMiddleware() func(next http.Handler) http.Handler {
	cfg := &config.Config{JWTSecret: testSecret}
	return Authenticate(cfg, zap.NewNop())
}

func newLambdaAuthMiddleware() func(next http.Handler) http.Handler {
	cfg := &config.Config{IsLambda: true}
	return Authenticate(cfg, zap.NewNop())
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthenticateGatewayHeadersInLambda(t *testing.T) {
	var captured string
	handler := newLambdaAuthMiddleware()(authedHandler(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("X-API-Gateway-Authorized", "true")
	req.Header.Set("X-User-ID", "gateway-user")
	req.Header.Set("X-User-Email", "user@example.com")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gateway-user", captured)
}

func TestAuthenticateGatewayHeadersIgnoredOutsideLambda(t *testing.T) {
	// Only the Lambda entrypoint scrubs and re-derives these headers; on
	// the plain server they are attacker-controlled and must not grant an
	// identity without a valid bearer token.
	cfg := &config.Config{Environment: "production", JWTSecret: testSecret}
	handler := Authenticate(cfg, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("X-API-Gateway-Authorized", "true")
	req.Header.Set("X-User-ID", "victim-user")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestAuthenticateBearerTokenStillWorksWithSpoofedHeaders(t *testing.T) {
	var captured string
	handler := newAuthMiddleware()(authedHandler(t, &captured))

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "jwt-user",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-API-Gateway-Authorized", "true")
	req.Header.Set("X-User-ID", "victim-user")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jwt-user", captured)
}

func TestAuthenticateValidBearerToken(t *testing.T) {
	var captured string
	handler := newAuthMiddleware()(authedHandler(t, &captured))

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "jwt-user",
		"email": "jwt@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jwt-user", captured)
}

func TestAuthenticateMissingCredentials(t *testing.T) {
	handler := newAuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestAuthenticateWrongSecret(t *testing.T) {
	handler := newAuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	token := signToken(t, "a-different-secret", jwt.MapClaims{
		"sub": "jwt-user",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	handler := newAuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "jwt-user",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateTokenWithoutSubject(t *testing.T) {
	handler := newAuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "nobody@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateGatewayFlagWithoutUserID(t *testing.T) {
	handler := newLambdaAuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("X-API-Gateway-Authorized", "true")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
