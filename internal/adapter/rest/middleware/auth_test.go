package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/estatehub/listing-service/internal/user"
)

const testSecret = "test-secret"

type staticResolver struct {
	users map[string]*user.User
}

func (r *staticResolver) FindByID(_ context.Context, id string) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func signToken(t *testing.T, secret, userID string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     time.Now().Unix(),
		"exp":     expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authTestServer(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	resolver := &staticResolver{users: map[string]*user.User{
		"u1": {ID: "u1", Name: "Known User", Role: user.RoleStandard},
	}}

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		u, ok := UserFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "u1", u.ID)
		_, ok = TokenFromContext(r.Context())
		assert.True(t, ok)
		w.WriteHeader(http.StatusOK)
	})

	return Authenticator(testSecret, resolver, zap.NewNop())(next), &reached
}

func TestAuthenticatorValidToken(t *testing.T) {
	handler, reached := authTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "u1", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *reached)
}

func TestAuthenticatorRejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"malformed token", "Bearer not-a-jwt"},
		{"wrong signing key", "Bearer " + signToken(t, "other-secret", "u1", time.Now().Add(time.Hour))},
		{"expired token", "Bearer " + signToken(t, testSecret, "u1", time.Now().Add(-time.Minute))},
		{"unknown subject", "Bearer " + signToken(t, testSecret, "ghost", time.Now().Add(time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, reached := authTestServer(t)

			req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			// Every rejection looks identical to the caller.
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"please authenticate"}`, rec.Body.String())
			assert.False(t, *reached)
		})
	}
}

func TestBearerTokenParsing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", bearerToken(req))

	req.Header.Set("Authorization", "bearer abc123")
	assert.Equal(t, "abc123", bearerToken(req))

	req.Header.Set("Authorization", "Bearer")
	assert.Equal(t, "", bearerToken(req))

	req.Header.Set("Authorization", "Token abc123")
	assert.Equal(t, "", bearerToken(req))
}
