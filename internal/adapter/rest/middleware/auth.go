package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/estatehub/listing-service/internal/user"
)

type contextKey string

const (
	userCtxKey  contextKey = "authenticatedUser"
	tokenCtxKey contextKey = "authToken"
)

// Claims is the token payload issued at login.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// UserResolver looks up the subject a verified token refers to.
type UserResolver interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// Authenticator verifies the bearer token and resolves it to a user before
// the handler runs. Every rejection, whether the token is missing, invalid,
// expired or refers to an unknown subject, produces the same 401 body; the
// distinctions are logged only.
func Authenticator(jwtSecret string, users UserResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				logger.Warn("missing authorization token", zap.String("path", r.URL.Path))
				unauthorized(w)
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid || claims.UserID == "" {
				logger.Warn("token validation failed", zap.String("path", r.URL.Path), zap.Error(err))
				unauthorized(w)
				return
			}

			u, err := users.FindByID(r.Context(), claims.UserID)
			if err != nil {
				logger.Warn("token subject not found",
					zap.String("path", r.URL.Path), zap.String("user_id", claims.UserID), zap.Error(err))
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey, u)
			ctx = context.WithValue(ctx, tokenCtxKey, tokenString)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the identity the Authenticator attached.
func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(userCtxKey).(*user.User)
	return u, ok
}

func TokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenCtxKey).(string)
	return t, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"please authenticate"}`))
}
