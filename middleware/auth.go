// Package middleware provides the bearer-token auth the HTTP surface needs
// to gate POST /tournaments/{id}/start and the build-event websocket,
// adapted from the teacher's middleware package. The read-only tournament
// and bracket views are served without it.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

const bearerPrefix = "Bearer "

type contextKey string

const userContextKey contextKey = "user"

// Authenticate verifies a bearer JWT and stores its claims in the request
// context for downstream handlers to read with UserIDFromContext.
func Authenticate(secret []byte, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := extractToken(r)
			if err != nil {
				logger.WarnContext(r.Context(), "failed to extract bearer token", slog.Any("error", err))
				http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
				return
			}
			if tokenString == "" {
				http.Error(w, "Unauthorized: no token provided", http.StatusUnauthorized)
				return
			}

			parsedToken, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					http.Error(w, "Unauthorized: token expired", http.StatusUnauthorized)
				} else {
					http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				}
				return
			}
			if !parsedToken.Valid {
				http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			claims, ok := parsedToken.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "Unauthorized: invalid token claims", http.StatusUnauthorized)
				return
			}
			if _, ok := claims["sub"]; !ok {
				http.Error(w, "Unauthorized: missing 'sub' claim", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", nil
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", errors.New("invalid authorization header format")
	}
	return strings.TrimPrefix(authHeader, bearerPrefix), nil
}

// UserIDFromContext reads the authenticated user id out of the "sub" claim
// Authenticate stored in the request context.
func UserIDFromContext(ctx context.Context) (int, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return 0, errors.New("user claims not found in context or invalid type")
	}
	sub, ok := claims["sub"]
	if !ok {
		return 0, errors.New("missing 'sub' claim in token")
	}
	subFloat, ok := sub.(float64)
	if !ok {
		return 0, fmt.Errorf("invalid type for 'sub' claim: expected float64, got %T", sub)
	}
	userID := int(subFloat)
	if userID <= 0 {
		return 0, fmt.Errorf("invalid user id in 'sub' claim: %d", userID)
	}
	return userID, nil
}
