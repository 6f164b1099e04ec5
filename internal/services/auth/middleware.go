// filepath: internal/services/auth/middleware.go
package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gallerysaver/internal/logging"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const actorKey contextKey = "actor"

// writeError sends a JSON error response.
func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Middleware provides authentication middleware.
type Middleware struct {
	Token        TokenService
	Username     string
	PasswordHash string
}

// NewMiddleware creates a new instance of Middleware. token may be nil when
// only Basic auth is configured.
func NewMiddleware(token TokenService, username, passwordHash string) *Middleware {
	return &Middleware{
		Token:        token,
		Username:     username,
		PasswordHash: passwordHash,
	}
}

// ActorFromContext returns the authenticated caller, or "anonymous".
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey).(string); ok && actor != "" {
		return actor
	}
	return "anonymous"
}

// WithActor stores the authenticated caller in ctx.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// AuthMiddleware is a middleware function that checks for a valid JWT Bearer token OR Basic Auth.
func (m *Middleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			// Tell the client we accept both
			w.Header().Set("WWW-Authenticate", `Basic realm="restricted", Bearer realm="restricted"`)
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		var actor string
		var err error

		// 1. Check for Bearer Token (JWT)
		if strings.HasPrefix(authHeader, "Bearer ") && m.Token != nil {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			actor, err = m.Token.ValidateToken(tokenString)
			if err != nil {
				logging.Log.Warnf("AuthMiddleware: Invalid Bearer token: %v", err)
				if errors.Is(err, jwt.ErrTokenExpired) {
					// Send a specific error for expired tokens
					writeError(w, http.StatusUnauthorized, "Token expired")
				} else {
					writeError(w, http.StatusUnauthorized, "Invalid token")
				}
				return
			}
		} else if strings.HasPrefix(authHeader, "Basic ") && m.PasswordHash != "" {
			// 2. Fallback to Basic Auth
			username, password, ok := r.BasicAuth()
			if !ok {
				writeError(w, http.StatusUnauthorized, "Invalid Basic Auth header")
				return
			}
			if err := m.validateBasicAuth(username, password); err != nil {
				logging.Log.Warnf("AuthMiddleware: Invalid Basic Auth: %v", err)
				writeError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			actor = username
		} else {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// validateBasicAuth is a helper to check username/password against the configured credentials.
func (m *Middleware) validateBasicAuth(username, password string) error {
	if subtle.ConstantTimeCompare([]byte(username), []byte(m.Username)) != 1 {
		return fmt.Errorf("user '%s' not found", username)
	}

	// Compare the provided password with the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)); err != nil {
		return fmt.Errorf("password comparison failed for user '%s'", username)
	}
	return nil
}
