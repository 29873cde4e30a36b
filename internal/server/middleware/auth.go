// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const (
	userIDKey ContextKey = "userID"
	emailKey  ContextKey = "email"
)

// TokenValidator is an interface for validating bearer tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (Principal, error)
}

// Principal is the identity carried by a validated token. User ids are the
// identity provider's subject strings.
type Principal interface {
	GetUserID() string
	GetEmail() string
}

// AuthMiddleware creates middleware that validates bearer tokens and adds the
// caller's identity to the request context. Failures are answered with a JSON
// 401 before next runs.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			principal, err := validator.ValidateToken(tokenString)
			if err != nil || principal.GetUserID() == "" {
				unauthorized(w)
				return
			}

			ctx := WithUser(r.Context(), principal.GetUserID(), principal.GetEmail())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken parses "Bearer <token>", case-insensitively.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="mindwell"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}

// WithUser returns ctx carrying an authenticated identity.
func WithUser(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, emailKey, email)
}

// GetUserID extracts the authenticated user ID from the request context.
func GetUserID(r *http.Request) (string, error) {
	userID, ok := r.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in request context")
	}
	return userID, nil
}

// GetEmail returns the token's email claim, or "" when the token had none.
func GetEmail(r *http.Request) string {
	email, _ := r.Context().Value(emailKey).(string)
	return email
}
