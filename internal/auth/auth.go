// Package auth resolves the caller of an API request from its bearer token.
package auth

import (
	"context"
	"errors"
	"strings"

	"wealth/internal/core"
)

var (
	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
)

// Identity is what a verifier learns about a token's subject.
type Identity struct {
	ID    string
	Email string
	Name  *string
}

// Verifier checks a bearer token and returns who it belongs to. A rejected
// token yields an error wrapping ErrInvalidToken.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// UserStore persists the resolved identity on every authenticated request.
type UserStore interface {
	UpsertUser(ctx context.Context, u core.User) (core.User, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. Any other scheme yields "".
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" {
		return ""
	}
	return strings.TrimSpace(token)
}

type contextKey struct{}

func NewContext(ctx context.Context, u core.User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext returns the authenticated user stored by Middleware.
func FromContext(ctx context.Context) (core.User, bool) {
	u, ok := ctx.Value(contextKey{}).(core.User)
	return u, ok
}
