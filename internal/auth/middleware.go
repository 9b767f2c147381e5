package auth

import (
	"fmt"
	"net/http"

	"wealth/internal/core"
)

// FailFunc writes the response for a request that could not be authenticated.
// err wraps ErrNoToken, ErrInvalidToken or a storage failure.
type FailFunc func(w http.ResponseWriter, r *http.Request, err error)

// Middleware requires a valid bearer token, records the caller in the user
// store and stores the resulting user in the request context.
func Middleware(verifier Verifier, users UserStore, fail FailFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				fail(w, r, ErrNoToken)
				return
			}

			id, err := verifier.Verify(r.Context(), token)
			if err != nil {
				fail(w, r, err)
				return
			}

			user, err := users.UpsertUser(r.Context(), core.User{ID: id.ID, Email: id.Email, Name: id.Name})
			if err != nil {
				fail(w, r, fmt.Errorf("record user: %w", err))
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), user)))
		})
	}
}
