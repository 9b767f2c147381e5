package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"wealth/internal/auth"
	"wealth/internal/core"
	"wealth/internal/log"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorBody{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
	})
}

func isInvalid(err error) bool {
	return errors.Is(err, core.ErrInvalidInput) ||
		errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidCurrency) ||
		errors.Is(err, core.ErrInvalidDate)
}

// respondError maps a store or service error onto a status. notFound is the
// resource-specific message for core.ErrNotFound.
func respondError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case isInvalid(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			log.FieldMethod, r.Method, log.FieldPath, r.URL.Path, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// authFailed is the auth.FailFunc for the API.
func authFailed(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrNoToken):
		writeError(w, http.StatusUnauthorized, "No token provided")
	case errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "Invalid token")
	default:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Authentication failed",
			log.FieldErrorType, log.ErrorTypeAuth, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func rateLimited(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
}
