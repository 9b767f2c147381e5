package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"wealth/internal/auth"
	"wealth/internal/core"
)

func TestWriteErrorShape(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, http.StatusNotFound, "Loan not found")

	if w.Code != http.StatusNotFound {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusNotFound)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := ErrorBody{StatusCode: 404, Message: "Loan not found", Error: "Not Found"}
	if body != want {
		t.Errorf("body = %+v, want %+v", body, want)
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", fmt.Errorf("get loan: %w", core.ErrNotFound), http.StatusNotFound, "Loan not found"},
		{"invalid amount", fmt.Errorf("%w: must not be negative", core.ErrInvalidAmount), http.StatusBadRequest, "invalid amount: must not be negative"},
		{"invalid date", core.ErrInvalidDate, http.StatusBadRequest, "invalid date"},
		{"anything else", errors.New("disk full"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/loans/1", nil)
			respondError(w, r, tt.err, "Loan not found")

			var body ErrorBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if w.Code != tt.status || body.Message != tt.message {
				t.Errorf("got %d %q, want %d %q", w.Code, body.Message, tt.status, tt.message)
			}
		})
	}
}

func TestAuthFailed(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{auth.ErrNoToken, http.StatusUnauthorized},
		{fmt.Errorf("%w: expired", auth.ErrInvalidToken), http.StatusUnauthorized},
		{errors.New("record user: database is locked"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		authFailed(w, httptest.NewRequest(http.MethodGet, "/stocks", nil), tt.err)
		if w.Code != tt.status {
			t.Errorf("%v: status = %d, want %d", tt.err, w.Code, tt.status)
		}
	}
}
