package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	"wealth/internal/core"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def", "abc.def"},
		{"Bearer  padded ", "padded"},
		{"bearer abc", ""},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := BearerToken(tt.header); got != tt.want {
			t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims supabaseClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, &claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestJWTVerifier(t *testing.T) {
	const secret = "super-secret-jwt-token"
	v := NewJWTVerifier(secret)
	future := time.Now().Add(time.Hour).Unix()

	valid := signToken(t, secret, jwt.SigningMethodHS256, supabaseClaims{
		Email:          "ayse@example.com",
		UserMetadata:   map[string]any{"name": "Ayşe"},
		StandardClaims: jwt.StandardClaims{Subject: "user-1", ExpiresAt: future, Audience: "authenticated"},
	})
	id, err := v.Verify(context.Background(), valid)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.ID != "user-1" || id.Email != "ayse@example.com" || id.Name == nil || *id.Name != "Ayşe" {
		t.Errorf("identity = %+v", id)
	}

	rejected := map[string]string{
		"wrong secret": signToken(t, "other", jwt.SigningMethodHS256, supabaseClaims{
			StandardClaims: jwt.StandardClaims{Subject: "user-1", ExpiresAt: future}}),
		"expired": signToken(t, secret, jwt.SigningMethodHS256, supabaseClaims{
			StandardClaims: jwt.StandardClaims{Subject: "user-1", ExpiresAt: time.Now().Add(-time.Minute).Unix()}}),
		"no subject": signToken(t, secret, jwt.SigningMethodHS256, supabaseClaims{
			StandardClaims: jwt.StandardClaims{ExpiresAt: future}}),
		"garbage": "not-a-jwt",
	}
	for name, tok := range rejected {
		t.Run(name, func(t *testing.T) {
			if _, err := v.Verify(context.Background(), tok); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestSupabaseVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" || r.Header.Get("apikey") != "service-key" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch r.Header.Get("Authorization") {
		case "Bearer good":
			fmt.Fprint(w, `{"id":"u-42","email":"mehmet@example.com","user_metadata":{"name":"Mehmet"}}`)
		case "Bearer anonymous":
			fmt.Fprint(w, `{"id":"u-43","email":"x@example.com","user_metadata":{}}`)
		default:
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"msg":"invalid JWT"}`)
		}
	}))
	defer srv.Close()

	v := NewSupabaseVerifier(srv.URL+"/", "service-key", srv.Client())

	id, err := v.Verify(context.Background(), "good")
	if err != nil {
		t.Fatal(err)
	}
	if id.ID != "u-42" || id.Email != "mehmet@example.com" || *id.Name != "Mehmet" {
		t.Errorf("identity = %+v", id)
	}

	id, err = v.Verify(context.Background(), "anonymous")
	if err != nil || id.Name != nil {
		t.Errorf("identity = %+v, err = %v", id, err)
	}

	if _, err := v.Verify(context.Background(), "bad"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v", err)
	}
}

type staticVerifier map[string]Identity

func (s staticVerifier) Verify(_ context.Context, token string) (Identity, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return Identity{}, ErrInvalidToken
}

type recordingStore struct {
	upserts []core.User
	err     error
}

func (s *recordingStore) UpsertUser(_ context.Context, u core.User) (core.User, error) {
	if s.err != nil {
		return core.User{}, s.err
	}
	s.upserts = append(s.upserts, u)
	return u, nil
}

func TestMiddleware(t *testing.T) {
	verifier := staticVerifier{"tok": {ID: "u1", Email: "u1@example.com"}}

	tests := []struct {
		name       string
		header     string
		storeErr   error
		wantStatus int
		wantErr    error
	}{
		{"missing header", "", nil, http.StatusUnauthorized, ErrNoToken},
		{"wrong scheme", "Token tok", nil, http.StatusUnauthorized, ErrNoToken},
		{"rejected token", "Bearer nope", nil, http.StatusUnauthorized, ErrInvalidToken},
		{"store failure", "Bearer tok", errors.New("disk full"), http.StatusInternalServerError, nil},
		{"ok", "Bearer tok", nil, http.StatusOK, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &recordingStore{err: tt.storeErr}
			var failErr error
			fail := func(w http.ResponseWriter, r *http.Request, err error) {
				failErr = err
				if errors.Is(err, ErrNoToken) || errors.Is(err, ErrInvalidToken) {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				w.WriteHeader(http.StatusInternalServerError)
			}
			var seen core.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = FromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/stocks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			Middleware(verifier, store, fail)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantErr != nil && !errors.Is(failErr, tt.wantErr) {
				t.Errorf("fail err = %v, want %v", failErr, tt.wantErr)
			}
			if tt.wantStatus == http.StatusOK {
				if seen.ID != "u1" || len(store.upserts) != 1 {
					t.Errorf("user = %+v, upserts = %d", seen, len(store.upserts))
				}
			}
		})
	}
}

func TestFromContext_Empty(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("empty context should carry no user")
	}
}
