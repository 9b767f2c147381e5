package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SupabaseVerifier asks the Supabase Auth server who a token belongs to.
type SupabaseVerifier struct {
	baseURL    string
	serviceKey string
	http       *http.Client
}

func NewSupabaseVerifier(baseURL, serviceKey string, httpClient *http.Client) *SupabaseVerifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &SupabaseVerifier{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		http:       httpClient,
	}
}

type supabaseUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return Identity{}, fmt.Errorf("build supabase request: %w", err)
	}
	req.Header.Set("apikey", v.serviceKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.http.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: supabase unreachable: %v", ErrInvalidToken, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return Identity{}, fmt.Errorf("%w: supabase status %d", ErrInvalidToken, resp.StatusCode)
	}

	var u supabaseUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return Identity{}, fmt.Errorf("%w: decode supabase user: %v", ErrInvalidToken, err)
	}
	if u.ID == "" {
		return Identity{}, fmt.Errorf("%w: supabase user has no id", ErrInvalidToken)
	}
	return Identity{ID: u.ID, Email: u.Email, Name: metadataName(u.UserMetadata)}, nil
}

func metadataName(meta map[string]any) *string {
	if name, ok := meta["name"].(string); ok && name != "" {
		return &name
	}
	return nil
}
