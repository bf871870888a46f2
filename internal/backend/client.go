// Package backend is the thin client for the external REST auth backend.
// It only maps wire outcomes onto the session error taxonomy; identity
// normalization happens in the session resolver.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Agricultural-portal/Frontend-sub001/internal/identity"
	"github.com/Agricultural-portal/Frontend-sub001/internal/session"
)

// Client talks to the auth backend over HTTP.
type Client struct {
	base string
	http *http.Client
}

// NewClient builds a backend client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a login payload. A 401/403 maps to
// ErrInvalidCredentials carrying the backend's message; transport failures
// and undecodable bodies map to ErrNetwork.
func (c *Client) Login(ctx context.Context, email, password string) (session.LoginResponse, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return session.LoginResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return session.LoginResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return session.LoginResponse{}, fmt.Errorf("%w: %v", identity.ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var payload session.LoginResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return session.LoginResponse{}, fmt.Errorf("%w: decode login response: %v", identity.ErrNetwork, err)
		}
		return payload, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		var failure errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		if failure.Message == "" {
			failure.Message = "login rejected"
		}
		return session.LoginResponse{}, fmt.Errorf("%w: %s", identity.ErrInvalidCredentials, failure.Message)
	default:
		return session.LoginResponse{}, fmt.Errorf("%w: unexpected status %d", identity.ErrNetwork, resp.StatusCode)
	}
}
