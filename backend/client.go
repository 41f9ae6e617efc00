// Package backend is the HTTP client for the export backend's
// authentication endpoint. It is the app's only Authenticator; the app
// itself never opens a database connection.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dbexport/login"
)

// Error is a non-2xx answer from the authentication endpoint. The detail,
// when the endpoint provided one, is shown to the user verbatim.
type Error struct {
	StatusCode int
	detail     string
}

func (e *Error) Error() string {
	if e.detail != "" {
		return fmt.Sprintf("backend: authentication endpoint returned %d: %s", e.StatusCode, e.detail)
	}
	return fmt.Sprintf("backend: authentication endpoint returned %d", e.StatusCode)
}

// Detail returns the human-readable failure detail carried by the response
// body, or "" when the body had none.
func (e *Error) Detail() string { return e.detail }

// Client posts credentials to the backend authentication endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// New builds a client for the given endpoint URL. timeout bounds the whole
// authentication round trip.
func New(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Server   string `json:"server"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success *bool  `json:"success"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// Login implements login.Authenticator. A 2xx answer means success unless
// the body says {"success": false}; 401 and 403 are graceful rejections;
// any other status becomes an *Error carrying the body's detail.
func (c *Client) Login(ctx context.Context, creds login.Credentials) (bool, error) {
	body, err := json.Marshal(loginRequest{
		Server:   creds.Server,
		Database: creds.Database,
		Username: creds.Username,
		Password: creds.Password,
	})
	if err != nil {
		return false, fmt.Errorf("backend: encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("backend: build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("backend: login request: %w", err)
	}
	defer resp.Body.Close()

	// Decode failures are tolerated: an empty or non-JSON body simply
	// carries no success flag and no detail.
	var parsed loginResponse
	_ = json.NewDecoder(resp.Body).Decode(&parsed)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if parsed.Success != nil && !*parsed.Success {
			return false, nil
		}
		return true, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, nil
	default:
		return false, &Error{StatusCode: resp.StatusCode, detail: parsed.failureDetail()}
	}
}

// failureDetail resolves the displayed detail: the "detail" field first,
// then the "message" field some backends use instead.
func (r loginResponse) failureDetail() string {
	if r.Detail != "" {
		return r.Detail
	}
	return r.Message
}
