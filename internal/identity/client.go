package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Client talks to a GoTrue-style identity provider over HTTP.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a Client bounded by the given per-call timeout.
func NewClient(baseURL, serviceKey string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// VerifyToken resolves a bearer token to the user it belongs to.
func (c *Client) VerifyToken(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: verify token: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var user User
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return nil, fmt.Errorf("identity: decode user: %w", err)
		}
		return &user, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrInvalidToken
	default:
		return nil, fmt.Errorf("identity: unexpected status %d", resp.StatusCode)
	}
}

// UserByID fetches a user record through the provider's admin API.
func (c *Client) UserByID(ctx context.Context, id string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/admin/users/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: fetch user: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var user User
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return nil, fmt.Errorf("identity: decode user: %w", err)
		}
		return &user, nil
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		return nil, fmt.Errorf("identity: unexpected status %d", resp.StatusCode)
	}
}

// UserByEmail looks a user up by email. Provider failures are reported as
// LookupUnknown rather than an error so callers can degrade gracefully.
func (c *Client) UserByEmail(ctx context.Context, email string) (*User, LookupOutcome) {
	endpoint := c.baseURL + "/auth/v1/admin/users?email=" + url.QueryEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Warn().Err(err).Msg("identity lookup by email failed")
		return nil, LookupUnknown
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", email).Msg("identity lookup by email failed")
		return nil, LookupUnknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("email", email).Msg("identity lookup by email failed")
		return nil, LookupUnknown
	}

	var body struct {
		Users []User `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Warn().Err(err).Msg("identity lookup by email: bad response")
		return nil, LookupUnknown
	}

	if len(body.Users) == 0 {
		return nil, LookupNotFound
	}
	return &body.Users[0], LookupFound
}
