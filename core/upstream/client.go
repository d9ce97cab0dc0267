// Package upstream is a typed client for the account API that owns
// registration, sessions, users and the interests catalog.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"yildizli-agac-api/core/logger"

	"golang.org/x/oauth2"
)

// ErrNetwork wraps transport failures and timeouts. Callers may retry.
var ErrNetwork = errors.New("upstream: network failure")

// APIError is a response that arrived but was not a success envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream: status %d: %s", e.Status, e.Message)
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type User struct {
	ID        int64  `json:"id"`
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	LastLogin string `json:"lastLogin"`
	Approved  bool   `json:"approved"`
	Gender    string `json:"gender"`
}

type Interest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RegisterRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FirstName   string  `json:"firstName,omitempty"`
	LastName    string  `json:"lastName,omitempty"`
	Gender      string  `json:"gender"`
	InterestIDs []int64 `json:"interestIds,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient swaps the underlying transport, mainly for httptest servers.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.httpClient = h
	return c
}

func (c *Client) Register(ctx context.Context, req *RegisterRequest) (string, error) {
	return do[json.RawMessage](ctx, c, http.MethodPost, "/api/v1/auth/register", nil, req, "", nil)
}

func (c *Client) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	var out LoginResult
	if _, err := do(ctx, c, http.MethodPost, "/api/v1/auth/login", nil, req, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := do[json.RawMessage](ctx, c, http.MethodPost, "/api/v1/auth/logout", nil, nil, token, nil)
	return err
}

func (c *Client) Verify(ctx context.Context, verificationToken string) (string, error) {
	q := url.Values{"token": {verificationToken}}
	return do[json.RawMessage](ctx, c, http.MethodPost, "/api/v1/auth/verify", q, nil, "", nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	q := url.Values{"email": {email}}
	return do[json.RawMessage](ctx, c, http.MethodPost, "/api/v1/auth/forgotPassword", q, nil, "", nil)
}

func (c *Client) GetCurrentUser(ctx context.Context, token string) (*User, error) {
	var out User
	if _, err := do(ctx, c, http.MethodGet, "/api/v1/users/getCurrentUser", nil, nil, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAllInterests(ctx context.Context) ([]Interest, error) {
	var out []Interest
	if _, err := do(ctx, c, http.MethodGet, "/api/v1/interests/getAllInterests", nil, nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// client returns an http.Client that injects the bearer token, if any.
func (c *Client) client(ctx context.Context, token string) *http.Client {
	if token == "" {
		return c.httpClient
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
	hc.Timeout = c.timeout
	return hc
}

// do performs one request and decodes the envelope into out. It returns the
// envelope message, which some endpoints use as their only payload.
func do[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any, token string, out *T) (string, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return "", err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.client(ctx, token).Do(req)
	if err != nil {
		logger.Warn("Upstream:Do:Transport", "method", method, "path", path, "error", err)
		return "", fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	logger.Debug("Upstream:Do", "method", method, "path", path, "status", resp.StatusCode,
		"duration_ms", time.Since(started).Milliseconds())

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		*out = env.Data
	}
	return env.Message, nil
}
