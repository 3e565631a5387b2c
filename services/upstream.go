// ABOUTME: HTTP client for the upstream identity/profile API
// ABOUTME: Credential exchange, logout notification, profile fetch and user listing

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/edududs/PoliticSystem/metrics"
	"github.com/edududs/PoliticSystem/models"
)

// Upstream operation names, used in errors and metrics
const (
	OpTokenPair = "token_pair"
	OpLogout    = "logout"
	OpUsersMe   = "users_me"
	OpUsersList = "users_list"
)

// maxErrorBody bounds how much of an upstream error body is kept for logs
const maxErrorBody = 2048

// UpstreamObserver receives one observation per upstream call
type UpstreamObserver interface {
	ObserveUpstream(op, outcome string)
}

// UpstreamClient talks to the external API. It performs exactly one attempt per
// call and relies on the caller's context for cancellation.
type UpstreamClient struct {
	baseURL  string
	client   *http.Client
	observer UpstreamObserver
}

// NewUpstreamClient creates a client for baseURL. An empty baseURL yields a
// client whose every operation returns ErrNotConfigured.
func NewUpstreamClient(baseURL string, httpClient *http.Client, observer UpstreamObserver) *UpstreamClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &UpstreamClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   httpClient,
		observer: observer,
	}
}

// Configured reports whether a base URL is set
func (c *UpstreamClient) Configured() bool {
	return c != nil && c.baseURL != ""
}

// ObtainTokenPair exchanges credentials for an access/refresh token pair
func (c *UpstreamClient) ObtainTokenPair(ctx context.Context, username, password string) (*models.TokenPair, error) {
	payload, err := json.Marshal(models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode credentials")
	}

	body, err := c.do(ctx, OpTokenPair, http.MethodPost, "/token/pair", "", payload)
	if err != nil {
		return nil, err
	}

	var pair models.TokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		return nil, &UpstreamError{Op: OpTokenPair, Err: errors.Wrap(err, "failed to parse token response")}
	}
	if pair.Access == "" {
		return nil, &UpstreamError{Op: OpTokenPair, Err: errors.New("token response has no access token")}
	}

	return &pair, nil
}

// Logout notifies the upstream that the bearer token's session ended
func (c *UpstreamClient) Logout(ctx context.Context, accessToken string) error {
	_, err := c.do(ctx, OpLogout, http.MethodPost, "/auth/logout", accessToken, []byte("{}"))
	return err
}

// CurrentUser fetches the bearer's profile and returns the body verbatim
func (c *UpstreamClient) CurrentUser(ctx context.Context, accessToken string) (json.RawMessage, error) {
	body, err := c.do(ctx, OpUsersMe, http.MethodGet, "/users/me", accessToken, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// ListUsers fetches the user collection and returns the body verbatim
func (c *UpstreamClient) ListUsers(ctx context.Context) (json.RawMessage, error) {
	body, err := c.do(ctx, OpUsersList, http.MethodGet, "/users/", "", nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// do performs a single request. Non-2xx responses become *UpstreamError carrying
// the status and a truncated body.
func (c *UpstreamClient) do(ctx context.Context, op, method, path, bearer string, payload []byte) ([]byte, error) {
	if !c.Configured() {
		c.observe(op, metrics.OutcomeUnconfigured)
		return nil, ErrNotConfigured
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s request", op)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.observe(op, metrics.OutcomeNetworkErr)
		return nil, &UpstreamError{Op: op, Err: errors.Wrap(err, "request failed")}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(op, metrics.OutcomeNetworkErr)
		return nil, &UpstreamError{Op: op, Err: errors.Wrap(err, "failed to read response")}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(op, metrics.OutcomeHTTPError)
		return nil, &UpstreamError{Op: op, StatusCode: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
	}

	c.observe(op, metrics.OutcomeOK)
	return body, nil
}

func (c *UpstreamClient) observe(op, outcome string) {
	if c != nil && c.observer != nil {
		c.observer.ObserveUpstream(op, outcome)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
