// ABOUTME: User sources for the server-side auth helper
// ABOUTME: Loopback goes through the BFF's own /api/users/me; direct calls the upstream client

package serverauth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/edududs/PoliticSystem/internal/client"
	"github.com/edududs/PoliticSystem/models"
	"github.com/edududs/PoliticSystem/services"
)

// LoopbackSource asks the BFF's current-user endpoint, sending the token as
// the access_token cookie. Its behavior matches what a browser would see.
type LoopbackSource struct {
	client *client.Client
}

func NewLoopbackSource(c *client.Client) *LoopbackSource {
	return &LoopbackSource{client: c}
}

func (s *LoopbackSource) FetchUser(ctx context.Context, accessToken string) (*models.User, error) {
	user, err := s.client.CurrentUser(ctx, accessToken)
	if err != nil {
		if client.IsUnauthorized(err) {
			return nil, ErrUnauthorized
		}
		return nil, errors.Wrap(err, "loopback profile lookup")
	}
	return user, nil
}

// DirectSource skips the loopback hop and calls the upstream profile endpoint
type DirectSource struct {
	upstream *services.UpstreamClient
}

func NewDirectSource(upstream *services.UpstreamClient) *DirectSource {
	return &DirectSource{upstream: upstream}
}

func (s *DirectSource) FetchUser(ctx context.Context, accessToken string) (*models.User, error) {
	body, err := s.upstream.CurrentUser(ctx, accessToken)
	if err != nil {
		if services.UpstreamStatus(err) == http.StatusUnauthorized {
			return nil, ErrUnauthorized
		}
		return nil, errors.Wrap(err, "upstream profile lookup")
	}

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, errors.Wrap(err, "failed to decode profile")
	}
	return &user, nil
}
