// Package ownerclient implements the HTTP client for the external user
// registry consulted at account-creation time.
package ownerclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/bankingapp/account-service/internal/domain"
)

const requestTimeout = 5 * time.Second

// Client calls the user registry service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the registry at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Get returns the owner summary for the given id.
//
// A missing owner maps to domain.ErrOwnerNotFound; any transport or server
// failure maps to domain.ErrOwnerRegistryUnavailable so account creation can
// distinguish "no such user" from "could not ask".
func (c *Client) Get(ctx context.Context, ownerID int64) (domain.OwnerSummary, error) {
	l := zerolog.Ctx(ctx)

	var owner domain.OwnerSummary

	url := fmt.Sprintf("%s/api/users/%d", c.baseURL, ownerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return owner, domain.ErrOwnerRegistryUnavailable
	}

	res, err := c.http.Do(req)
	if err != nil {
		l.Error().Err(err).Str("url", url).Send()
		return owner, domain.ErrOwnerRegistryUnavailable
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return owner, domain.ErrOwnerNotFound
	case res.StatusCode != http.StatusOK:
		l.Error().Int("status_code", res.StatusCode).Str("url", url).Send()
		return owner, domain.ErrOwnerRegistryUnavailable
	}

	if err := json.NewDecoder(res.Body).Decode(&owner); err != nil {
		l.Error().Err(err).Send()
		return owner, domain.ErrOwnerRegistryUnavailable
	}

	return owner, nil
}
