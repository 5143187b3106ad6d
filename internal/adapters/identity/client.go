// Package identity is the client for the external account service. The
// coordinator only ever asks it for display names; failures degrade, they
// never block an operation.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"watchroom/internal/domain"
)

var (
	ErrUnconfigured = errors.New("identity service not configured")
	ErrNotFound     = errors.New("identity not found")
)

type Client struct {
	base string
	http *http.Client

	mu    sync.RWMutex
	cache map[domain.UserRef]string
}

func NewClient(base string) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		http:  &http.Client{Timeout: 2 * time.Second},
		cache: make(map[domain.UserRef]string),
	}
}

func (c *Client) ResolveDisplayName(ctx context.Context, ref domain.UserRef) (string, error) {
	if c.base == "" {
		return "", ErrUnconfigured
	}

	c.mu.RLock()
	name, ok := c.cache[ref]
	c.mu.RUnlock()
	if ok {
		return name, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/users/"+url.PathEscape(string(ref)), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identity service status %d", resp.StatusCode)
	}

	var body struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode identity response: %w", err)
	}
	name = strings.TrimSpace(body.FirstName + " " + body.LastName)
	if name == "" {
		return "", ErrNotFound
	}
	u, err := domain.NewUser(ref, name)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.cache[ref] = u.DisplayName
	c.mu.Unlock()
	return u.DisplayName, nil
}
