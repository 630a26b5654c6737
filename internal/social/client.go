// Package social consumes the backend-as-a-service community feed as a
// black box: list published clips, insert a new one. Shapes only; the
// feed's storage and moderation are the collaborator's business.
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

// ErrUnavailable wraps any transport or upstream failure.
var ErrUnavailable = errors.New("community feed unavailable")

// Client calls the community-feed REST endpoint.
type Client struct {
	base    string
	anonKey string
	http    *http.Client
}

func New(base, anonKey string, timeout time.Duration) *Client {
	return &Client{
		base:    base,
		anonKey: anonKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether a feed backend is configured. Without one the
// community surface degrades to an empty feed.
func (c *Client) Enabled() bool {
	return c.base != ""
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("Content-Type", "application/json")
}

// ListClips fetches the community clips, newest first.
func (c *Client) ListClips(ctx context.Context) ([]models.CommunityClip, error) {
	url := c.base + "/rest/v1/clips?select=*&order=created_at.desc"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %s", ErrUnavailable, resp.Status)
	}

	var clips []models.CommunityClip
	if err := json.NewDecoder(resp.Body).Decode(&clips); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return clips, nil
}

// PublishClip inserts a clip into the community feed. The id and creation
// time are assigned by the collaborator.
func (c *Client) PublishClip(ctx context.Context, clip models.CommunityClip) error {
	clip.ID = ""
	clip.CreatedAt = ""
	body, err := json.Marshal(clip)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/rest/v1/clips", bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %s", ErrUnavailable, resp.Status)
	}
	return nil
}
