// Package photos pulls curated stock photos for the clip feed.
package photos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

// ErrUnavailable wraps any transport or upstream failure.
var ErrUnavailable = errors.New("photo service unavailable")

// Client calls the stock-photo API. Requests carry the API key in the
// Authorization header.
type Client struct {
	base   string
	apiKey string
	http   *http.Client
}

func New(base, apiKey string, timeout time.Duration) *Client {
	return &Client{
		base:   base,
		apiKey: apiKey,
		http:   &http.Client{Timeout: timeout},
	}
}

// Curated fetches one page of the curated photo feed.
func (c *Client) Curated(ctx context.Context, page, perPage int) (models.PhotoPage, error) {
	url := fmt.Sprintf("%s/curated?page=%d&per_page=%d", c.base, page, perPage)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.PhotoPage{}, err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return models.PhotoPage{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return models.PhotoPage{}, fmt.Errorf("%w: status %s", ErrUnavailable, resp.Status)
	}

	var p models.PhotoPage
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return models.PhotoPage{}, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return p, nil
}
