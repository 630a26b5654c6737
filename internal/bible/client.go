// Package bible looks up scripture text from the external verse API.
package bible

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

// ErrUnavailable wraps any transport or upstream failure; handlers degrade
// to fallback content rather than surfacing it.
var ErrUnavailable = errors.New("scripture service unavailable")

// popularVerses feeds the verse-of-the-day rotation.
var popularVerses = []string{
	"John 3:16", "Romans 8:28", "Philippians 4:13", "Proverbs 3:5-6",
	"Jeremiah 29:11", "1 Corinthians 10:13", "Galatians 5:22-23",
}

// Client calls the scripture text API.
type Client struct {
	base string
	http *http.Client
}

func New(base string, timeout time.Duration) *Client {
	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
	}
}

// Passage fetches the text for a verse reference such as "John 3:16" or a
// range such as "Psalm 23:1-4".
func (c *Client) Passage(ctx context.Context, reference string) (models.Passage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.base+"/"+url.PathEscape(reference), nil)
	if err != nil {
		return models.Passage{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Passage{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return models.Passage{}, fmt.Errorf("%w: status %s", ErrUnavailable, resp.Status)
	}

	var p models.Passage
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return models.Passage{}, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return p, nil
}

// VerseOfTheDay fetches a random popular verse.
func (c *Client) VerseOfTheDay(ctx context.Context) (models.Passage, error) {
	ref := popularVerses[rand.Intn(len(popularVerses))]
	return c.Passage(ctx, ref)
}
