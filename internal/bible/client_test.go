package bible

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/John%203:16", r.URL.EscapedPath())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"reference": "John 3:16",
			"verses": [{"book_id":"JHN","book_name":"John","chapter":3,"verse":16,"text":"For God so loved the world..."}],
			"text": "For God so loved the world...",
			"translation_id": "web",
			"translation_name": "World English Bible"
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	got, err := c.Passage(context.Background(), "John 3:16")
	require.NoError(t, err)
	assert.Equal(t, "John 3:16", got.Reference)
	require.Len(t, got.Verses, 1)
	assert.Equal(t, "John", got.Verses[0].BookName)
	assert.Equal(t, 16, got.Verses[0].Verse)
	assert.Equal(t, "web", got.TranslationID)
}

func TestPassageUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Passage(context.Background(), "Nope 1:1")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPassageMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Passage(context.Background(), "John 3:16")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestVerseOfTheDayUsesPopularRotation(t *testing.T) {
	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte(`{"reference":"x","verses":[],"text":"t","translation_id":"web"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.VerseOfTheDay(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, requested)
}
