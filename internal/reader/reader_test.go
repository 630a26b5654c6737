package reader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/kvstore"
	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/database"
	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	return New(kvstore.New(db))
}

func TestLastReadDefaultsToGenesisOne(t *testing.T) {
	s := newTestStore(t)

	got, err := s.LastRead(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.LastRead{Book: "Genesis", Chapter: 1}, got)
}

func TestSetAndGetLastRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetLastRead(ctx, "u1", models.LastRead{Book: "Psalms", Chapter: 23}))

	got, err := s.LastRead(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.LastRead{Book: "Psalms", Chapter: 23}, got)
}

func TestSetOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetLastRead(ctx, "u1", models.LastRead{Book: "John", Chapter: 3}))
	require.NoError(t, s.SetLastRead(ctx, "u1", models.LastRead{Book: "John", Chapter: 4}))

	got, err := s.LastRead(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Chapter)
}
