package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	return New(db)
}

type doc struct {
	Items []string `json:"items"`
}

func TestReadAbsentKey(t *testing.T) {
	s := newTestStore(t)

	var out doc
	err := s.Read(context.Background(), "u1", "missing", &out)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := doc{Items: []string{"John 3:16", "Psalm 23:1"}}
	require.NoError(t, s.Write(ctx, "u1", "bookmarks:verses", in))

	var out doc
	require.NoError(t, s.Read(ctx, "u1", "bookmarks:verses", &out))
	assert.Equal(t, in, out)
}

func TestWriteOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "u1", "k", doc{Items: []string{"a", "b"}}))
	require.NoError(t, s.Write(ctx, "u1", "k", doc{Items: []string{"c"}}))

	var out doc
	require.NoError(t, s.Read(ctx, "u1", "k", &out))
	assert.Equal(t, []string{"c"}, out.Items)
}

func TestDocumentsAreScopedPerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "u1", "k", doc{Items: []string{"mine"}}))

	var out doc
	err := s.Read(ctx, "u2", "k", &out)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMalformedValueTreatedAsAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_documents(user_id, key, value) VALUES('u1', 'k', 'not json')`)
	require.NoError(t, err)

	var out doc
	assert.ErrorIs(t, s.Read(ctx, "u1", "k", &out), ErrNotFound)
}

func TestForeignSchemaVersionTreatedAsAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_documents(user_id, key, value) VALUES('u1', 'k', '{"v":99,"data":{"items":[]}}')`)
	require.NoError(t, err)

	var out doc
	assert.ErrorIs(t, s.Read(ctx, "u1", "k", &out), ErrNotFound)

	// an update over an unreadable document starts from zero
	err = Update(ctx, s, "u1", "k", func(cur doc, found bool) (doc, error) {
		assert.False(t, found)
		cur.Items = append(cur.Items, "fresh")
		return cur, nil
	})
	require.NoError(t, err)

	require.NoError(t, s.Read(ctx, "u1", "k", &out))
	assert.Equal(t, []string{"fresh"}, out.Items)
}

func TestUpdateReplacesMalformedDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// a corrupt row occupies the key; mutations must still land on it
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_documents(user_id, key, value) VALUES('u1', 'k', 'not json')`)
	require.NoError(t, err)

	err = Update(ctx, s, "u1", "k", func(cur doc, found bool) (doc, error) {
		assert.False(t, found)
		cur.Items = append(cur.Items, "recovered")
		return cur, nil
	})
	require.NoError(t, err)

	var out doc
	require.NoError(t, s.Read(ctx, "u1", "k", &out))
	assert.Equal(t, []string{"recovered"}, out.Items)

	var count int
	require.NoError(t, s.db.QueryRow(
		`SELECT COUNT(*) FROM user_documents WHERE user_id='u1' AND key='k'`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUpdateCreatesAbsentDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := Update(ctx, s, "u1", "k", func(cur doc, found bool) (doc, error) {
		assert.False(t, found)
		return doc{Items: []string{"first"}}, nil
	})
	require.NoError(t, err)

	var out doc
	require.NoError(t, s.Read(ctx, "u1", "k", &out))
	assert.Equal(t, []string{"first"}, out.Items)
}

func TestUpdateMutatesExistingDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Write(ctx, "u1", "k", doc{Items: []string{"a"}}))

	err := Update(ctx, s, "u1", "k", func(cur doc, found bool) (doc, error) {
		assert.True(t, found)
		cur.Items = append(cur.Items, "b")
		return cur, nil
	})
	require.NoError(t, err)

	var out doc
	require.NoError(t, s.Read(ctx, "u1", "k", &out))
	assert.Equal(t, []string{"a", "b"}, out.Items)
}

func TestUpdateSkipLeavesStateUntouched(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Write(ctx, "u1", "k", doc{Items: []string{"keep"}}))

	err := Update(ctx, s, "u1", "k", func(cur doc, found bool) (doc, error) {
		return doc{}, ErrSkip
	})
	require.NoError(t, err)

	var out doc
	require.NoError(t, s.Read(ctx, "u1", "k", &out))
	assert.Equal(t, []string{"keep"}, out.Items)
}

func TestUpdateBumpsVersionStamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "u1", "k", doc{Items: []string{"a"}}))
	err := Update(ctx, s, "u1", "k", func(cur doc, found bool) (doc, error) {
		return cur, nil
	})
	require.NoError(t, err)

	var version int64
	require.NoError(t, s.db.QueryRow(
		`SELECT version FROM user_documents WHERE user_id='u1' AND key='k'`).Scan(&version))
	assert.Equal(t, int64(2), version)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "u1", "k", doc{Items: []string{"a"}}))
	require.NoError(t, s.Delete(ctx, "u1", "k"))
	require.NoError(t, s.Delete(ctx, "u1", "k"))

	var out doc
	assert.ErrorIs(t, s.Read(ctx, "u1", "k", &out), ErrNotFound)
}

func TestDeleteAllClearsOnlyOneUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "u1", "a", doc{Items: []string{"x"}}))
	require.NoError(t, s.Write(ctx, "u1", "b", doc{Items: []string{"y"}}))
	require.NoError(t, s.Write(ctx, "u2", "a", doc{Items: []string{"z"}}))

	require.NoError(t, s.DeleteAll(ctx, "u1"))

	var out doc
	assert.ErrorIs(t, s.Read(ctx, "u1", "a", &out), ErrNotFound)
	assert.ErrorIs(t, s.Read(ctx, "u1", "b", &out), ErrNotFound)
	require.NoError(t, s.Read(ctx, "u2", "a", &out))
	assert.Equal(t, []string{"z"}, out.Items)
}
