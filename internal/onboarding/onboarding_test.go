package onboarding

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

func TestGetWithoutRecord(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteAppliesDefaults(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Complete(context.Background(), "u1", models.OnboardingData{}, "")
	require.NoError(t, err)

	assert.True(t, got.IsComplete)
	assert.Equal(t, "Friend", got.UserName)
	assert.Equal(t, "en", got.Language)
	assert.False(t, got.LocationAllowed)
	assert.NotNil(t, got.Goals)
	assert.Empty(t, got.Goals)
	assert.NotNil(t, got.Topics)
	assert.Empty(t, got.Topics)
}

func TestCompleteFallsBackToDisplayName(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Complete(context.Background(), "u1", models.OnboardingData{}, "Maria")
	require.NoError(t, err)
	assert.Equal(t, "Maria", got.UserName)
}

func TestCompletePrefersExplicitName(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Complete(context.Background(), "u1", models.OnboardingData{UserName: "Sam"}, "Maria")
	require.NoError(t, err)
	assert.Equal(t, "Sam", got.UserName)
}

func TestCompletePersists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := models.OnboardingData{
		UserName:        "Sam",
		Language:        "es",
		LocationAllowed: true,
		Goals:           []models.Goal{{ID: "g1", Text: "Read daily", IsCustom: false}},
		Topics:          []string{"Faith", "Hope"},
	}
	_, err := s.Complete(ctx, "u1", in, "")
	require.NoError(t, err)

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, got.IsComplete)
	assert.Equal(t, "es", got.Language)
	assert.True(t, got.LocationAllowed)
	assert.Equal(t, in.Goals, got.Goals)
	assert.Equal(t, in.Topics, got.Topics)
}

func TestUpdateNameOnCompletedRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Complete(ctx, "u1", models.OnboardingData{Topics: []string{"Peace"}}, "Maria")
	require.NoError(t, err)

	require.NoError(t, s.UpdateName(ctx, "u1", "Ria"))

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ria", got.UserName)
	// only the name changed
	assert.True(t, got.IsComplete)
	assert.Equal(t, []string{"Peace"}, got.Topics)
}

func TestUpdateNameWithoutRecordIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpdateName(ctx, "u1", "Ria"))

	_, err := s.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Complete(ctx, "u1", models.OnboardingData{}, "Maria")
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx, "u1"))

	_, err = s.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}
