package plans

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
	return NewStore(kvstore.New(db))
}

func testPlan(id string, days int) models.Plan {
	p := models.Plan{
		ID:          id,
		Title:       "Finding Peace",
		Duration:    "7-Day Plan",
		Description: "Peace that anchors the heart.",
	}
	for d := 1; d <= days; d++ {
		p.Content = append(p.Content, models.DailyContent{
			Day:       d,
			Title:     "The Source of Peace",
			Scripture: "John 14:27",
			Body:      "Jesus offers a peace the world cannot give.",
			Prayer:    "Lord, help me rest in Your presence.",
		})
	}
	return p
}

func TestSaveAndIsSaved(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "u1", testPlan("finding-peace", 7)))

	saved, err := s.IsSaved(ctx, "u1", "finding-peace")
	require.NoError(t, err)
	assert.True(t, saved)
}

func TestSaveSamePlanTwiceDoesNotDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "u1", testPlan("finding-peace", 7)))
	require.NoError(t, s.Save(ctx, "u1", testPlan("finding-peace", 7)))

	saved, err := s.Saved(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestSavedPlanIsAFullCopy(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	plan := testPlan("finding-peace", 2)

	require.NoError(t, s.Save(ctx, "u1", plan))

	got, ok, err := s.GetSaved(ctx, "u1", "finding-peace")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, plan, got)
}

func TestRemoveSavedPlan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "u1", testPlan("finding-peace", 7)))
	require.NoError(t, s.Remove(ctx, "u1", "finding-peace"))

	saved, err := s.IsSaved(ctx, "u1", "finding-peace")
	require.NoError(t, err)
	assert.False(t, saved)

	// removing again is fine
	require.NoError(t, s.Remove(ctx, "u1", "finding-peace"))
}

func TestProgressDefaultsToNotStarted(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Progress(context.Background(), "u1", "finding-peace")
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentDay)
}

func TestStartFreshPlan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.Start(ctx, "u1", "finding-peace")
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentDay)
}

func TestDoubleStartDoesNotReset(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Start(ctx, "u1", "finding-peace")
	require.NoError(t, err)
	_, err = s.Advance(ctx, "u1", "finding-peace", 1, 7)
	require.NoError(t, err)

	got, err := s.Start(ctx, "u1", "finding-peace")
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentDay)
}

func TestStartAfterCompletionIsANoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Start(ctx, "u1", "p")
	require.NoError(t, err)
	_, err = s.Advance(ctx, "u1", "p", 1, 1)
	require.NoError(t, err)

	got, err := s.Start(ctx, "u1", "p")
	require.NoError(t, err)
	assert.Equal(t, CompletedDay, got.CurrentDay)
}

func TestAdvanceThroughPlan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Start(ctx, "u1", "p")
	require.NoError(t, err)

	for day := 1; day < 3; day++ {
		got, err := s.Advance(ctx, "u1", "p", day, 3)
		require.NoError(t, err)
		assert.Equal(t, day+1, got.CurrentDay)
	}
}

func TestAdvancePastFinalDayCompletes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Start(ctx, "u1", "p")
	require.NoError(t, err)
	_, err = s.Advance(ctx, "u1", "p", 1, 3)
	require.NoError(t, err)
	_, err = s.Advance(ctx, "u1", "p", 2, 3)
	require.NoError(t, err)

	got, err := s.Advance(ctx, "u1", "p", 3, 3)
	require.NoError(t, err)
	assert.Equal(t, CompletedDay, got.CurrentDay)

	stored, err := s.Progress(ctx, "u1", "p")
	require.NoError(t, err)
	assert.Equal(t, CompletedDay, stored.CurrentDay)
}

func TestAdvanceUnstartedPlanIsSilentlyIgnored(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.Advance(ctx, "u1", "never-started", 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentDay)

	stored, err := s.Progress(ctx, "u1", "never-started")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.CurrentDay)
}

func TestAdvanceWithStaleFromDayIsIgnored(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Start(ctx, "u1", "p")
	require.NoError(t, err)
	_, err = s.Advance(ctx, "u1", "p", 1, 7)
	require.NoError(t, err)

	// a second advance from day 1 no longer matches the stored state
	got, err := s.Advance(ctx, "u1", "p", 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentDay)
}

func TestAdvanceCompletedPlanIsIgnored(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Start(ctx, "u1", "p")
	require.NoError(t, err)
	_, err = s.Advance(ctx, "u1", "p", 1, 1)
	require.NoError(t, err)

	got, err := s.Advance(ctx, "u1", "p", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, CompletedDay, got.CurrentDay)
}

func TestProgressIsIndependentPerPlan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Start(ctx, "u1", "a")
	require.NoError(t, err)
	_, err = s.Advance(ctx, "u1", "a", 1, 5)
	require.NoError(t, err)
	_, err = s.Start(ctx, "u1", "b")
	require.NoError(t, err)

	all, err := s.AllProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, all["a"].CurrentDay)
	assert.Equal(t, 1, all["b"].CurrentDay)
}
