// Package streak derives the "consecutive days visited" counter from the
// date of the previous visit. Dates are local-timezone calendar days;
// time of day is discarded.
package streak

import (
	"context"
	"errors"
	"time"

	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/kvstore"
	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

const (
	key       = "streak"
	dayFormat = "2006-01-02"
)

// Tracker recomputes a user's streak once per app load.
type Tracker struct {
	kv  *kvstore.Store
	now func() time.Time
}

func New(kv *kvstore.Store) *Tracker {
	return &Tracker{kv: kv, now: time.Now}
}

// Touch records a visit and returns the resulting streak.
//
// Rules: no prior record starts at 1; a second visit on the same day
// changes nothing; a visit exactly one day after the last increments the
// count; any other gap, including a recorded visit in the future after a
// clock rollback, resets the count to 1.
func (t *Tracker) Touch(ctx context.Context, userID string) (models.StreakData, error) {
	today := t.now().Format(dayFormat)

	var result models.StreakData
	err := kvstore.Update(ctx, t.kv, userID, key, func(cur models.StreakData, found bool) (models.StreakData, error) {
		if !found {
			result = models.StreakData{Count: 1, LastVisit: today}
			return result, nil
		}
		switch daysBetween(cur.LastVisit, today) {
		case 0:
			result = cur
			return cur, kvstore.ErrSkip
		case 1:
			result = models.StreakData{Count: cur.Count + 1, LastVisit: today}
		default:
			result = models.StreakData{Count: 1, LastVisit: today}
		}
		return result, nil
	})
	if err != nil {
		return models.StreakData{}, err
	}
	return result, nil
}

// Current returns the stored streak without recording a visit. A user with
// no record yet has a zero streak.
func (t *Tracker) Current(ctx context.Context, userID string) (models.StreakData, error) {
	var cur models.StreakData
	err := t.kv.Read(ctx, userID, key, &cur)
	if errors.Is(err, kvstore.ErrNotFound) {
		return models.StreakData{}, nil
	}
	if err != nil {
		return models.StreakData{}, err
	}
	return cur, nil
}

// daysBetween counts whole calendar days from a stored visit date to
// today. Both dates are parsed at UTC midnight so the difference is an
// exact day count regardless of DST. An unparseable stored date counts as
// an arbitrary large gap, so the caller resets.
func daysBetween(from, to string) int {
	a, err := time.Parse(dayFormat, from)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	b, err := time.Parse(dayFormat, to)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return int(b.Sub(a) / (24 * time.Hour))
}
