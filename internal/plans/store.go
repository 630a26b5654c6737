package plans

import (
	"context"
	"errors"

	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/kvstore"
	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

const (
	savedKey    = "plans:saved"
	progressKey = "plans:progress"
)

// CompletedDay is the CurrentDay sentinel for a finished plan.
const CompletedDay = -1

// Store keeps each user's saved plans and plan progress.
type Store struct {
	kv *kvstore.Store
}

func NewStore(kv *kvstore.Store) *Store {
	return &Store{kv: kv}
}

// Saved lists the user's saved plan copies in insertion order.
func (s *Store) Saved(ctx context.Context, userID string) ([]models.Plan, error) {
	var saved []models.Plan
	err := s.kv.Read(ctx, userID, savedKey, &saved)
	if errors.Is(err, kvstore.ErrNotFound) {
		return []models.Plan{}, nil
	}
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Save stores a full copy of the plan document, so later edits to a
// built-in plan never retroactively change a saved one. Saving an
// already-saved id is a no-op.
func (s *Store) Save(ctx context.Context, userID string, plan models.Plan) error {
	return kvstore.Update(ctx, s.kv, userID, savedKey, func(saved []models.Plan, _ bool) ([]models.Plan, error) {
		for _, p := range saved {
			if p.ID == plan.ID {
				return nil, kvstore.ErrSkip
			}
		}
		return append(saved, plan), nil
	})
}

// Remove drops a saved plan by id. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, userID, planID string) error {
	return kvstore.Update(ctx, s.kv, userID, savedKey, func(saved []models.Plan, found bool) ([]models.Plan, error) {
		if !found {
			return nil, kvstore.ErrSkip
		}
		kept := saved[:0]
		for _, p := range saved {
			if p.ID != planID {
				kept = append(kept, p)
			}
		}
		return kept, nil
	})
}

// IsSaved reports whether the user has saved the plan.
func (s *Store) IsSaved(ctx context.Context, userID, planID string) (bool, error) {
	saved, err := s.Saved(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, p := range saved {
		if p.ID == planID {
			return true, nil
		}
	}
	return false, nil
}

// GetSaved returns one saved plan copy by id.
func (s *Store) GetSaved(ctx context.Context, userID, planID string) (models.Plan, bool, error) {
	saved, err := s.Saved(ctx, userID)
	if err != nil {
		return models.Plan{}, false, err
	}
	for _, p := range saved {
		if p.ID == planID {
			return p, true, nil
		}
	}
	return models.Plan{}, false, nil
}

// Progress returns the progress record for one plan. A plan with no
// record is not started (CurrentDay 0).
func (s *Store) Progress(ctx context.Context, userID, planID string) (models.PlanProgress, error) {
	all, err := s.AllProgress(ctx, userID)
	if err != nil {
		return models.PlanProgress{}, err
	}
	return all[planID], nil
}

// AllProgress returns the progress map for every plan the user touched.
func (s *Store) AllProgress(ctx context.Context, userID string) (map[string]models.PlanProgress, error) {
	var all map[string]models.PlanProgress
	err := s.kv.Read(ctx, userID, progressKey, &all)
	if errors.Is(err, kvstore.ErrNotFound) {
		return map[string]models.PlanProgress{}, nil
	}
	if err != nil {
		return nil, err
	}
	return all, nil
}

// Start moves a not-started plan to day 1. A plan that is already in
// progress or completed keeps its state; double-start never resets.
func (s *Store) Start(ctx context.Context, userID, planID string) (models.PlanProgress, error) {
	var result models.PlanProgress
	err := kvstore.Update(ctx, s.kv, userID, progressKey, func(all map[string]models.PlanProgress, _ bool) (map[string]models.PlanProgress, error) {
		if cur, ok := all[planID]; ok && cur.CurrentDay != 0 {
			result = cur
			return nil, kvstore.ErrSkip
		}
		if all == nil {
			all = map[string]models.PlanProgress{}
		}
		result = models.PlanProgress{CurrentDay: 1}
		all[planID] = result
		return all, nil
	})
	if err != nil {
		return models.PlanProgress{}, err
	}
	return result, nil
}

// Advance moves a plan from InProgress(fromDay) to the next day, or marks
// it completed when fromDay is the final day of totalDays. Any invalid
// transition, including advancing a plan that was never started or a
// stale fromDay, keeps the stored state and reports it back unchanged.
func (s *Store) Advance(ctx context.Context, userID, planID string, fromDay, totalDays int) (models.PlanProgress, error) {
	var result models.PlanProgress
	err := kvstore.Update(ctx, s.kv, userID, progressKey, func(all map[string]models.PlanProgress, found bool) (map[string]models.PlanProgress, error) {
		cur, ok := all[planID]
		result = cur
		if !found || !ok || cur.CurrentDay <= 0 || cur.CurrentDay != fromDay {
			return nil, kvstore.ErrSkip
		}
		if fromDay+1 <= totalDays {
			result = models.PlanProgress{CurrentDay: fromDay + 1}
		} else {
			result = models.PlanProgress{CurrentDay: CompletedDay}
		}
		all[planID] = result
		return all, nil
	})
	if err != nil {
		return models.PlanProgress{}, err
	}
	return result, nil
}
