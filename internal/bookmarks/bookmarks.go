// Package bookmarks keeps the user's saved verses and clips. Each
// collection is one JSON document: insertion-ordered, idempotent on add,
// tolerant of removes for absent items. Collections stay small (tens of
// items), so whole-document rewrites per mutation are fine.
package bookmarks

import (
	"context"
	"errors"
	"slices"

	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/kvstore"
	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

const (
	verseKey = "bookmarks:verses"
	clipKey  = "bookmarks:clips"
)

// Store gives access to a user's bookmark collections.
type Store struct {
	kv *kvstore.Store
}

func New(kv *kvstore.Store) *Store {
	return &Store{kv: kv}
}

// Verses lists bookmarked verse references in insertion order.
func (s *Store) Verses(ctx context.Context, userID string) ([]string, error) {
	var refs []string
	err := s.kv.Read(ctx, userID, verseKey, &refs)
	if errors.Is(err, kvstore.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// AddVerse appends a verse reference. Adding an already-present reference
// is a no-op.
func (s *Store) AddVerse(ctx context.Context, userID, reference string) error {
	return kvstore.Update(ctx, s.kv, userID, verseKey, func(refs []string, _ bool) ([]string, error) {
		if slices.Contains(refs, reference) {
			return nil, kvstore.ErrSkip
		}
		return append(refs, reference), nil
	})
}

// RemoveVerse filters a reference out. Removing an absent one is a no-op.
func (s *Store) RemoveVerse(ctx context.Context, userID, reference string) error {
	return kvstore.Update(ctx, s.kv, userID, verseKey, func(refs []string, found bool) ([]string, error) {
		if !found {
			return nil, kvstore.ErrSkip
		}
		return slices.DeleteFunc(refs, func(r string) bool { return r == reference }), nil
	})
}

// HasVerse reports whether a reference is bookmarked.
func (s *Store) HasVerse(ctx context.Context, userID, reference string) (bool, error) {
	refs, err := s.Verses(ctx, userID)
	if err != nil {
		return false, err
	}
	return slices.Contains(refs, reference), nil
}

// Clips lists bookmarked clip snapshots in insertion order.
func (s *Store) Clips(ctx context.Context, userID string) ([]models.Clip, error) {
	var clips []models.Clip
	err := s.kv.Read(ctx, userID, clipKey, &clips)
	if errors.Is(err, kvstore.ErrNotFound) {
		return []models.Clip{}, nil
	}
	if err != nil {
		return nil, err
	}
	return clips, nil
}

// AddClip stores a full clip snapshot. Adding a clip whose id is already
// present is a no-op.
func (s *Store) AddClip(ctx context.Context, userID string, clip models.Clip) error {
	return kvstore.Update(ctx, s.kv, userID, clipKey, func(clips []models.Clip, _ bool) ([]models.Clip, error) {
		for _, c := range clips {
			if c.ID == clip.ID {
				return nil, kvstore.ErrSkip
			}
		}
		return append(clips, clip), nil
	})
}

// RemoveClip filters a clip out by id. Removing an absent one is a no-op.
func (s *Store) RemoveClip(ctx context.Context, userID, clipID string) error {
	return kvstore.Update(ctx, s.kv, userID, clipKey, func(clips []models.Clip, found bool) ([]models.Clip, error) {
		if !found {
			return nil, kvstore.ErrSkip
		}
		return slices.DeleteFunc(clips, func(c models.Clip) bool { return c.ID == clipID }), nil
	})
}

// HasClip reports whether a clip id is bookmarked.
func (s *Store) HasClip(ctx context.Context, userID, clipID string) (bool, error) {
	clips, err := s.Clips(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, c := range clips {
		if c.ID == clipID {
			return true, nil
		}
	}
	return false, nil
}
