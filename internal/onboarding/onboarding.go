// Package onboarding stores the one-time setup record collected by the
// welcome wizard. Completion is a one-way latch in the normal flow; the
// record is cleared when the session ends.
package onboarding

import (
	"context"
	"errors"

	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/kvstore"
	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

const key = "onboarding"

const (
	defaultName     = "Friend"
	defaultLanguage = "en"
)

// ErrNotFound is returned when the user has no onboarding record.
var ErrNotFound = errors.New("onboarding record not found")

// Store reads and mutates a user's onboarding record.
type Store struct {
	kv *kvstore.Store
}

func New(kv *kvstore.Store) *Store {
	return &Store{kv: kv}
}

// Get returns the stored record, or ErrNotFound.
func (s *Store) Get(ctx context.Context, userID string) (models.OnboardingData, error) {
	var data models.OnboardingData
	err := s.kv.Read(ctx, userID, key, &data)
	if errors.Is(err, kvstore.ErrNotFound) {
		return models.OnboardingData{}, ErrNotFound
	}
	if err != nil {
		return models.OnboardingData{}, err
	}
	return data, nil
}

// Complete merges the supplied fields over defaults, latches isComplete
// and persists the full record. The user name falls back to the
// authenticated display name, then to "Friend".
func (s *Store) Complete(ctx context.Context, userID string, partial models.OnboardingData, displayName string) (models.OnboardingData, error) {
	final := models.OnboardingData{
		IsComplete:      true,
		UserName:        partial.UserName,
		Language:        partial.Language,
		LocationAllowed: partial.LocationAllowed,
		Goals:           partial.Goals,
		Topics:          partial.Topics,
	}
	if final.UserName == "" {
		final.UserName = displayName
	}
	if final.UserName == "" {
		final.UserName = defaultName
	}
	if final.Language == "" {
		final.Language = defaultLanguage
	}
	if final.Goals == nil {
		final.Goals = []models.Goal{}
	}
	if final.Topics == nil {
		final.Topics = []string{}
	}

	if err := s.kv.Write(ctx, userID, key, final); err != nil {
		return models.OnboardingData{}, err
	}
	return final, nil
}

// UpdateName changes only the user name on an existing record. With no
// record present it is a no-op.
func (s *Store) UpdateName(ctx context.Context, userID, name string) error {
	return kvstore.Update(ctx, s.kv, userID, key, func(cur models.OnboardingData, found bool) (models.OnboardingData, error) {
		if !found {
			return cur, kvstore.ErrSkip
		}
		cur.UserName = name
		return cur, nil
	})
}

// Clear removes the record. Called when the authenticated session ends.
func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.kv.Delete(ctx, userID, key)
}
