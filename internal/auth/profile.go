package auth

import (
	"context"
	"errors"

	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/kvstore"
	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

const profileKey = "profile"

// ProfileCache stores the most recently seen copy of the collaborator's
// user profile for session restoration. It is never mutated locally.
type ProfileCache struct {
	kv *kvstore.Store
}

func NewProfileCache(kv *kvstore.Store) *ProfileCache {
	return &ProfileCache{kv: kv}
}

// Save overwrites the cached profile.
func (p *ProfileCache) Save(ctx context.Context, userID string, profile models.UserProfile) error {
	return p.kv.Write(ctx, userID, profileKey, profile)
}

// Get returns the cached profile, with ok false when none is stored.
func (p *ProfileCache) Get(ctx context.Context, userID string) (models.UserProfile, bool, error) {
	var profile models.UserProfile
	err := p.kv.Read(ctx, userID, profileKey, &profile)
	if errors.Is(err, kvstore.ErrNotFound) {
		return models.UserProfile{}, false, nil
	}
	if err != nil {
		return models.UserProfile{}, false, err
	}
	return profile, true, nil
}

// Remove clears the cached profile at logout.
func (p *ProfileCache) Remove(ctx context.Context, userID string) error {
	return p.kv.Delete(ctx, userID, profileKey)
}
