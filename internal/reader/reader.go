// Package reader remembers where the user left off in scripture.
package reader

import (
	"context"
	"errors"

	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/kvstore"
	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

const key = "reader:lastread"

// firstPage is where a brand-new reader opens.
var firstPage = models.LastRead{Book: "Genesis", Chapter: 1}

// Store keeps the last-read position.
type Store struct {
	kv *kvstore.Store
}

func New(kv *kvstore.Store) *Store {
	return &Store{kv: kv}
}

// LastRead returns the stored position, or the first page of Genesis for
// a user with no record.
func (s *Store) LastRead(ctx context.Context, userID string) (models.LastRead, error) {
	var pos models.LastRead
	err := s.kv.Read(ctx, userID, key, &pos)
	if errors.Is(err, kvstore.ErrNotFound) {
		return firstPage, nil
	}
	if err != nil {
		return models.LastRead{}, err
	}
	return pos, nil
}

// SetLastRead overwrites the stored position.
func (s *Store) SetLastRead(ctx context.Context, userID string, pos models.LastRead) error {
	return s.kv.Write(ctx, userID, key, pos)
}
