// Package clips composes the swipeable feed: curated photos from the
// photo collaborator, zipped with a rotating verse overlay.
package clips

import (
	"context"
	"fmt"

	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

// PhotoSource yields one page of curated photos.
type PhotoSource interface {
	Curated(ctx context.Context, page, perPage int) (models.PhotoPage, error)
}

// Service builds clip pages.
type Service struct {
	photos  PhotoSource
	perPage int
}

func NewService(photos PhotoSource, perPage int) *Service {
	if perPage <= 0 {
		perPage = 5
	}
	return &Service{photos: photos, perPage: perPage}
}

// Feed returns one page of clips. The verse rotation index continues
// across pages, so page boundaries never repeat a verse out of turn. The
// clip id is "{photoID}-{verseIndex}", the composite the bookmark store
// keys on.
func (s *Service) Feed(ctx context.Context, page int) ([]models.Clip, error) {
	if page < 1 {
		page = 1
	}
	pp, err := s.photos.Curated(ctx, page, s.perPage)
	if err != nil {
		return nil, err
	}

	clips := make([]models.Clip, 0, len(pp.Photos))
	offset := (page - 1) * s.perPage
	for i, photo := range pp.Photos {
		verseIndex := (offset + i) % len(clipVerses)
		clips = append(clips, models.Clip{
			ID:    fmt.Sprintf("%d-%d", photo.ID, verseIndex),
			Photo: photo,
			Verse: clipVerses[verseIndex],
		})
	}
	return clips, nil
}
