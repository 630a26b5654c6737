// Package prayer serves one generated prayer per calendar day, cached in
// the user's store. Generation failures fall back to a fixed prayer so
// the page always has something to show.
package prayer

import (
	"context"
	"time"

	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/kvstore"
	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

const (
	key       = "prayer:daily"
	dayFormat = "2006-01-02"
)

const fallbackPrayer = "Heavenly Father, thank You for this new day. Guide my steps, " +
	"guard my heart, and help me walk in Your peace. Amen."

// Generator produces a fresh prayer. Implemented by the assistant client.
type Generator interface {
	GeneratePrayer(ctx context.Context) (string, error)
}

// Service hands out the daily prayer.
type Service struct {
	kv  *kvstore.Store
	gen Generator
	now func() time.Time
}

func New(kv *kvstore.Store, gen Generator) *Service {
	return &Service{kv: kv, gen: gen, now: time.Now}
}

// Daily returns today's prayer, generating and caching it on the first
// request of the day. A stale cache entry from a previous day is replaced.
func (s *Service) Daily(ctx context.Context, userID string) (models.DailyPrayer, error) {
	today := s.now().Format(dayFormat)

	var cached models.DailyPrayer
	if err := s.kv.Read(ctx, userID, key, &cached); err == nil && cached.Date == today {
		return cached, nil
	}

	text, err := s.gen.GeneratePrayer(ctx)
	if err != nil || text == "" {
		text = fallbackPrayer
	}

	fresh := models.DailyPrayer{Date: today, Prayer: text}
	if err := s.kv.Write(ctx, userID, key, fresh); err != nil {
		return models.DailyPrayer{}, err
	}
	return fresh, nil
}
