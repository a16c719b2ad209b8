package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	models "cinestash/src/modules/enrichment/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrCacheMiss is returned by SharedCache implementations for absent keys.
var ErrCacheMiss = errors.New("cache miss")

// SharedCache is an optional second tier shared between replicas.
type SharedCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type genreEntry struct {
	names     map[int]string
	fetchedAt time.Time
}

// GenreCache holds at most one genre list per kind, refreshed once it is
// older than the TTL. Concurrent refreshes of a kind share one fetch.
type GenreCache struct {
	ttl    time.Duration
	shared SharedCache
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries map[models.Kind]genreEntry
	flight  singleflight.Group
}

func NewGenreCache(ttl time.Duration, shared SharedCache, logger *zap.Logger) *GenreCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenreCache{
		ttl:     ttl,
		shared:  shared,
		logger:  logger,
		now:     time.Now,
		entries: map[models.Kind]genreEntry{},
	}
}

// Names returns the id→name map for kind, calling fetch on a miss or expiry.
func (g *GenreCache) Names(ctx context.Context, kind models.Kind, fetch func(context.Context) ([]models.Genre, error)) (map[int]string, error) {
	if names, ok := g.fresh(kind); ok {
		return names, nil
	}

	v, err, _ := g.flight.Do(string(kind), func() (interface{}, error) {
		if names, ok := g.fresh(kind); ok {
			return names, nil
		}
		genres, err := g.load(ctx, kind, fetch)
		if err != nil {
			return nil, err
		}
		names := make(map[int]string, len(genres))
		for _, genre := range genres {
			names[genre.ID] = genre.Name
		}
		g.mu.Lock()
		g.entries[kind] = genreEntry{names: names, fetchedAt: g.now()}
		g.mu.Unlock()
		return names, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[int]string), nil
}

func (g *GenreCache) fresh(kind models.Kind) (map[int]string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	entry, ok := g.entries[kind]
	if !ok || g.now().Sub(entry.fetchedAt) >= g.ttl {
		return nil, false
	}
	return entry.names, true
}

func (g *GenreCache) load(ctx context.Context, kind models.Kind, fetch func(context.Context) ([]models.Genre, error)) ([]models.Genre, error) {
	key := "genres:" + string(kind)
	if g.shared != nil {
		raw, err := g.shared.Get(ctx, key)
		if err == nil {
			var genres []models.Genre
			if jsonErr := json.Unmarshal(raw, &genres); jsonErr == nil {
				g.logger.Debug("genre list from shared cache", zap.String("kind", string(kind)))
				return genres, nil
			}
		} else if !errors.Is(err, ErrCacheMiss) {
			g.logger.Warn("shared genre cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	genres, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	g.logger.Info("refreshed genre list", zap.String("kind", string(kind)), zap.Int("count", len(genres)))

	if g.shared != nil {
		if raw, err := json.Marshal(genres); err == nil {
			if err := g.shared.Set(ctx, key, raw, g.ttl); err != nil {
				g.logger.Warn("shared genre cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return genres, nil
}
