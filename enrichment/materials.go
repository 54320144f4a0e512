package enrichment

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-enrichment-cache/cache"
)

// MaterialFetcher looks up raw-material suppliers for a normalized
// free-text query key.
type MaterialFetcher = cache.Fetcher[Material]

// MaterialService serves raw-material searches keyed by normalized
// free-text query. Its cache is expected to carry MaterialKind().Policy();
// unlike schemes, a cached empty result is served as-is until TTL expiry.
type MaterialService struct {
	cache   *cache.TemporalCache[Material]
	deriver cache.KeyDeriver
	fetch   MaterialFetcher
	keys    *xsync.MapOf[string, struct{}]
}

// NewMaterialService wires a material cache to its upstream fetcher.
func NewMaterialService(tc *cache.TemporalCache[Material], deriver cache.KeyDeriver, fetch MaterialFetcher) *MaterialService {
	return &MaterialService{
		cache:   tc,
		deriver: deriver,
		fetch:   fetch,
		keys:    xsync.NewMapOf[string, struct{}](),
	}
}

// Search returns suppliers matching the free-text query.
func (s *MaterialService) Search(ctx context.Context, query string, forceRefresh bool) ([]Material, error) {
	key := s.deriver.DeriveKey(query)
	s.keys.Store(key, struct{}{})
	return s.cache.Get(ctx, key, forceRefresh, s.fetch)
}

// Invalidate drops the cached result for one query.
func (s *MaterialService) Invalidate(ctx context.Context, query string) error {
	key := s.deriver.DeriveKey(query)
	s.keys.Delete(key)
	return s.cache.Invalidate(ctx, key)
}

// InvalidateAll drops every cached result this service has produced.
func (s *MaterialService) InvalidateAll(ctx context.Context) error {
	var firstErr error
	s.keys.Range(func(key string, _ struct{}) bool {
		if err := s.cache.Invalidate(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
		s.keys.Delete(key)
		return true
	})
	return firstErr
}
