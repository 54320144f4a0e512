package enrichment

import (
	"context"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-enrichment-cache/cache"
)

// SchemeFetcher looks up government schemes for a normalized state key.
type SchemeFetcher = cache.Fetcher[Scheme]

// SchemeService serves government-scheme searches. Its cache must carry
// SchemeKind().Policy(): the kind's RefreshEmpty override means a cached
// empty result inside the TTL is refetched rather than served.
type SchemeService struct {
	cache   *cache.TemporalCache[Scheme]
	deriver cache.KeyDeriver
	fetch   SchemeFetcher
	keys    *xsync.MapOf[string, struct{}]
}

// NewSchemeService wires a scheme cache to its upstream fetcher.
func NewSchemeService(tc *cache.TemporalCache[Scheme], deriver cache.KeyDeriver, fetch SchemeFetcher) *SchemeService {
	return &SchemeService{
		cache:   tc,
		deriver: deriver,
		fetch:   fetch,
		keys:    xsync.NewMapOf[string, struct{}](),
	}
}

// Search returns schemes for the given state, defaulting to the country
// when no state is provided. There is no cascade: the single scope is the
// state itself.
func (s *SchemeService) Search(ctx context.Context, state string, forceRefresh bool) ([]Scheme, error) {
	if strings.TrimSpace(state) == "" {
		state = DefaultCountry
	}
	key := s.deriver.DeriveKey(state)
	s.keys.Store(key, struct{}{})
	return s.cache.Get(ctx, key, forceRefresh, s.fetch)
}

// Invalidate drops the cached result for one state.
func (s *SchemeService) Invalidate(ctx context.Context, state string) error {
	if strings.TrimSpace(state) == "" {
		state = DefaultCountry
	}
	key := s.deriver.DeriveKey(state)
	s.keys.Delete(key)
	return s.cache.Invalidate(ctx, key)
}

// InvalidateAll drops every cached result this service has produced.
func (s *SchemeService) InvalidateAll(ctx context.Context) error {
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
