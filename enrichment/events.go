package enrichment

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-enrichment-cache/cache"
)

// EventFetcher looks up events for one cascade scope (a city, a state, or
// the country, with its search radius).
type EventFetcher = cache.ScopedFetcher[Event]

// EventService serves nearby-event searches through the cache engine with
// the event kind's cascade: city (50km) → state (200km) → country (1000km).
type EventService struct {
	cache   *cache.TemporalCache[Event]
	deriver cache.KeyDeriver
	fetch   EventFetcher
	keys    *xsync.MapOf[string, struct{}]
}

// NewEventService wires an event cache to its upstream fetcher. The cache
// is expected to carry EventKind().Policy().
func NewEventService(tc *cache.TemporalCache[Event], deriver cache.KeyDeriver, fetch EventFetcher) *EventService {
	return &EventService{
		cache:   tc,
		deriver: deriver,
		fetch:   fetch,
		keys:    xsync.NewMapOf[string, struct{}](),
	}
}

// Nearby returns events near the given city (state optional), serving a
// fresh cached result when one exists. The cache key derives from the
// narrowest requested scope: a city with no local events caches the
// broader fallback under the city's key, so subsequent requests skip the
// cascade until TTL expiry.
func (s *EventService) Nearby(ctx context.Context, city, state string, forceRefresh bool) ([]Event, error) {
	key := s.deriver.DeriveKey(city, state)
	s.keys.Store(key, struct{}{})
	return s.cache.GetWithCascade(ctx, key, forceRefresh, EventScopes(city, state), s.fetch)
}

// Invalidate drops the cached result for one location.
func (s *EventService) Invalidate(ctx context.Context, city, state string) error {
	key := s.deriver.DeriveKey(city, state)
	s.keys.Delete(key)
	return s.cache.Invalidate(ctx, key)
}

// InvalidateAll drops every cached result this service has produced.
func (s *EventService) InvalidateAll(ctx context.Context) error {
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
