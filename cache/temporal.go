package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Clock abstracts time.Now so freshness boundaries can be tested
// deterministically.
type Clock func() time.Time

// TemporalCache orchestrates the read-check-fetch-write sequence shared by
// every enrichment call site: serve a fresh record without touching the
// upstream, refetch when the record is missing, stale, or a refresh is
// forced, and persist the result for the next caller.
//
// There is no single-flight de-duplication: two concurrent requests for the
// same stale key may both observe staleness, both invoke the fetcher, and
// both upsert. Last write wins. Results are idempotent reads from a third
// party, so this is a cost inefficiency rather than a correctness bug.
type TemporalCache[T any] struct {
	store  Store[T]
	policy Policy
	clock  Clock
}

// NewTemporalCache creates a cache that evaluates freshness against the
// wall clock.
func NewTemporalCache[T any](store Store[T], policy Policy) *TemporalCache[T] {
	return NewTemporalCacheWithClock(store, policy, time.Now)
}

// NewTemporalCacheWithClock creates a cache with an injected clock.
func NewTemporalCacheWithClock[T any](store Store[T], policy Policy, clock Clock) *TemporalCache[T] {
	if clock == nil {
		clock = time.Now
	}
	return &TemporalCache[T]{
		store:  store,
		policy: policy,
		clock:  clock,
	}
}

// Policy returns the freshness policy the cache was configured with.
func (c *TemporalCache[T]) Policy() Policy {
	return c.policy
}

// Get returns the payload for key, fetching from upstream only when needed.
//
// With forceRefresh false, a stored record that satisfies the freshness
// policy is returned unchanged and the fetcher is never invoked; this is
// the dominant cost-saving path. Otherwise the fetcher is called with key
// as its scope and, on success, the result (including an empty result) is
// upserted under key.
//
// On fetcher failure Get returns an error wrapping ErrUpstreamUnavailable
// and leaves any existing record untouched; it never serves stale data
// automatically. Store failures propagate unchanged.
func (c *TemporalCache[T]) Get(ctx context.Context, key string, forceRefresh bool, fetch Fetcher[T]) ([]T, error) {
	if !forceRefresh {
		rec, err := c.lookup(ctx, key)
		if err != nil {
			return nil, err
		}
		if usable(c.policy, rec, c.clock()) {
			return rec.Payload, nil
		}
	}

	fetched, err := fetch(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	return c.persist(ctx, key, fetched)
}

// GetWithCascade behaves like Get, but a refresh resolves the ordered scope
// cascade instead of a single fetch. The cache key is always the one passed
// in (derived from the narrowest requested scope), even when the payload
// came from a broader fallback scope: a city with no local results caches
// the fallback under the city's key until TTL expiry.
func (c *TemporalCache[T]) GetWithCascade(ctx context.Context, key string, forceRefresh bool, scopes []Scope, fetch ScopedFetcher[T]) ([]T, error) {
	if !forceRefresh {
		rec, err := c.lookup(ctx, key)
		if err != nil {
			return nil, err
		}
		if usable(c.policy, rec, c.clock()) {
			return rec.Payload, nil
		}
	}

	resolved, err := ResolveCascade(ctx, scopes, fetch)
	if err != nil {
		return nil, err
	}
	return c.persist(ctx, key, resolved)
}

// Invalidate removes the record for key, forcing the next Get to refetch.
func (c *TemporalCache[T]) Invalidate(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}

// lookup reads the record for key, mapping a store miss to a nil record.
func (c *TemporalCache[T]) lookup(ctx context.Context, key string) (*Record[T], error) {
	rec, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// persist upserts the fetched payload under key. A nil payload is stored as
// an empty one so that "upstream answered with nothing" survives the
// round-trip as an empty record rather than an absent one.
func (c *TemporalCache[T]) persist(ctx context.Context, key string, payload []T) ([]T, error) {
	if payload == nil {
		payload = []T{}
	}
	rec := Record[T]{
		Key:       key,
		Payload:   payload,
		UpdatedAt: c.clock(),
	}
	if err := c.store.Set(ctx, rec); err != nil {
		return nil, err
	}
	return payload, nil
}
