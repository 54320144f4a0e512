// Package cache implements a staleness-bounded enrichment cache: a
// read-check-fetch-write engine that wraps slow, rate-limited, cost-bearing
// upstream lookups (LLM calls, web-search APIs) behind a persistent
// key→record store with per-kind freshness policies.
//
// # Overview
//
// The package exports four cooperating pieces:
//
//   - Store: the minimal persistent map the engine needs (point get,
//     last-write-wins set, delete). Backends live elsewhere; see the
//     bunstore package for SQL persistence and internal/storeinfra for the
//     in-memory adapter.
//   - Policy: the freshness rule. A record is fresh while now-updatedAt is
//     strictly less than the TTL; a record exactly TTL old is stale.
//   - KeyDeriver: normalizes logical requests (queries, locations) into
//     stable cache keys.
//   - TemporalCache: the orchestrator tying the three together with an
//     injected Fetcher.
//
// # Basic Usage
//
//	store := storeinfra-backed or bunstore-backed Store[Event]
//	tc := cache.NewTemporalCache(store, cache.Policy{TTL: 6 * time.Hour})
//
//	events, err := tc.Get(ctx, key, false, func(ctx context.Context, scope string) ([]Event, error) {
//		return searchClient.Nearby(ctx, scope)
//	})
//
// A fresh record is served without invoking the fetcher. A missing or
// stale record (or forceRefresh=true) triggers the fetch, and the result
// is upserted under the key. Empty results are cached like any other;
// Policy.RefreshEmpty opts a kind out of that for cases where a persisted
// empty payload is presumed to be a prior fetch failure.
//
// # Cascading scopes
//
// Searches whose narrow scope may legitimately return nothing can resolve
// an ordered cascade of progressively broader scopes instead of a single
// fetch:
//
//	scopes := []cache.Scope{{"pune", 50}, {"maharashtra", 200}, {"india", 1000}}
//	events, err := tc.GetWithCascade(ctx, key, false, scopes, fetchByScope)
//
// The first non-empty scope wins and later scopes are never invoked. The
// result is cached under the narrowest scope's key even when it came from
// a broader fallback.
//
// # Error Handling
//
// A fetcher failure surfaces as an error wrapping ErrUpstreamUnavailable
// and leaves the prior record untouched — the engine never serves stale
// data automatically and never merges old and new payloads. Store failures
// propagate unchanged. Cascade exhaustion is not an error.
//
// # Concurrency
//
// Each Get is an independent operation; concurrent misses for the same key
// may fetch twice and upsert twice (last write wins). Single-flight
// de-duplication is deliberately out of scope.
package cache
