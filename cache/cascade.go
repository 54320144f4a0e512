package cache

import (
	"context"
	"fmt"
)

// Scope is one rung of a cascading search: the query for that breadth and
// the search radius that accompanies it. Radius is carried for fetchers
// that need it (geographic search APIs); fetchers that don't can ignore it.
type Scope struct {
	Query    string
	RadiusKM int
}

// ScopedFetcher fetches results for a single cascade scope.
type ScopedFetcher[T any] func(ctx context.Context, scope Scope) ([]T, error)

// ResolveCascade tries each scope in order, narrowest first, and returns
// the first non-empty result set. A scope that legitimately has no data is
// not an error; if every scope comes back empty, the empty set is the
// terminal result. A fetch failure at any scope aborts the cascade with an
// error wrapping ErrUpstreamUnavailable.
func ResolveCascade[T any](ctx context.Context, scopes []Scope, fetch ScopedFetcher[T]) ([]T, error) {
	for _, scope := range scopes {
		results, err := fetch(ctx, scope)
		if err != nil {
			return nil, fmt.Errorf("%w: scope %q: %w", ErrUpstreamUnavailable, scope.Query, err)
		}
		if len(results) > 0 {
			return results, nil
		}
	}
	return nil, nil
}
