package cache

import "errors"

// ErrNotFound indicates a requested record is missing from the store.
var ErrNotFound = errors.New("cache: record not found")

// ErrUpstreamUnavailable indicates the injected fetcher failed. The cached
// record, if any, is left untouched; callers decide whether to surface the
// error or serve stale data themselves.
var ErrUpstreamUnavailable = errors.New("cache: upstream unavailable")
