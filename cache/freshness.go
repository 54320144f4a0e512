package cache

import "time"

// Policy decides whether a record's age still qualifies as fresh.
// Freshness is a half-open window: now-updatedAt < TTL is fresh; a record
// exactly TTL old is stale and must be refetched.
type Policy struct {
	// TTL is how long a successful fetch remains servable.
	TTL time.Duration

	// RefreshEmpty treats a fresh record holding an empty payload as stale.
	// Used by kinds where a persisted empty result is presumed to be a
	// prior fetch failure rather than a true negative.
	RefreshEmpty bool
}

// IsFresh reports whether a record updated at updatedAt is still fresh at
// the reference time now.
func (p Policy) IsFresh(updatedAt, now time.Time) bool {
	return now.Sub(updatedAt) < p.TTL
}

// usable reports whether a record can be served without refetching:
// it must be fresh and, under RefreshEmpty, non-empty.
func usable[T any](p Policy, rec *Record[T], now time.Time) bool {
	if rec == nil || !p.IsFresh(rec.UpdatedAt, now) {
		return false
	}
	if p.RefreshEmpty && len(rec.Payload) == 0 {
		return false
	}
	return true
}
