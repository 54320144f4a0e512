package cache

import (
	"context"
	"time"
)

// Record is the unit of persistence: the payload of the most recent
// successful fetch for a key, plus the time it was (re)populated.
// Payload is opaque to the engine; each data kind supplies its own T.
type Record[T any] struct {
	Key       string    `json:"key"`
	Payload   []T       `json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the minimal persistent key→record map the engine needs:
// point lookups and last-write-wins upserts. Implementations are expected
// to be safe for concurrent use. Get returns ErrNotFound when no record
// exists for the key; any other error is a backend failure and is fatal
// to the calling operation.
type Store[T any] interface {
	Get(ctx context.Context, key string) (*Record[T], error)
	Set(ctx context.Context, rec Record[T]) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// Fetcher is the capability call sites inject: an upstream lookup for a
// scope (a derived key, a city, a state, a free-text query). The engine
// never retries and enforces no timeout; cancellation and backoff are the
// fetcher's responsibility.
type Fetcher[T any] func(ctx context.Context, scope string) ([]T, error)
