// Package storeinfra provides the in-memory cache.Store adapter backed by
// the sturdyc cache client. It is infrastructure, not policy: freshness
// decisions live in cache.Policy; sturdyc's own TTL is only a retention
// bound that keeps the process from hoarding dead records forever.
package storeinfra

import (
	"context"
	"strings"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/goliatone/go-enrichment-cache/cache"
)

// Config holds the configuration for the sturdyc-backed store.
type Config struct {
	// Capacity defines the maximum number of records the store can hold.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent access.
	// Higher values improve concurrency but increase memory overhead.
	// Must be greater than 0. Default: 256
	NumShards int

	// Retention is how long sturdyc keeps a record before evicting it.
	// This is not a freshness rule: it must comfortably exceed the largest
	// policy TTL so the engine, not the backend, decides staleness.
	// Must be greater than 0.
	Retention time.Duration

	// EvictionPercentage specifies what percentage of records to evict
	// when the store reaches capacity. Must be between 1-100.
	// Default: 10
	EvictionPercentage int

	// EvictionInterval sets how often sturdyc checks for expired records.
	// Zero value uses the sturdyc default.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults. The retention of
// seven days exceeds every kind TTL in the enrichment layer (the largest
// is 24 hours), so records age out of policy long before they age out of
// the backend.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          256,
		Retention:          7 * 24 * time.Hour,
		EvictionPercentage: 10,
	}
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.Retention <= 0 {
		return &ConfigError{Field: "Retention", Message: "must be greater than 0"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// MemoryStore implements cache.Store over a sturdyc client.
type MemoryStore[T any] struct {
	client *sturdyc.Client[cache.Record[T]]
}

// NewMemoryStore creates a sturdyc-backed store with the provided
// configuration. It validates the configuration before constructing the
// client.
func NewMemoryStore[T any](cfg Config) (*MemoryStore[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var options []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	client := sturdyc.New[cache.Record[T]](
		cfg.Capacity,
		cfg.NumShards,
		cfg.Retention,
		cfg.EvictionPercentage,
		options...,
	)

	return &MemoryStore[T]{client: client}, nil
}

// Get implements cache.Store.Get. A record evicted by sturdyc and a record
// never written are indistinguishable; both report cache.ErrNotFound.
func (s *MemoryStore[T]) Get(ctx context.Context, key string) (*cache.Record[T], error) {
	rec, ok := s.client.Get(key)
	if !ok {
		return nil, cache.ErrNotFound
	}
	return &rec, nil
}

// Set implements cache.Store.Set with last-write-wins semantics.
func (s *MemoryStore[T]) Set(ctx context.Context, rec cache.Record[T]) error {
	s.client.Set(rec.Key, rec)
	return nil
}

// Delete implements cache.Store.Delete.
func (s *MemoryStore[T]) Delete(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

// DeleteByPrefix implements cache.Store.DeleteByPrefix by scanning the
// client's keys. Useful for invalidating a whole key family (e.g. every
// cached city of one state).
func (s *MemoryStore[T]) DeleteByPrefix(ctx context.Context, prefix string) error {
	for _, key := range s.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			s.client.Delete(key)
		}
	}
	return nil
}
