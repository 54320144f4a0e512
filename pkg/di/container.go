// Package di provides dependency injection for the enrichment cache
// components: it manages the shared key deriver and storage backend, and
// exposes factory functions for the per-kind services.
package di

import (
	"errors"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-enrichment-cache/bunstore"
	"github.com/goliatone/go-enrichment-cache/cache"
	"github.com/goliatone/go-enrichment-cache/enrichment"
	"github.com/goliatone/go-enrichment-cache/internal/storeinfra"
)

// Container wires the cache engine's collaborators. It holds either a bun
// database (persistent records, report ledger available) or an in-memory
// store configuration (per-kind sturdyc stores, no ledger).
type Container struct {
	db      *bun.DB
	memCfg  storeinfra.Config
	deriver cache.KeyDeriver
}

// NewMemoryContainer creates a container whose stores live in process
// memory. Each kind gets its own sturdyc client, so key namespaces never
// overlap.
func NewMemoryContainer(cfg storeinfra.Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Container{
		memCfg:  cfg,
		deriver: cache.NewDefaultKeyDeriver(),
	}, nil
}

// NewMemoryContainerWithDefaults is a convenience constructor for typical
// use cases where custom store configuration is not required.
func NewMemoryContainerWithDefaults() (*Container, error) {
	return NewMemoryContainer(storeinfra.DefaultConfig())
}

// NewBunContainer creates a container backed by a bun database. The caller
// owns the database lifecycle (bunstore.OpenSQLite / OpenPostgres and
// bunstore.CreateTables).
func NewBunContainer(db *bun.DB) *Container {
	return &Container{
		db:      db,
		deriver: cache.NewDefaultKeyDeriver(),
	}
}

// KeyDeriver returns the singleton key deriver instance.
func (c *Container) KeyDeriver() cache.KeyDeriver {
	return c.deriver
}

// NewStore creates a store for one kind against the container's backend.
//
// Since Go methods cannot have type parameters, this is provided as a
// package-level function.
func NewStore[T any](c *Container, kind enrichment.KindConfig) (cache.Store[T], error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if c.db != nil {
		return bunstore.NewStore[T](c.db, kind.Kind), nil
	}
	return storeinfra.NewMemoryStore[T](c.memCfg)
}

// NewTemporalCache creates a kind-configured cache against the container's
// backend.
func NewTemporalCache[T any](c *Container, kind enrichment.KindConfig) (*cache.TemporalCache[T], error) {
	store, err := NewStore[T](c, kind)
	if err != nil {
		return nil, err
	}
	return cache.NewTemporalCache(store, kind.Policy()), nil
}

// NewEventService wires the nearby-event service to its upstream fetcher.
func NewEventService(c *Container, fetch enrichment.EventFetcher) (*enrichment.EventService, error) {
	tc, err := NewTemporalCache[enrichment.Event](c, enrichment.EventKind())
	if err != nil {
		return nil, err
	}
	return enrichment.NewEventService(tc, c.deriver, fetch), nil
}

// NewSchemeService wires the government-scheme service to its upstream
// fetcher.
func NewSchemeService(c *Container, fetch enrichment.SchemeFetcher) (*enrichment.SchemeService, error) {
	tc, err := NewTemporalCache[enrichment.Scheme](c, enrichment.SchemeKind())
	if err != nil {
		return nil, err
	}
	return enrichment.NewSchemeService(tc, c.deriver, fetch), nil
}

// NewMaterialService wires the raw-material service to its upstream
// fetcher.
func NewMaterialService(c *Container, fetch enrichment.MaterialFetcher) (*enrichment.MaterialService, error) {
	tc, err := NewTemporalCache[enrichment.Material](c, enrichment.MaterialKind())
	if err != nil {
		return nil, err
	}
	return enrichment.NewMaterialService(tc, c.deriver, fetch), nil
}

// NewReportService wires the AI-report service to its generator. The
// ledger is an audit trail, so it requires the persistent backend.
func NewReportService(c *Container, generate enrichment.Generator) (*enrichment.ReportService, error) {
	if c.db == nil {
		return nil, errors.New("di: report ledger requires a database-backed container")
	}
	return enrichment.NewReportService(bunstore.NewLedger(c.db), generate), nil
}
