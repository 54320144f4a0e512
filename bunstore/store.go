// Package bunstore persists enrichment records and report ledgers through
// the bun ORM. One table holds every kind's records, partitioned by a kind
// column so cross-kind key interference is impossible; reports live in a
// separate append-only table.
package bunstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-enrichment-cache/cache"
)

// recordRow is the persisted shape of a cache.Record: the derived key, the
// opaque payload as JSON, and the population timestamp. Nothing else is
// required by the engine.
type recordRow struct {
	bun.BaseModel `bun:"table:enrichment_records,alias:er"`

	Kind      string    `bun:"kind,pk"`
	RecordKey string    `bun:"record_key,pk"`
	Payload   []byte    `bun:"payload,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// Store implements cache.Store over a bun database. Each Store instance
// serves one data kind; the kind is the table partition, not part of the
// derived key.
type Store[T any] struct {
	db   bun.IDB
	kind string
}

// NewStore creates a store for the given kind namespace.
func NewStore[T any](db bun.IDB, kind string) *Store[T] {
	return &Store[T]{db: db, kind: kind}
}

// Get implements cache.Store.Get.
func (s *Store[T]) Get(ctx context.Context, key string) (*cache.Record[T], error) {
	var row recordRow
	err := s.db.NewSelect().
		Model(&row).
		Where("kind = ?", s.kind).
		Where("record_key = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cache.ErrNotFound
		}
		return nil, fmt.Errorf("bunstore: selecting record %s/%s: %w", s.kind, key, err)
	}

	var payload []T
	if err := json.Unmarshal(row.Payload, &payload); err != nil {
		return nil, fmt.Errorf("bunstore: decoding payload for %s/%s: %w", s.kind, key, err)
	}
	if payload == nil {
		payload = []T{}
	}

	return &cache.Record[T]{
		Key:       key,
		Payload:   payload,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// Set implements cache.Store.Set with an INSERT ... ON CONFLICT upsert:
// last write wins.
func (s *Store[T]) Set(ctx context.Context, rec cache.Record[T]) error {
	payload := rec.Payload
	if payload == nil {
		payload = []T{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("bunstore: encoding payload for %s/%s: %w", s.kind, rec.Key, err)
	}

	row := recordRow{
		Kind:      s.kind,
		RecordKey: rec.Key,
		Payload:   data,
		UpdatedAt: rec.UpdatedAt,
	}
	_, err = s.db.NewInsert().
		Model(&row).
		On("CONFLICT (kind, record_key) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("bunstore: upserting record %s/%s: %w", s.kind, rec.Key, err)
	}
	return nil
}

// Delete implements cache.Store.Delete. Deleting an absent key is a no-op.
func (s *Store[T]) Delete(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*recordRow)(nil)).
		Where("kind = ?", s.kind).
		Where("record_key = ?", key).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("bunstore: deleting record %s/%s: %w", s.kind, key, err)
	}
	return nil
}

// DeleteByPrefix implements cache.Store.DeleteByPrefix. The prefix is
// escaped so derived keys' underscores are matched literally rather than
// as LIKE wildcards.
func (s *Store[T]) DeleteByPrefix(ctx context.Context, prefix string) error {
	_, err := s.db.NewDelete().
		Model((*recordRow)(nil)).
		Where("kind = ?", s.kind).
		Where("record_key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("bunstore: deleting records %s/%s*: %w", s.kind, prefix, err)
	}
	return nil
}

// escapeLike escapes LIKE metacharacters in s for use with ESCAPE '\'.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
