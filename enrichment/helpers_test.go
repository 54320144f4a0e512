package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-enrichment-cache/cache"
)

// testStore is an in-memory cache.Store used across the service tests.
type testStore[T any] struct {
	mu      sync.Mutex
	records map[string]cache.Record[T]
}

func newTestStore[T any]() *testStore[T] {
	return &testStore[T]{records: make(map[string]cache.Record[T])}
}

func (s *testStore[T]) Get(ctx context.Context, key string) (*cache.Record[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok {
		return nil, cache.ErrNotFound
	}
	return &rec, nil
}

func (s *testStore[T]) Set(ctx context.Context, rec cache.Record[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Key] = rec
	return nil
}

func (s *testStore[T]) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

func (s *testStore[T]) DeleteByPrefix(ctx context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.records {
		if strings.HasPrefix(key, prefix) {
			delete(s.records, key)
		}
	}
	return nil
}

func (s *testStore[T]) seed(key string, payload []T, updatedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = cache.Record[T]{Key: key, Payload: payload, UpdatedAt: updatedAt}
}

func (s *testStore[T]) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[key]
	return ok
}

// memLedger is an append-only in-memory ReportLedger.
type memLedger struct {
	mu      sync.Mutex
	reports []Report
	clock   cache.Clock
}

func newMemLedger(clock cache.Clock) *memLedger {
	return &memLedger{clock: clock}
}

func (l *memLedger) Append(ctx context.Context, typ ReportType, ownerID string, payload json.RawMessage) (Report, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rep := Report{
		ID:          fmt.Sprintf("r-%d", len(l.reports)+1),
		Type:        typ,
		OwnerID:     ownerID,
		Payload:     payload,
		GeneratedAt: l.clock(),
	}
	l.reports = append(l.reports, rep)
	return rep, nil
}

func (l *memLedger) Latest(ctx context.Context, typ ReportType, ownerID string) (*Report, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var latest *Report
	for i := range l.reports {
		rep := l.reports[i]
		if rep.Type != typ || rep.OwnerID != ownerID {
			continue
		}
		if latest == nil || rep.GeneratedAt.After(latest.GeneratedAt) {
			latest = &l.reports[i]
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (l *memLedger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.reports)
}

func fixedClock(t time.Time) cache.Clock {
	return func() time.Time { return t }
}

// failIfFetched fails the test if the engine reaches upstream.
func failIfFetched[T any](t *testing.T) cache.Fetcher[T] {
	return func(ctx context.Context, scope string) ([]T, error) {
		t.Fatalf("fetcher invoked for scope %q; cached result should have been served", scope)
		return nil, nil
	}
}
