package enrichment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-enrichment-cache/cache"
)

func newMaterialService(store cache.Store[Material], now time.Time, fetch MaterialFetcher) *MaterialService {
	tc := cache.NewTemporalCacheWithClock(store, MaterialKind().Policy(), fixedClock(now))
	return NewMaterialService(tc, cache.NewDefaultKeyDeriver(), fetch)
}

func TestMaterialService_QueryNormalization(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore[Material]()

	svc := newMaterialService(store, now, func(ctx context.Context, key string) ([]Material, error) {
		return []Material{{Name: "Cotton Yarn", Supplier: "Surat Textiles"}}, nil
	})

	if _, err := svc.Search(context.Background(), "Organic  Cotton Yarn", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.has("organic_cotton_yarn") {
		t.Error("expected record under the normalized free-text key")
	}

	// Differently spaced/cased spellings of the same query hit the same record.
	materials, err := svc.Search(context.Background(), "  ORGANIC cotton\tYARN ", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(materials) != 1 || materials[0].Supplier != "Surat Textiles" {
		t.Errorf("expected cache hit for equivalent query spelling, got %v", materials)
	}
}

func TestMaterialService_UpstreamFailureSurfacesAndPreservesRecord(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore[Material]()
	store.seed("brass_sheet", []Material{{Name: "Brass Sheet"}}, now.Add(-48*time.Hour))

	svc := newMaterialService(store, now, func(ctx context.Context, key string) ([]Material, error) {
		return nil, errors.New("search api down")
	})

	_, err := svc.Search(context.Background(), "Brass Sheet", false)
	if !errors.Is(err, cache.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
	if !store.has("brass_sheet") {
		t.Error("stale record must survive an upstream failure")
	}
}

func TestMaterialService_Invalidate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore[Material]()
	store.seed("brass_sheet", []Material{{Name: "Brass Sheet"}}, now)

	svc := newMaterialService(store, now, failIfFetched[Material](t))
	if err := svc.Invalidate(context.Background(), "Brass Sheet"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.has("brass_sheet") {
		t.Error("expected record removed")
	}
}
