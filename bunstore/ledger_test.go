package bunstore

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/goliatone/go-enrichment-cache/enrichment"
)

func TestLedger_AppendAssignsIdentity(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ledger := NewLedgerWithClock(db, func() time.Time { return now })

	rep, err := ledger.Append(context.Background(), enrichment.ReportTrends, "", json.RawMessage(`{"v":1}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.ID == "" {
		t.Error("expected a generated record ID")
	}
	if !rep.GeneratedAt.Equal(now) {
		t.Errorf("expected GeneratedAt %v, got %v", now, rep.GeneratedAt)
	}
	if rep.OwnerID != "" || rep.Type != enrichment.ReportTrends {
		t.Errorf("unexpected record identity: %+v", rep)
	}
}

func TestLedger_LatestSelectsNewestForExactOwner(t *testing.T) {
	db := openTestDB(t)
	current := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	ledger := NewLedgerWithClock(db, func() time.Time { return current })
	ctx := context.Background()

	for _, payload := range []string{`{"rev":1}`, `{"rev":2}`, `{"rev":3}`} {
		current = current.Add(time.Hour)
		if _, err := ledger.Append(ctx, enrichment.ReportInsights, "U1", json.RawMessage(payload)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	current = current.Add(time.Hour)
	if _, err := ledger.Append(ctx, enrichment.ReportInsights, "U2", json.RawMessage(`{"rev":99}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	latest, err := ledger.Latest(ctx, enrichment.ReportInsights, "U1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest == nil {
		t.Fatal("expected a record")
	}
	if string(latest.Payload) != `{"rev":3}` {
		t.Errorf("expected newest U1 record, got %s", latest.Payload)
	}
	if latest.OwnerID != "U1" {
		t.Errorf("owner isolation violated: %s", latest.OwnerID)
	}
}

func TestLedger_LatestNilWhenAbsent(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)

	latest, err := ledger.Latest(context.Background(), enrichment.ReportFunding, "U1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest != nil {
		t.Errorf("expected nil for an empty ledger, got %+v", latest)
	}
}

func TestLedger_EmptyOwnerDoesNotMatchScopedRecords(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	if _, err := ledger.Append(ctx, enrichment.ReportTrends, "U1", json.RawMessage(`{"scoped":true}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	latest, err := ledger.Latest(ctx, enrichment.ReportTrends, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest != nil {
		t.Errorf("platform-wide query must not match owner-scoped records, got %+v", latest)
	}
}

func TestLedger_HistoryIsNewestFirstAndComplete(t *testing.T) {
	db := openTestDB(t)
	current := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	ledger := NewLedgerWithClock(db, func() time.Time { return current })
	ctx := context.Background()

	for _, payload := range []string{`{"rev":1}`, `{"rev":2}`, `{"rev":3}`} {
		current = current.Add(time.Hour)
		if _, err := ledger.Append(ctx, enrichment.ReportFunding, "U1", json.RawMessage(payload)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	history, err := ledger.History(ctx, enrichment.ReportFunding, "U1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("append-only trail must be complete, got %d records", len(history))
	}
	for i, want := range []string{`{"rev":3}`, `{"rev":2}`, `{"rev":1}`} {
		if string(history[i].Payload) != want {
			t.Errorf("history[%d] = %s, want %s", i, history[i].Payload, want)
		}
	}
}
