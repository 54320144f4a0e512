package bunstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-enrichment-cache/enrichment"
)

// reportRow is one immutable ledger entry. Rows are only ever inserted;
// "current" is derived at read time as the newest row for a (type, owner)
// pair.
type reportRow struct {
	bun.BaseModel `bun:"table:enrichment_reports,alias:rp"`

	ID          string    `bun:"id,pk"`
	ReportType  string    `bun:"report_type,notnull"`
	OwnerID     string    `bun:"owner_id,notnull,default:''"`
	Payload     []byte    `bun:"payload,notnull"`
	GeneratedAt time.Time `bun:"generated_at,notnull"`
}

// Ledger implements enrichment.ReportLedger over a bun database.
type Ledger struct {
	db    bun.IDB
	clock func() time.Time
}

// NewLedger creates a ledger stamping records with the wall clock.
func NewLedger(db bun.IDB) *Ledger {
	return NewLedgerWithClock(db, time.Now)
}

// NewLedgerWithClock creates a ledger with an injected clock.
func NewLedgerWithClock(db bun.IDB, clock func() time.Time) *Ledger {
	if clock == nil {
		clock = time.Now
	}
	return &Ledger{db: db, clock: clock}
}

// Append inserts a new report record. Prior records are never updated or
// deleted; the table is an unbounded historical log.
func (l *Ledger) Append(ctx context.Context, typ enrichment.ReportType, ownerID string, payload json.RawMessage) (enrichment.Report, error) {
	row := reportRow{
		ID:          uuid.New().String(),
		ReportType:  string(typ),
		OwnerID:     ownerID,
		Payload:     []byte(payload),
		GeneratedAt: l.clock(),
	}
	if _, err := l.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return enrichment.Report{}, fmt.Errorf("bunstore: appending %s report: %w", typ, err)
	}
	return row.toReport(), nil
}

// Latest returns the newest report for the exact (typ, ownerID) pair, or
// nil when none exists. An empty ownerID matches only platform-wide
// records.
func (l *Ledger) Latest(ctx context.Context, typ enrichment.ReportType, ownerID string) (*enrichment.Report, error) {
	var row reportRow
	err := l.db.NewSelect().
		Model(&row).
		Where("report_type = ?", string(typ)).
		Where("owner_id = ?", ownerID).
		OrderExpr("generated_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("bunstore: selecting latest %s report: %w", typ, err)
	}
	rep := row.toReport()
	return &rep, nil
}

// History returns every report for the pair, newest first. This is the
// audit-trail read the append-only design exists for.
func (l *Ledger) History(ctx context.Context, typ enrichment.ReportType, ownerID string) ([]enrichment.Report, error) {
	var rows []reportRow
	err := l.db.NewSelect().
		Model(&rows).
		Where("report_type = ?", string(typ)).
		Where("owner_id = ?", ownerID).
		OrderExpr("generated_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("bunstore: selecting %s report history: %w", typ, err)
	}

	reports := make([]enrichment.Report, len(rows))
	for i, row := range rows {
		reports[i] = row.toReport()
	}
	return reports, nil
}

func (r reportRow) toReport() enrichment.Report {
	return enrichment.Report{
		ID:          r.ID,
		Type:        enrichment.ReportType(r.ReportType),
		OwnerID:     r.OwnerID,
		Payload:     json.RawMessage(r.Payload),
		GeneratedAt: r.GeneratedAt,
	}
}
