package bunstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// OpenSQLite opens (creating if needed) a SQLite-backed bun database at
// path. A single write connection sidesteps SQLite's writer contention.
func OpenSQLite(path string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("bunstore: opening sqlite db: %w", err)
	}
	sqldb.SetMaxOpenConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// OpenPostgres opens a Postgres-backed bun database with the given DSN.
func OpenPostgres(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("bunstore: opening postgres db: %w", err)
	}
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// CreateTables creates the record and report tables if they do not exist.
func CreateTables(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*recordRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("bunstore: creating enrichment_records: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*reportRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("bunstore: creating enrichment_reports: %w", err)
	}

	// Latest/History both select by pair and order by recency.
	if _, err := db.NewCreateIndex().
		Model((*reportRow)(nil)).
		Index("idx_enrichment_reports_pair").
		IfNotExists().
		Column("report_type", "owner_id", "generated_at").
		Exec(ctx); err != nil {
		return fmt.Errorf("bunstore: creating report index: %w", err)
	}

	return nil
}
