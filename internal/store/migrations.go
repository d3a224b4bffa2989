package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema contains the DDL for the run history.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id              TEXT PRIMARY KEY,
		created_at      TEXT NOT NULL,
		algorithm       TEXT NOT NULL,
		ran             TEXT NOT NULL,
		quantum         INTEGER NOT NULL,
		cores           INTEGER NOT NULL,
		avg_waiting     REAL NOT NULL,
		avg_turnaround  REAL NOT NULL,
		avg_response    REAL NOT NULL,
		makespan        INTEGER NOT NULL,
		cpu_utilization REAL NOT NULL,
		throughput      REAL NOT NULL,
		completed       INTEGER NOT NULL,
		processes       TEXT NOT NULL DEFAULT '[]',
		timeline        TEXT NOT NULL DEFAULT '[]'
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
