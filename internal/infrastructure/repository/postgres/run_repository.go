package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/genoslab/docregress/internal/core/domain"
)

// RunRepository keeps a history of evaluation outcomes so drift can be
// traced across pipeline releases. The filesystem baseline store stays the
// source of truth; this table is inspection only.
type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across cli/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082601)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS regression_runs (
	id BIGSERIAL PRIMARY KEY,
	run_id TEXT NOT NULL,
	format TEXT NOT NULL,
	sample_id TEXT NOT NULL,
	mode TEXT NOT NULL,
	passed BOOLEAN NOT NULL,
	findings JSONB NOT NULL DEFAULT '[]'::jsonb,
	report TEXT,
	error_message TEXT,
	duration_ms BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_regression_runs_key ON regression_runs(format, sample_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_regression_runs_run_id ON regression_runs(run_id);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *RunRepository) RecordOutcome(ctx context.Context, outcome *domain.Outcome) error {
	findingsJSON, err := json.Marshal(outcome.Findings)
	if err != nil {
		return fmt.Errorf("marshal findings: %w", err)
	}
	if len(outcome.Findings) == 0 {
		findingsJSON = []byte("[]")
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO regression_runs (
	run_id, format, sample_id, mode, passed, findings, report, error_message, duration_ms, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`,
		outcome.RunID, outcome.Format, outcome.SampleID, string(outcome.Mode), outcome.Passed,
		findingsJSON, outcome.Report, outcome.Err, outcome.Duration.Milliseconds(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert regression run: %w", err)
	}
	return nil
}

// LatestOutcomes returns the most recent run rows for one baseline key,
// newest first.
func (r *RunRepository) LatestOutcomes(ctx context.Context, format, sampleID string, limit int) ([]domain.Outcome, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT run_id, format, sample_id, mode, passed, findings, report, error_message, duration_ms
FROM regression_runs
WHERE format = $1 AND sample_id = $2
ORDER BY created_at DESC
LIMIT $3
`, format, sampleID, limit)
	if err != nil {
		return nil, fmt.Errorf("query regression runs: %w", err)
	}
	defer rows.Close()

	var outcomes []domain.Outcome
	for rows.Next() {
		var (
			o           domain.Outcome
			mode        string
			findingsRaw []byte
			durationMS  int64
		)
		if err := rows.Scan(&o.RunID, &o.Format, &o.SampleID, &mode, &o.Passed, &findingsRaw, &o.Report, &o.Err, &durationMS); err != nil {
			return nil, fmt.Errorf("scan regression run: %w", err)
		}
		if err := json.Unmarshal(findingsRaw, &o.Findings); err != nil {
			return nil, fmt.Errorf("unmarshal findings: %w", err)
		}
		o.Mode = domain.Mode(mode)
		o.Duration = time.Duration(durationMS) * time.Millisecond
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate regression runs: %w", err)
	}
	return outcomes, nil
}
