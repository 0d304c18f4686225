package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gaugeScope/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS gauge_report_rows (
	commit_sha    TEXT NOT NULL,
	file          TEXT NOT NULL,
	row_index     INTEGER NOT NULL,
	function      TEXT NOT NULL,
	pool_id       TEXT NOT NULL,
	symbol        TEXT NOT NULL,
	pool_address  TEXT NOT NULL,
	a_factor      TEXT NOT NULL,
	gauge_address TEXT NOT NULL,
	gauge_type    TEXT NOT NULL,
	cap           TEXT NOT NULL,
	style         TEXT NOT NULL,
	chain         TEXT NOT NULL DEFAULT '',
	pool_name     TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (commit_sha, file, row_index)
)`

// Store archives audit rows in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the rows table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// PutRows inserts or updates report rows keyed by commit, file and position.
// Re-running an audit for the same commit replaces its rows.
func (s *Store) PutRows(ctx context.Context, rows []model.ReportRow) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`
			INSERT INTO gauge_report_rows (
				commit_sha, file, row_index, function, pool_id, symbol, pool_address, a_factor,
				gauge_address, gauge_type, cap, style, chain, pool_name, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,now(),now())
			ON CONFLICT (commit_sha, file, row_index)
			DO UPDATE SET
				function = EXCLUDED.function,
				pool_id = EXCLUDED.pool_id,
				symbol = EXCLUDED.symbol,
				pool_address = EXCLUDED.pool_address,
				a_factor = EXCLUDED.a_factor,
				gauge_address = EXCLUDED.gauge_address,
				gauge_type = EXCLUDED.gauge_type,
				cap = EXCLUDED.cap,
				style = EXCLUDED.style,
				chain = EXCLUDED.chain,
				pool_name = EXCLUDED.pool_name,
				updated_at = now()
		`,
			row.Commit,
			row.File,
			row.Index,
			row.Function,
			row.PoolID,
			row.Symbol,
			row.PoolAddress,
			row.AFactor,
			row.GaugeAddress,
			row.Type,
			row.Cap,
			row.Style,
			row.Chain,
			row.PoolName,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range rows {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// CountRows returns how many rows are archived for a commit.
func (s *Store) CountRows(ctx context.Context, commit string) (int, error) {
	var n int
	row := s.pool.QueryRow(ctx, `SELECT count(*) FROM gauge_report_rows WHERE commit_sha=$1`, commit)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
