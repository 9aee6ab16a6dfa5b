package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"passenger-stats/utils"
)

// PostgresSource reads the data set from a table holding one JSON object per
// row and aggregates the rows into a single JSON array.
type PostgresSource struct {
	db     *sql.DB
	table  string
	column string
}

// NewPostgresSource opens a connection to PostgreSQL and waits until it
// answers a ping.
func NewPostgresSource(ctx context.Context, dsn, table, column string, retry *utils.RetryConfig) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres-ping", func() error {
		return db.PingContext(ctx)
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return &PostgresSource{db: db, table: table, column: column}, nil
}

func (ps *PostgresSource) query() string {
	return fmt.Sprintf(`SELECT COALESCE(json_agg(%s), '[]'::json)::text FROM %s`,
		pq.QuoteIdentifier(ps.column), pq.QuoteIdentifier(ps.table))
}

func (ps *PostgresSource) Read(ctx context.Context) (string, error) {
	var text string
	if err := ps.db.QueryRowContext(ctx, ps.query()).Scan(&text); err != nil {
		return "", fmt.Errorf("postgres: read %s.%s: %w", ps.table, ps.column, err)
	}
	return text, nil
}

func (ps *PostgresSource) Close() error {
	return ps.db.Close()
}
