package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"dataset-collector/models"
	"dataset-collector/utils"
)

// PostgresWriter persists normalized holidays to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: 5, BaseDelay: time.Second, Logger: logger}
	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	_, err := pw.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS holidays (
			date         DATE        NOT NULL,
			country_code VARCHAR(2)  NOT NULL,
			name         TEXT        NOT NULL,
			local_name   TEXT        NOT NULL DEFAULT '',
			fixed        BOOLEAN     NOT NULL DEFAULT FALSE,
			global       BOOLEAN     NOT NULL DEFAULT FALSE,
			counties     TEXT        NOT NULL DEFAULT '',
			launch_year  INTEGER,
			types        TEXT        NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (date, country_code, name)
		);

		CREATE INDEX IF NOT EXISTS idx_holidays_country ON holidays(country_code);
	`)
	return err
}

// WriteHolidays upserts holidays in batches keyed by (date, country_code, name).
func (pw *PostgresWriter) WriteHolidays(ctx context.Context, holidays []*models.Holiday) error {
	const batchSize = 50
	for i := 0; i < len(holidays); i += batchSize {
		end := min(i+batchSize, len(holidays))
		if err := pw.insertBatch(ctx, holidays[i:end]); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(ctx context.Context, batch []*models.Holiday) error {
	const cols = 9
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*cols)

	for idx, h := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		var launchYear sql.NullInt64
		if h.LaunchYear != nil {
			launchYear = sql.NullInt64{Int64: int64(*h.LaunchYear), Valid: true}
		}
		valueArgs = append(valueArgs,
			h.Date, h.CountryCode, h.Name, h.LocalName, h.Fixed, h.Global,
			strings.Join(h.Counties, ";"), launchYear, strings.Join(h.Types, ";"))
	}

	query := fmt.Sprintf(`
		INSERT INTO holidays (date, country_code, name, local_name, fixed, global, counties, launch_year, types)
		VALUES %s
		ON CONFLICT (date, country_code, name) DO UPDATE SET
			local_name  = EXCLUDED.local_name,
			fixed       = EXCLUDED.fixed,
			global      = EXCLUDED.global,
			counties    = EXCLUDED.counties,
			launch_year = EXCLUDED.launch_year,
			types       = EXCLUDED.types
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.ExecContext(ctx, query, valueArgs...)
	return err
}

// CountHolidays returns the number of stored holidays for a country.
func (pw *PostgresWriter) CountHolidays(ctx context.Context, countryCode string) (int, error) {
	var n int
	err := pw.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM holidays WHERE country_code = $1`, countryCode).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("postgres: count holidays: %w", err)
	}
	return n, nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
