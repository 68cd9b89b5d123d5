package repository

import (
	"context"
	"database/sql"
	"fmt"

	"KronosServe/internal/domain/models"
	"KronosServe/internal/domain/repository"
)

// ClickHouseForecastStore implements ForecastStore for ClickHouse. One
// summary row per served forecast, for offline accuracy evaluation.
type ClickHouseForecastStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseForecastStore creates a ClickHouse forecast store.
func NewClickHouseForecastStore(db *sql.DB, table string) repository.ForecastStore {
	return &ClickHouseForecastStore{db: db, table: table}
}

// SchemaFor returns the idempotent DDL for the forecast summary table.
func SchemaFor(database, table string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			ts DateTime,
			symbol String,
			model String,
			horizon UInt32,
			price_24h Float64,
			confidence Float64,
			trend String
		) ENGINE=MergeTree ORDER BY (symbol, ts)`, table),
	}
}

func (s *ClickHouseForecastStore) Save(ctx context.Context, event models.AuditEvent) error {
	q := fmt.Sprintf("INSERT INTO %s (ts, symbol, model, horizon, price_24h, confidence, trend) VALUES (?, ?, ?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q,
		event.Timestamp,
		event.Symbol,
		event.Model,
		uint32(event.Horizon),
		event.Price24h,
		event.Confidence,
		event.Trend,
	)
	return err
}

func (s *ClickHouseForecastStore) Close() error {
	return nil // pool owned by pkg/clickhouse client
}
