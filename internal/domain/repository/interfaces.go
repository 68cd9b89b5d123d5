package repository

import (
	"context"

	"KronosServe/internal/domain/models"
)

// Metrics records forecast observability signals.
type Metrics interface {
	RecordForecast(model, symbol string)
	RecordFallback()
	RecordModelError(kind string)
	RecordLastForecast(symbol string, price float64)
	RecordLatency(model string, seconds float64)
}

// AuditPublisher streams per-forecast summary events to an external bus.
// Best-effort: callers log failures and move on.
type AuditPublisher interface {
	Publish(ctx context.Context, event models.AuditEvent) error
	Close() error
}

// ForecastStore persists per-forecast summary rows for later evaluation.
// Best-effort: callers log failures and move on.
type ForecastStore interface {
	Save(ctx context.Context, event models.AuditEvent) error
	Close() error
}
