package service

import (
	"context"

	"KronosServe/internal/domain/models"
)

// Forecaster projects future price/volume points from raw history.
// Implementations: the external Kronos model client (may fail for any
// reason) and the heuristic trend predictor (fails only on empty input).
type Forecaster interface {
	Predict(ctx context.Context, symbol string, history models.History, horizon int) (models.Forecast, error)
}

// ModelStatus reports whether the external model path is usable. Fixed
// after startup.
type ModelStatus interface {
	Available() bool
}
