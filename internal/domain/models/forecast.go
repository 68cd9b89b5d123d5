package models

import "time"

// Model tags carried in forecast responses.
const (
	ModelKronos = "kronos"
	ModelSimple = "simple"
)

// Trend labels.
const (
	TrendBullish = "bullish"
	TrendBearish = "bearish"
)

// RawSample is one raw history point: millisecond epoch timestamp and value.
// Price and volume series arrive as independent RawSample sequences that are
// paired positionally, not by timestamp.
type RawSample struct {
	TimestampMs int64
	Value       float64
}

// History holds the raw price/volume series for one predict call.
type History struct {
	Prices  []RawSample
	Volumes []RawSample
}

// Bar is one synthesized OHLCV record. High/low are derived from close,
// not real intrabar extremes.
type Bar struct {
	Timestamp time.Time `json:"timestamps"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	Amount    float64   `json:"amount"`
}

// ForecastPoint is one projected step. The field is named "hour" for wire
// compatibility but means "steps ahead"; the heuristic path steps by day.
type ForecastPoint struct {
	Hour      int     `json:"hour"`
	Price     float64 `json:"price"`
	High      float64 `json:"high,omitempty"`
	Low       float64 `json:"low,omitempty"`
	Volume    float64 `json:"volume"`
	Timestamp string  `json:"timestamp"`
}

// Forecast is the result of one predict call, whichever path produced it.
// Price24h is the last projected price regardless of horizon length; the
// name is a holdover from the hourly design.
type Forecast struct {
	Price24h    float64         `json:"price_24h"`
	Confidence  float64         `json:"confidence"`
	Trend       string          `json:"trend"`
	Predictions []ForecastPoint `json:"predictions"`
	Model       string          `json:"model"`
}

// AuditEvent is the per-forecast summary published to the audit sinks.
type AuditEvent struct {
	Symbol     string    `json:"symbol"`
	Model      string    `json:"model"`
	Horizon    int       `json:"horizon"`
	Price24h   float64   `json:"price_24h"`
	Confidence float64   `json:"confidence"`
	Trend      string    `json:"trend"`
	Timestamp  time.Time `json:"timestamp"`
}
