package series

import (
	"time"

	"KronosServe/internal/domain/models"
)

// Synthesized high/low band around a single price sample.
const (
	highFactor = 1.01
	lowFactor  = 0.99
)

// Normalize converts raw price samples into synthesized OHLCV bars.
// Volumes are paired with prices by position; a missing or short volume
// series pairs as zero. Output preserves input length and order, and an
// empty input yields an empty slice. Pure function.
func Normalize(prices, volumes []models.RawSample) []models.Bar {
	bars := make([]models.Bar, 0, len(prices))
	for i, p := range prices {
		var volume float64
		if i < len(volumes) {
			volume = volumes[i].Value
		}

		var amount float64
		if volume > 0 {
			amount = p.Value * volume
		}

		bars = append(bars, models.Bar{
			Timestamp: time.UnixMilli(p.TimestampMs),
			Open:      p.Value,
			High:      p.Value * highFactor,
			Low:       p.Value * lowFactor,
			Close:     p.Value,
			Volume:    volume,
			Amount:    amount,
		})
	}
	return bars
}
