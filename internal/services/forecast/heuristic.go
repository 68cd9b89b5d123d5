package forecast

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"KronosServe/internal/domain/models"
	domsvc "KronosServe/internal/domain/service"
	"KronosServe/internal/services/series"
)

const (
	shortWindow = 7
	longWindow  = 30

	// Noise half-widths: price ±2%, volume ±7.5%.
	priceNoiseSpan  = 0.04
	volumeNoiseSpan = 0.15

	// Used when no volume history exists.
	fallbackVolume = 1_000_000

	heuristicConfidence = 0.6
)

// HeuristicOption configures Heuristic.
type HeuristicOption func(*Heuristic)

// WithUniform injects the uniform [0,1) source used for noise. A source
// pinned to 0.5 makes projections exact for testing.
func WithUniform(f func() float64) HeuristicOption {
	return func(h *Heuristic) { h.uniform = f }
}

// WithClock injects the clock used to anchor projected timestamps.
func WithClock(now func() time.Time) HeuristicOption {
	return func(h *Heuristic) { h.now = now }
}

// Heuristic projects future points from moving-average trends. It always
// succeeds given non-empty price history.
//
// Projected timestamps step by day from the wall clock, not from the last
// historical sample; the horizon parameter is named in hours at the API
// boundary but counts days here. Both quirks are kept from the original
// service on purpose.
type Heuristic struct {
	uniform func() float64
	now     func() time.Time
}

// NewHeuristic creates the fallback trend predictor.
func NewHeuristic(opts ...HeuristicOption) *Heuristic {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	h := &Heuristic{
		uniform: rng.Float64,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Predict implements service.Forecaster on the raw, non-normalized series.
func (h *Heuristic) Predict(_ context.Context, _ string, history models.History, horizon int) (models.Forecast, error) {
	prices := history.Prices
	if len(prices) == 0 {
		return models.Forecast{}, fmt.Errorf("heuristic: %w: empty price history", models.ErrDataInsufficient)
	}
	if horizon < 1 {
		horizon = 1
	}

	currentPrice := prices[len(prices)-1].Value

	dailyVolumes := series.AggregateDaily(history.Volumes)
	currentVolume := float64(fallbackVolume)
	if len(dailyVolumes) > 0 {
		currentVolume = dailyVolumes[len(dailyVolumes)-1]
	}

	values := priceValues(prices)
	ma7 := tailMean(values, shortWindow)
	ma30 := tailMean(values, longWindow)

	trend := 0.0
	if ma30 > 0 {
		trend = (ma7 - ma30) / ma30
	}

	vma7 := currentVolume
	if len(dailyVolumes) > 0 {
		vma7 = tailMean(dailyVolumes, shortWindow)
	}
	volTrend := 0.0
	if len(dailyVolumes) > 0 && vma7 > 0 {
		volTrend = (currentVolume - vma7) / vma7
	}

	now := h.now()
	points := make([]models.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		ramp := float64(i) / float64(horizon)

		dailyChange := trend * ramp
		priceNoise := (h.uniform() - 0.5) * priceNoiseSpan
		predictedPrice := currentPrice * (1 + dailyChange + priceNoise)

		volNoise := (h.uniform() - 0.5) * volumeNoiseSpan
		predictedVolume := currentVolume * (1 + volTrend*ramp + volNoise)
		if predictedVolume < 0 {
			predictedVolume = 0
		}

		points = append(points, models.ForecastPoint{
			Hour:      i,
			Price:     predictedPrice,
			Volume:    predictedVolume,
			Timestamp: now.AddDate(0, 0, i).Format(time.RFC3339),
		})
	}

	finalPrice := currentPrice
	if len(points) > 0 {
		finalPrice = points[len(points)-1].Price
	}

	trendLabel := models.TrendBearish
	if finalPrice > currentPrice {
		trendLabel = models.TrendBullish
	}

	return models.Forecast{
		Price24h:    finalPrice,
		Confidence:  heuristicConfidence,
		Trend:       trendLabel,
		Predictions: points,
		Model:       models.ModelSimple,
	}, nil
}

func priceValues(samples []models.RawSample) []float64 {
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Value
	}
	return values
}

// tailMean averages the last min(window, len) values.
func tailMean(values []float64, window int) float64 {
	if len(values) == 0 {
		return 0
	}
	if window > len(values) {
		window = len(values)
	}
	sum := 0.0
	for _, v := range values[len(values)-window:] {
		sum += v
	}
	return sum / float64(window)
}

var _ domsvc.Forecaster = (*Heuristic)(nil)
