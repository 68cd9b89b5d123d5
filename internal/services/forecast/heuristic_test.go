package forecast

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"KronosServe/internal/domain/models"
)

// noiseless pins the uniform source to 0.5, zeroing both noise terms.
func noiseless() *Heuristic {
	return NewHeuristic(
		WithUniform(func() float64 { return 0.5 }),
		WithClock(func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }),
	)
}

func dayMs(day int) int64 {
	return time.Date(2024, 2, day, 12, 0, 0, 0, time.Local).UnixMilli()
}

func TestHeuristicEmptyPricesFails(t *testing.T) {
	h := noiseless()
	_, err := h.Predict(context.Background(), "BTC", models.History{}, 7)
	if err == nil {
		t.Fatal("expected error for empty price history")
	}
	if !errors.Is(err, models.ErrDataInsufficient) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHeuristicSingleStep(t *testing.T) {
	h := noiseless()
	history := models.History{
		Prices: []models.RawSample{{TimestampMs: dayMs(1), Value: 50}},
	}

	got, err := h.Predict(context.Background(), "BTC", history, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Predictions) != 1 {
		t.Fatalf("expected 1 point, got %d", len(got.Predictions))
	}
	if got.Predictions[0].Hour != 1 {
		t.Fatalf("expected step index 1, got %d", got.Predictions[0].Hour)
	}
}

func TestHeuristicFlatTwoPointScenario(t *testing.T) {
	// Two points 100 -> 110: both windows average the same set, so the
	// trend is zero and every noiseless projection equals the last price.
	h := noiseless()
	history := models.History{
		Prices: []models.RawSample{
			{TimestampMs: dayMs(1), Value: 100},
			{TimestampMs: dayMs(2), Value: 110},
		},
	}

	got, err := h.Predict(context.Background(), "BTC", history, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Predictions) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got.Predictions))
	}
	for i, p := range got.Predictions {
		if math.Abs(p.Price-110) > 1e-9 {
			t.Fatalf("point %d: price %v, want 110", i, p.Price)
		}
	}
	if got.Confidence != 0.6 {
		t.Fatalf("confidence %v, want 0.6", got.Confidence)
	}
	if got.Model != models.ModelSimple {
		t.Fatalf("model %q, want %q", got.Model, models.ModelSimple)
	}
	// Final price equals current, so the label is not bullish.
	if got.Trend != models.TrendBearish {
		t.Fatalf("trend %q, want %q", got.Trend, models.TrendBearish)
	}
}

func TestHeuristicFinalStepExactTrend(t *testing.T) {
	// Ascending series: ma7 = mean(4..10) = 7, ma30 = mean(1..10) = 5.5.
	h := noiseless()
	prices := make([]models.RawSample, 10)
	for i := range prices {
		prices[i] = models.RawSample{TimestampMs: dayMs(i + 1), Value: float64(i + 1)}
	}
	history := models.History{Prices: prices}

	const horizon = 5
	got, err := h.Predict(context.Background(), "BTC", history, horizon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current := 10.0
	trend := (7.0 - 5.5) / 5.5
	want := current * (1 + trend)
	final := got.Predictions[horizon-1].Price
	if math.Abs(final-want) > 1e-9 {
		t.Fatalf("final price %v, want %v", final, want)
	}
	if got.Price24h != final {
		t.Fatalf("price_24h %v does not match final point %v", got.Price24h, final)
	}
	if got.Trend != models.TrendBullish {
		t.Fatalf("trend %q, want %q", got.Trend, models.TrendBullish)
	}
}

func TestHeuristicVolumeFallback(t *testing.T) {
	h := noiseless()
	history := models.History{
		Prices: []models.RawSample{
			{TimestampMs: dayMs(1), Value: 100},
			{TimestampMs: dayMs(2), Value: 100},
		},
	}

	got, err := h.Predict(context.Background(), "BTC", history, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range got.Predictions {
		if math.Abs(p.Volume-1_000_000) > 1e-6 {
			t.Fatalf("point %d: volume %v, want fallback 1000000", i, p.Volume)
		}
	}
}

func TestHeuristicVolumeTrend(t *testing.T) {
	h := noiseless()
	prices := []models.RawSample{
		{TimestampMs: dayMs(1), Value: 100},
		{TimestampMs: dayMs(2), Value: 100},
	}
	// Two daily buckets: 40 then 80. vma7 = 60, volTrend = (80-60)/60.
	volumes := []models.RawSample{
		{TimestampMs: dayMs(1), Value: 40},
		{TimestampMs: dayMs(2), Value: 80},
	}

	got, err := h.Predict(context.Background(), "BTC", models.History{Prices: prices, Volumes: volumes}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	volTrend := (80.0 - 60.0) / 60.0
	wantFinal := 80.0 * (1 + volTrend)
	final := got.Predictions[1].Volume
	if math.Abs(final-wantFinal) > 1e-9 {
		t.Fatalf("final volume %v, want %v", final, wantFinal)
	}
}

func TestHeuristicTimestampsStepByDay(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	h := NewHeuristic(
		WithUniform(func() float64 { return 0.5 }),
		WithClock(func() time.Time { return now }),
	)
	history := models.History{
		Prices: []models.RawSample{{TimestampMs: dayMs(1), Value: 100}},
	}

	got, err := h.Predict(context.Background(), "BTC", history, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range got.Predictions {
		want := now.AddDate(0, 0, i+1).Format(time.RFC3339)
		if p.Timestamp != want {
			t.Fatalf("point %d: timestamp %q, want %q", i, p.Timestamp, want)
		}
	}
}
