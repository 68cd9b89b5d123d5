package series

import (
	"math"
	"testing"

	"KronosServe/internal/domain/models"
)

func TestNormalizeLengthAndOrder(t *testing.T) {
	prices := []models.RawSample{
		{TimestampMs: 1000, Value: 100},
		{TimestampMs: 2000, Value: 105},
		{TimestampMs: 3000, Value: 95},
	}

	bars := Normalize(prices, nil)
	if len(bars) != len(prices) {
		t.Fatalf("expected %d bars, got %d", len(prices), len(bars))
	}
	for i, b := range bars {
		if b.Close != prices[i].Value {
			t.Fatalf("bar %d: close %v does not match input %v", i, b.Close, prices[i].Value)
		}
	}
}

func TestNormalizeHighLowBand(t *testing.T) {
	prices := []models.RawSample{{TimestampMs: 1000, Value: 200}}

	bars := Normalize(prices, nil)
	b := bars[0]
	if b.Open != b.Close {
		t.Fatalf("open %v != close %v", b.Open, b.Close)
	}
	if math.Abs(b.High-b.Close*1.01) > 1e-9 {
		t.Fatalf("high %v, want %v", b.High, b.Close*1.01)
	}
	if math.Abs(b.Low-b.Close*0.99) > 1e-9 {
		t.Fatalf("low %v, want %v", b.Low, b.Close*0.99)
	}
	if !(b.High >= b.Close && b.Close >= b.Low) {
		t.Fatalf("band ordering violated: %v %v %v", b.High, b.Close, b.Low)
	}
}

func TestNormalizeVolumePairing(t *testing.T) {
	prices := []models.RawSample{
		{TimestampMs: 1000, Value: 10},
		{TimestampMs: 2000, Value: 20},
		{TimestampMs: 3000, Value: 30},
	}
	// Shorter than prices: third bar pairs as zero volume.
	volumes := []models.RawSample{
		{TimestampMs: 1000, Value: 5},
		{TimestampMs: 2000, Value: 0},
	}

	bars := Normalize(prices, volumes)
	if bars[0].Volume != 5 || bars[0].Amount != 50 {
		t.Fatalf("bar 0: volume %v amount %v", bars[0].Volume, bars[0].Amount)
	}
	if bars[1].Volume != 0 || bars[1].Amount != 0 {
		t.Fatalf("bar 1: volume %v amount %v, want zeros", bars[1].Volume, bars[1].Amount)
	}
	if bars[2].Volume != 0 || bars[2].Amount != 0 {
		t.Fatalf("bar 2: volume %v amount %v, want zeros", bars[2].Volume, bars[2].Amount)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	bars := Normalize(nil, nil)
	if len(bars) != 0 {
		t.Fatalf("expected empty output, got %d bars", len(bars))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	prices := []models.RawSample{
		{TimestampMs: 1000, Value: 100},
		{TimestampMs: 2000, Value: 110},
	}
	volumes := []models.RawSample{
		{TimestampMs: 1000, Value: 3},
		{TimestampMs: 2000, Value: 4},
	}

	first := Normalize(prices, volumes)
	second := Normalize(prices, volumes)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("bar %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
