package models

// PredictRequest is the POST /predict body. Defaults mirror the original
// service: symbol BTC, 24 prediction steps.
type PredictRequest struct {
	Symbol    string         `json:"symbol" default:"BTC"`
	Data      HistoryPayload `json:"data"`
	PredHours int            `json:"pred_hours" default:"24" validate:"gte=1,lte=168"`
}

// HistoryPayload carries raw series as [timestampMs, value] pairs.
type HistoryPayload struct {
	Prices  [][]float64 `json:"prices"`
	Volumes [][]float64 `json:"volumes"`
}

// ToHistory converts wire pairs into typed samples. Pairs shorter than
// two elements are dropped.
func (p HistoryPayload) ToHistory() History {
	return History{
		Prices:  toSamples(p.Prices),
		Volumes: toSamples(p.Volumes),
	}
}

func toSamples(pairs [][]float64) []RawSample {
	samples := make([]RawSample, 0, len(pairs))
	for _, pair := range pairs {
		if len(pair) < 2 {
			continue
		}
		samples = append(samples, RawSample{
			TimestampMs: int64(pair[0]),
			Value:       pair[1],
		})
	}
	return samples
}
