package series

import (
	"time"

	"KronosServe/internal/domain/models"
)

// AggregateDaily sums volume samples per calendar date and returns the
// totals in the order the dates were first seen. With chronological input
// that order is ascending by date.
func AggregateDaily(volumes []models.RawSample) []float64 {
	totals := make(map[string]float64, len(volumes))
	order := make([]string, 0, len(volumes))

	for _, v := range volumes {
		day := time.Unix(v.TimestampMs/1000, 0).Format("2006-01-02")
		if _, seen := totals[day]; !seen {
			order = append(order, day)
		}
		totals[day] += v.Value
	}

	out := make([]float64, 0, len(order))
	for _, day := range order {
		out = append(out, totals[day])
	}
	return out
}
