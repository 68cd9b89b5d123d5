package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	forecastsTotal   *prometheus.CounterVec
	fallbacksTotal   prometheus.Counter
	modelErrorsTotal *prometheus.CounterVec
	lastForecast     *prometheus.GaugeVec
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		forecastsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kronosserve_forecasts_total",
				Help: "Total number of forecasts served, by model and symbol",
			},
			[]string{"model", "symbol"},
		),
		fallbacksTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "kronosserve_fallbacks_total",
				Help: "Total number of forecasts that fell back to the heuristic path",
			},
		),
		modelErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kronosserve_model_errors_total",
				Help: "Total number of external model errors, by kind",
			},
			[]string{"kind"},
		),
		lastForecast: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kronosserve_last_forecast_price",
				Help: "Last forecast final price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kronosserve_forecast_duration_seconds",
				Help:    "Duration of forecast operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"model"},
		),
	}
}

// RecordForecast records a forecast served with the given model tag.
func (r *Recorder) RecordForecast(model, symbol string) {
	r.forecastsTotal.WithLabelValues(model, symbol).Inc()
}

// RecordFallback records a heuristic fallback.
func (r *Recorder) RecordFallback() {
	r.fallbacksTotal.Inc()
}

// RecordModelError records an external model error of the given kind.
func (r *Recorder) RecordModelError(kind string) {
	r.modelErrorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastForecast records the final forecast price for a symbol.
func (r *Recorder) RecordLastForecast(symbol string, price float64) {
	r.lastForecast.WithLabelValues(symbol).Set(price)
}

// RecordLatency records forecast latency in seconds for a model path.
func (r *Recorder) RecordLatency(model string, seconds float64) {
	r.latency.WithLabelValues(model).Observe(seconds)
}
