package forecast

import (
	"context"
	"fmt"
	"math"
	"time"

	"KronosServe/internal/domain/models"
	domsvc "KronosServe/internal/domain/service"
	"KronosServe/internal/services/series"
	"KronosServe/pkg/config"
	xhttp "KronosServe/pkg/http"
	applogger "KronosServe/pkg/logger"
)

// KronosClient calls the Kronos model sidecar over HTTP. Availability is
// probed once at construction; the handle is read-only afterwards.
type KronosClient struct {
	client      *xhttp.Client
	baseURL     string
	available   bool
	minBars     int
	maxLookback int
	temperature float64
	topP        float64
	sampleCount int
	logger      *applogger.Logger
}

type kronosHealth struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

type kronosPredictRequest struct {
	Symbol           string       `json:"symbol"`
	Bars             []models.Bar `json:"bars"`
	OutputTimestamps []string     `json:"y_timestamp"`
	PredLen          int          `json:"pred_len"`
	Temperature      float64      `json:"T"`
	TopP             float64      `json:"top_p"`
	SampleCount      int          `json:"sample_count"`
}

type kronosPredictResponse struct {
	Predictions []models.Bar `json:"predictions"`
}

// NewKronosClient builds the model client and probes the sidecar health
// endpoint. An unreachable or unloaded model leaves the client in place
// but marks it unavailable.
func NewKronosClient(cfg *config.Config, logger *applogger.Logger) *KronosClient {
	kc := &KronosClient{
		client:      xhttp.NewClient(xhttp.WithTimeout(cfg.Kronos.Timeout)),
		baseURL:     cfg.Kronos.ServiceURL,
		minBars:     cfg.Kronos.MinBars,
		maxLookback: cfg.Kronos.MaxLookback,
		temperature: cfg.Kronos.Temperature,
		topP:        cfg.Kronos.TopP,
		sampleCount: cfg.Kronos.SampleCount,
		logger:      logger,
	}

	if kc.baseURL == "" {
		logger.Warn("kronos service url not configured, running in fallback mode")
		return kc
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var health kronosHealth
	err := kc.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    kc.baseURL + "/health",
	}, &health)
	switch {
	case err != nil:
		logger.Warn("kronos service unreachable, running in fallback mode", applogger.Error(err))
	case !health.ModelLoaded:
		logger.Warn("kronos model not loaded, running in fallback mode")
	default:
		kc.available = true
		logger.Info("kronos model ready", applogger.String("url", kc.baseURL))
	}

	return kc
}

// Available reports whether the model was reachable and loaded at startup.
func (kc *KronosClient) Available() bool {
	return kc.available
}

// Predict implements service.Forecaster via the external model.
func (kc *KronosClient) Predict(ctx context.Context, symbol string, history models.History, horizon int) (models.Forecast, error) {
	if !kc.available {
		return models.Forecast{}, models.ErrModelUnavailable
	}

	bars := series.Normalize(history.Prices, history.Volumes)
	if len(bars) < kc.minBars {
		return models.Forecast{}, fmt.Errorf("%w: %d bars, need %d", models.ErrDataInsufficient, len(bars), kc.minBars)
	}

	lookback := len(bars)
	if lookback > kc.maxLookback {
		lookback = kc.maxLookback
	}
	window := bars[len(bars)-lookback:]

	lastTs := window[len(window)-1].Timestamp
	outTs := make([]string, horizon)
	for i := 1; i <= horizon; i++ {
		outTs[i-1] = lastTs.Add(time.Duration(i) * time.Hour).Format(time.RFC3339)
	}

	kc.logger.Debug("kronos predict",
		applogger.String("symbol", symbol),
		applogger.Int("lookback", lookback),
		applogger.Int("horizon", horizon),
	)

	var resp kronosPredictResponse
	err := kc.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    kc.baseURL + "/predict",
		Body: kronosPredictRequest{
			Symbol:           symbol,
			Bars:             window,
			OutputTimestamps: outTs,
			PredLen:          horizon,
			Temperature:      kc.temperature,
			TopP:             kc.topP,
			SampleCount:      kc.sampleCount,
		},
	}, &resp)
	if err != nil {
		return models.Forecast{}, fmt.Errorf("kronos inference: %w", err)
	}
	if len(resp.Predictions) == 0 {
		return models.Forecast{}, fmt.Errorf("kronos inference: empty prediction")
	}

	points := make([]models.ForecastPoint, 0, len(resp.Predictions))
	for i, bar := range resp.Predictions {
		ts := bar.Timestamp
		if ts.IsZero() && i < len(outTs) {
			ts, _ = time.Parse(time.RFC3339, outTs[i])
		}
		points = append(points, models.ForecastPoint{
			Hour:      i + 1,
			Price:     bar.Close,
			High:      bar.High,
			Low:       bar.Low,
			Volume:    bar.Volume,
			Timestamp: ts.Format(time.RFC3339),
		})
	}

	currentPrice := window[len(window)-1].Close
	finalPrice := resp.Predictions[len(resp.Predictions)-1].Close

	trendLabel := models.TrendBearish
	if finalPrice > currentPrice {
		trendLabel = models.TrendBullish
	}

	return models.Forecast{
		Price24h:    finalPrice,
		Confidence:  closeConfidence(resp.Predictions),
		Trend:       trendLabel,
		Predictions: points,
		Model:       models.ModelKronos,
	}, nil
}

// closeConfidence maps predicted close dispersion to [0.5, 0.95]: tighter
// predictions score higher.
func closeConfidence(bars []models.Bar) float64 {
	mean := 0.0
	for _, b := range bars {
		mean += b.Close
	}
	mean /= float64(len(bars))
	if mean == 0 {
		return 0.5
	}

	variance := 0.0
	for _, b := range bars {
		d := b.Close - mean
		variance += d * d
	}
	std := math.Sqrt(variance / float64(len(bars)))

	confidence := 1 - std/mean
	if confidence < 0.5 {
		return 0.5
	}
	if confidence > 0.95 {
		return 0.95
	}
	return confidence
}

var _ domsvc.Forecaster = (*KronosClient)(nil)
