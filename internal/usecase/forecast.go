package usecase

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"KronosServe/internal/domain/models"
	domrepo "KronosServe/internal/domain/repository"
	domsvc "KronosServe/internal/domain/service"
	"KronosServe/pkg/cache"
	applogger "KronosServe/pkg/logger"
)

const sinkTimeout = 5 * time.Second

// ForecastUsecase runs the model-then-heuristic fallback chain and feeds
// the best-effort observers (cache, metrics, audit sinks). Results never
// mix the two paths.
type ForecastUsecase struct {
	model     domsvc.Forecaster
	heuristic domsvc.Forecaster
	cache     cache.Service
	cacheTTL  time.Duration
	audit     domrepo.AuditPublisher
	store     domrepo.ForecastStore
	metrics   domrepo.Metrics
	logger    *applogger.Logger
}

// NewForecastUsecase wires the orchestrator. model, cache, audit and store
// may be nil; the heuristic and metrics are required.
func NewForecastUsecase(
	model domsvc.Forecaster,
	heuristic domsvc.Forecaster,
	c cache.Service,
	cacheTTL time.Duration,
	audit domrepo.AuditPublisher,
	store domrepo.ForecastStore,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
) *ForecastUsecase {
	return &ForecastUsecase{
		model:     model,
		heuristic: heuristic,
		cache:     c,
		cacheTTL:  cacheTTL,
		audit:     audit,
		store:     store,
		metrics:   metrics,
		logger:    logger,
	}
}

// Forecast returns a prediction for the given symbol and raw history.
// Model-path errors are demoted to a logged fallback; only a total
// failure surfaces as ErrPredictionFailed.
func (u *ForecastUsecase) Forecast(ctx context.Context, symbol string, history models.History, horizon int) (models.Forecast, error) {
	key := cacheKey(symbol, horizon, history)
	if u.cache != nil {
		var cached models.Forecast
		if err := u.cache.Get(ctx, key, &cached); err == nil {
			u.logger.Debug("forecast cache hit", applogger.String("symbol", symbol))
			return cached, nil
		}
	}

	start := time.Now()
	result, err := u.predict(ctx, symbol, history, horizon)
	if err != nil {
		return models.Forecast{}, err
	}
	u.metrics.RecordLatency(result.Model, time.Since(start).Seconds())
	u.metrics.RecordForecast(result.Model, symbol)
	u.metrics.RecordLastForecast(symbol, result.Price24h)

	if u.cache != nil {
		if err := u.cache.Set(ctx, key, result, u.cacheTTL); err != nil {
			u.logger.Warn("forecast cache write failed", applogger.Error(err))
		}
	}
	u.observe(symbol, horizon, result)

	return result, nil
}

func (u *ForecastUsecase) predict(ctx context.Context, symbol string, history models.History, horizon int) (models.Forecast, error) {
	if u.model != nil {
		result, err := u.model.Predict(ctx, symbol, history, horizon)
		if err == nil {
			return result, nil
		}
		u.metrics.RecordModelError(modelErrorKind(err))
		u.logger.Warn("kronos path failed, falling back to heuristic",
			applogger.String("symbol", symbol),
			applogger.Error(err),
		)
	}

	u.metrics.RecordFallback()
	result, err := u.heuristic.Predict(ctx, symbol, history, horizon)
	if err != nil {
		return models.Forecast{}, fmt.Errorf("%w: %v", models.ErrPredictionFailed, err)
	}
	return result, nil
}

// observe feeds the audit sinks without blocking the response path.
func (u *ForecastUsecase) observe(symbol string, horizon int, result models.Forecast) {
	if u.audit == nil && u.store == nil {
		return
	}

	event := models.AuditEvent{
		Symbol:     symbol,
		Model:      result.Model,
		Horizon:    horizon,
		Price24h:   result.Price24h,
		Confidence: result.Confidence,
		Trend:      result.Trend,
		Timestamp:  time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
		defer cancel()

		if u.audit != nil {
			if err := u.audit.Publish(ctx, event); err != nil {
				u.logger.Warn("audit publish failed", applogger.Error(err))
			}
		}
		if u.store != nil {
			if err := u.store.Save(ctx, event); err != nil {
				u.logger.Warn("forecast store write failed", applogger.Error(err))
			}
		}
	}()
}

func modelErrorKind(err error) string {
	switch {
	case errors.Is(err, models.ErrModelUnavailable):
		return "unavailable"
	case errors.Is(err, models.ErrDataInsufficient):
		return "insufficient_data"
	default:
		return "inference"
	}
}

// cacheKey hashes the full request so identical histories share a slot.
func cacheKey(symbol string, horizon int, history models.History) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(symbol))

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(horizon))
	_, _ = h.Write(buf[:])

	for _, series := range [][]models.RawSample{history.Prices, history.Volumes} {
		for _, s := range series {
			binary.LittleEndian.PutUint64(buf[:], uint64(s.TimestampMs))
			_, _ = h.Write(buf[:])
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(s.Value))
			_, _ = h.Write(buf[:])
		}
	}

	return fmt.Sprintf("forecast:%s:%d:%x", symbol, horizon, h.Sum64())
}
