package di

import (
	"context"
	"fmt"
	"time"

	"KronosServe/internal/domain/repository"
	"KronosServe/internal/handler/api"
	internalrepo "KronosServe/internal/repository"
	"KronosServe/internal/services/forecast"
	"KronosServe/internal/usecase"
	"KronosServe/pkg/cache"
	pkgch "KronosServe/pkg/clickhouse"
	"KronosServe/pkg/config"
	xhttp "KronosServe/pkg/http"
	pkgkafka "KronosServe/pkg/kafka"
	applogger "KronosServe/pkg/logger"
	"KronosServe/pkg/metrics"
	"KronosServe/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "stdout",
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideKronosClient creates the external model client and probes it.
func ProvideKronosClient(cfg *config.Config, logger *applogger.Logger) *forecast.KronosClient {
	return forecast.NewKronosClient(cfg, logger)
}

// ProvideHeuristic creates the fallback trend predictor.
func ProvideHeuristic() *forecast.Heuristic {
	return forecast.NewHeuristic()
}

// ProvideCache creates the forecast cache: Redis when configured, else
// in-memory. A failed Redis connection degrades to memory with a warning.
func ProvideCache(cfg *config.Config, logger *applogger.Logger) cache.Service {
	if cfg.Cache.Redis.Enabled {
		rc, err := cache.NewRedisCache(
			cache.WithAddr(cfg.Cache.Redis.Addr),
			cache.WithCredentials(cfg.Cache.Redis.Password),
			cache.WithDB(cfg.Cache.Redis.DB),
		)
		if err == nil {
			logger.Info("redis forecast cache ready", applogger.String("addr", cfg.Cache.Redis.Addr))
			return rc
		}
		logger.Warn("redis cache unavailable, using memory cache", applogger.Error(err))
	}
	return cache.NewMemoryCache(cache.WithMaxSize(cfg.Cache.MaxSize))
}

// ProvideAuditPublisher creates the Kafka audit publisher, or nil when
// auditing is disabled.
func ProvideAuditPublisher(cfg *config.Config, logger *applogger.Logger) (repository.AuditPublisher, error) {
	if !cfg.Audit.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Audit.Kafka.Brokers),
		pkgkafka.WithAsync(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	logger.Info("kafka audit publisher ready",
		applogger.Strings("brokers", cfg.Audit.Kafka.Brokers),
		applogger.String("topic", cfg.Audit.Kafka.Topic),
	)
	return internalrepo.NewKafkaAuditPublisher(producer, cfg.Audit.Kafka.Topic), nil
}

// ProvideClickHouseClient connects to ClickHouse and ensures the forecast
// schema, or returns nil when the history store is disabled.
func ProvideClickHouseClient(cfg *config.Config, logger *applogger.Logger) (*pkgch.Client, error) {
	if !cfg.Audit.ClickHouse.Enabled {
		return nil, nil
	}
	ch := cfg.Audit.ClickHouse
	client, err := pkgch.NewClient(
		pkgch.WithHost(ch.Host),
		pkgch.WithPort(ch.Port),
		pkgch.WithDatabase(ch.Database),
		pkgch.WithCredentials(ch.User, ch.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	table := ch.Database + ".forecasts"
	if err := client.InitSchema(ctx, internalrepo.SchemaFor(ch.Database, table)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	logger.Info("clickhouse forecast store ready", applogger.String("table", table))
	return client, nil
}

// ProvideForecastStore creates the ClickHouse history store when a client
// is available.
func ProvideForecastStore(client *pkgch.Client, cfg *config.Config) repository.ForecastStore {
	if client == nil {
		return nil
	}
	return internalrepo.NewClickHouseForecastStore(client.DB(), cfg.Audit.ClickHouse.Database+".forecasts")
}

// ProvideForecastUsecase wires the orchestrator.
func ProvideForecastUsecase(
	cfg *config.Config,
	kronos *forecast.KronosClient,
	heuristic *forecast.Heuristic,
	c cache.Service,
	audit repository.AuditPublisher,
	store repository.ForecastStore,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.ForecastUsecase {
	return usecase.NewForecastUsecase(kronos, heuristic, c, cfg.Cache.TTL, audit, store, m, logger)
}

// ProvideHandler creates the Echo API handler.
func ProvideHandler(logger *applogger.Logger, uc *usecase.ForecastUsecase, kronos *forecast.KronosClient) xhttp.Handler {
	return api.NewForecastEchoHandler(logger, uc, kronos)
}

// ProvideApp assembles the application with its closable resources.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	c cache.Service,
	audit repository.AuditPublisher,
	store repository.ForecastStore,
	chClient *pkgch.Client,
) *server.App {
	app := server.New(cfg, logger, handler)
	if c != nil {
		app.AddCloser("cache", c)
	}
	if audit != nil {
		app.AddCloser("audit publisher", audit)
	}
	if store != nil {
		app.AddCloser("forecast store", store)
	}
	if chClient != nil {
		app.AddCloser("clickhouse", chClient)
	}
	return app
}
