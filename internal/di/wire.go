//go:build wireinject
// +build wireinject

package di

import (
	"KronosServe/pkg/config"
	"KronosServe/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Forecasters
		ProvideKronosClient,
		ProvideHeuristic,

		// Infrastructure
		ProvideCache,
		ProvideAuditPublisher,
		ProvideClickHouseClient,
		ProvideForecastStore,

		// Use case and API surface
		ProvideForecastUsecase,
		ProvideHandler,

		ProvideApp,
	)
	return &server.App{}, nil
}
