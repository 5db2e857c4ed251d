//go:build wireinject
// +build wireinject

package di

import (
	"JupLens/pkg/config"
	"JupLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure
		ProvideLogger,
		ProvideCache,
		ProvideMetrics,
		ProvideLimiter,

		// External clients
		ProvideJupiterClient,
		ProvideCatalogSource,
		ProvidePriceSource,
		ProvideQuoteSource,
		ProvideInsight,

		// Use cases
		ProvideCatalogService,
		ProvideValuer,
		ProvidePortfolioAnalyzer,
		ProvideRouteAnalyzer,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
