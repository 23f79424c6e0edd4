//go:build wireinject
// +build wireinject

package di

import (
	"StockAdvisor/pkg/config"
	"StockAdvisor/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// The cleanup function closes the infrastructure clients.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideRedisClient,
		ProvideKafkaProducer,

		// Adapters
		ProvideBytesCache,
		ProvideMarketData,
		ProvidePolisher,
		ProvideExplanationCache,
		ProvideWatchlistStore,
		ProvideProfileStore,
		ProvideBackupSink,

		// Use cases
		ProvideProfileService,
		ProvideMarketService,
		ProvideExplainer,
		ProvideWatchlistService,

		// HTTP
		ProvideHandlers,
		ProvideHTTPServer,
		ProvideApp,
	)
	return nil, nil, nil
}
