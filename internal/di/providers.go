package di

import (
	"fmt"

	"JupLens/internal/domain/repository"
	domsvc "JupLens/internal/domain/service"
	"JupLens/internal/handler/api"
	"JupLens/internal/service/jupiter"
	"JupLens/internal/service/openrouter"
	"JupLens/internal/service/ratelimit"
	"JupLens/internal/usecase"
	"JupLens/pkg/cache"
	"JupLens/pkg/config"
	xhttp "JupLens/pkg/http"
	applogger "JupLens/pkg/logger"
	"JupLens/pkg/metrics"
	"JupLens/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lcfg := &applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lcfg.Level == "" {
		lcfg.Level = "info"
	}
	if lcfg.Format == "" {
		lcfg.Format = "console"
	}
	if lcfg.Output == "" {
		lcfg.Output = "stdout"
	}
	return applogger.New(lcfg)
}

// ProvideCache creates the configured cache backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	maxSize := cfg.Cache.MaxSize
	if maxSize <= 0 {
		maxSize = 10000
	}

	switch cfg.Cache.Backend {
	case "", "memory":
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(maxSize)), nil
	case "redis", "layered":
		rc, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		if cfg.Cache.Backend == "redis" {
			return rc, nil
		}
		return cache.NewLayeredCache(rc, cache.WithLayeredMemorySize(maxSize)), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideJupiterClient creates the Jupiter API client.
func ProvideJupiterClient(cfg *config.Config, logger *applogger.Logger) *jupiter.Client {
	return jupiter.NewClient(
		cfg.Jupiter.TokenListURL,
		cfg.Jupiter.PriceURL,
		cfg.Jupiter.QuoteURL,
		cfg.Jupiter.Timeout,
		jupiter.WithLogger(logger),
	)
}

// ProvideCatalogSource exposes the Jupiter client as the catalog source.
func ProvideCatalogSource(c *jupiter.Client) repository.CatalogSource { return c }

// ProvidePriceSource exposes the Jupiter client as the price source.
func ProvidePriceSource(c *jupiter.Client) repository.PriceSource { return c }

// ProvideQuoteSource exposes the Jupiter client as the quote source.
func ProvideQuoteSource(c *jupiter.Client) repository.QuoteSource { return c }

// ProvideLimiter creates the outbound rate limiter.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideCatalogService creates the catalog snapshot holder.
func ProvideCatalogService(
	cfg *config.Config,
	source repository.CatalogSource,
	cacheSvc cache.Service,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.CatalogService {
	return usecase.NewCatalogService(source, cacheSvc, m, logger, cfg.Jupiter.CatalogTTL)
}

// ProvideValuer creates the portfolio valuer.
func ProvideValuer(
	cfg *config.Config,
	prices repository.PriceSource,
	limiter *ratelimit.Limiter,
	cacheSvc cache.Service,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.Valuer {
	return usecase.NewValuer(
		prices,
		limiter,
		cacheSvc,
		m,
		logger,
		cfg.Jupiter.PriceTTL,
		cfg.Jupiter.RateLimit.Capacity,
		cfg.Jupiter.RateLimit.RefillPerSec,
	)
}

// ProvideInsight creates the narrative provider, or nil when disabled.
func ProvideInsight(cfg *config.Config, logger *applogger.Logger) domsvc.InsightProvider {
	if !cfg.Insight.Enabled {
		return nil
	}
	return openrouter.NewClient(
		cfg.Insight.BaseURL,
		cfg.Insight.APIKey,
		cfg.Insight.Models,
		cfg.Insight.Timeout,
		logger,
	)
}

// ProvidePortfolioAnalyzer creates the portfolio analysis use case.
func ProvidePortfolioAnalyzer(
	catalog *usecase.CatalogService,
	valuer *usecase.Valuer,
	insight domsvc.InsightProvider,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.PortfolioAnalyzer {
	return usecase.NewPortfolioAnalyzer(catalog, valuer, insight, m, logger)
}

// ProvideRouteAnalyzer creates the route analysis use case.
func ProvideRouteAnalyzer(
	quotes repository.QuoteSource,
	catalog *usecase.CatalogService,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.RouteAnalyzer {
	return usecase.NewRouteAnalyzer(quotes, catalog, m, logger)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(
	logger *applogger.Logger,
	catalog *usecase.CatalogService,
	portfolio *usecase.PortfolioAnalyzer,
	routes *usecase.RouteAnalyzer,
) xhttp.Handler {
	return api.NewAnalyticsHandler(logger, catalog, portfolio, routes)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	catalog *usecase.CatalogService,
	cacheSvc cache.Service,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, logger, catalog, cacheSvc, handler)
}
