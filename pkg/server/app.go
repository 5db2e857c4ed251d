package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"JupLens/internal/usecase"
	"JupLens/pkg/cache"
	"JupLens/pkg/config"
	xhttp "JupLens/pkg/http"
	applogger "JupLens/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	catalog     *usecase.CatalogService
	cacheSvc    cache.Service
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	catalog *usecase.CatalogService,
	cacheSvc cache.Service,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:         cfg,
		logger:      logger,
		catalog:     catalog,
		cacheSvc:    cacheSvc,
		httpHandler: handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(a.cfg.Metrics.Path),
		xhttp.WithLogger(a.logger),
	)

	// Warm the catalog in the background; requests served before the
	// first refresh see an empty snapshot and degrade per token.
	go func() {
		warmCtx, warmCancel := context.WithTimeout(ctx, 2*time.Minute)
		defer warmCancel()
		if err := a.catalog.Refresh(warmCtx); err != nil {
			a.logger.Warn("initial catalog refresh failed", applogger.Error(err))
		}
	}()

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.cacheSvc != nil {
		if err := a.cacheSvc.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
