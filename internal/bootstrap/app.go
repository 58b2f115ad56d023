package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/funzone-site/internal/infra/config"
	"github.com/yanqian/funzone-site/internal/infra/telemetry"
)

// App encapsulates the HTTP server lifecycle.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	server    *http.Server
	telemetry *telemetry.Provider
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, tp *telemetry.Provider) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, telemetry: tp}
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address, "tracing", a.telemetry.Enabled())
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		serverErr := a.server.Shutdown(shutdownCtx)
		return errors.Join(serverErr, a.flushTelemetry(shutdownCtx))
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return errors.Join(err, a.flushTelemetry(flushCtx))
	}
}

func (a *App) flushTelemetry(ctx context.Context) error {
	if err := a.telemetry.Shutdown(ctx); err != nil {
		a.logger.Error("telemetry shutdown failed", "error", err)
		return err
	}
	return nil
}
