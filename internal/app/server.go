package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/containerlens/containerlens/internal/adapters/in/http/containers"
	"github.com/containerlens/containerlens/internal/adapters/in/http/middleware"
	"github.com/containerlens/containerlens/internal/logging"
)

// NewServer builds the echo instance serving the HTTP API.
func (r *Runtime) NewServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = 30 * time.Second
	e.Server.WriteTimeout = 30 * time.Second
	e.Server.IdleTimeout = 120 * time.Second

	e.Use(middleware.PanicRecovery(r.Log))
	e.Use(middleware.RequestLogger(r.Log))
	e.Use(middleware.SecurityHeaders())

	containers.NewHandler(r.Containers, r.Access).RegisterRoutes(e)
	return e
}

// Serve runs the HTTP API until ctx is cancelled or a termination signal arrives.
func (r *Runtime) Serve(ctx context.Context) error {
	log := r.Log.With().Str(logging.FieldLayer, "app").Logger()

	shutdownTimeout, err := time.ParseDuration(r.Config.Server.ShutdownTimeout)
	if err != nil || shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	e := r.NewServer()
	addr := fmt.Sprintf(":%d", r.Config.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP API listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-ctx.Done():
		log.Info().Msg("context cancelled, shutting down")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
	return nil
}
