// Package server owns the lifecycle of the HTTP listener: startup,
// signal-driven graceful shutdown, and request timeouts.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ebalakin/credvault/internal/config"
	"github.com/ebalakin/credvault/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// HTTPServer wraps http.Server with the application's logger.
type HTTPServer struct {
	server *http.Server
	logger *logger.Logger
}

// NewHTTPServer builds the listener from the server configuration and the
// prepared router.
func NewHTTPServer(cfg config.Server, router http.Handler, log *logger.Logger) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:         cfg.Address,
			Handler:      http.TimeoutHandler(router, cfg.RequestTimeout, "request timed out"),
			ReadTimeout:  cfg.RequestTimeout,
			WriteTimeout: cfg.RequestTimeout + time.Second,
		},
		logger: log,
	}
}

// Run serves until SIGINT/SIGTERM arrives, then shuts down gracefully
// within shutdownTimeout.
func (h *HTTPServer) Run() error {
	errCh := make(chan error, 1)

	go func() {
		h.logger.Info().Str("address", h.server.Addr).Msg("http server listening")
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		h.logger.Info().Str("signal", sig.String()).Msg("shutting down http server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Msg("http server shutdown error")
		return err
	}

	return nil
}
