package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
)

const readHeaderTimeout = 5 * time.Second

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	server := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	if cfg.RequestTimeout > 0 {
		server.Handler = http.TimeoutHandler(handler, cfg.RequestTimeout, http.StatusText(http.StatusServiceUnavailable))
	}

	return &httpServer{
		server: server,
		logger: logger,
	}
}

func (h *httpServer) RunServer() error {
	h.logger.Info().Str("address", h.server.Addr).Msg("HTTP server listening")
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Err(err).Msg("HTTP server ListenAndServe")
		return err
	}
	return nil
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	h.logger.Info().Msg("HTTP server Shutdown")
	if err := h.server.Shutdown(ctx); err != nil {
		// ошибки закрытия Listener
		h.logger.Err(err).Msg("HTTP server Shutdown")
		return err
	}
	return nil
}
