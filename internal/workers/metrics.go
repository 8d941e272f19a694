package workers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/go-app-state-sync/internal/logger"
)

const metricsShutdownTimeout = 5 * time.Second

// metricsWorker serves /metrics of the client.
type metricsWorker struct {
	address string
	logger  *logger.Logger
}

func NewMetricsWorker(address string, logger *logger.Logger) Worker {
	return &metricsWorker{address: address, logger: logger}
}

func (w *metricsWorker) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", w.address)
	if err != nil {
		return err
	}
	return w.serve(ctx, lis)
}

func (w *metricsWorker) serve(ctx context.Context, lis net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	served := make(chan error, 1)
	go func() {
		w.logger.Info().Str("address", lis.Addr().String()).Msg("metrics endpoint listening")
		served <- server.Serve(lis)
	}()

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-served; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
