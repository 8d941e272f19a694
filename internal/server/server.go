package server

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/handler"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
)

// shutdownTimeout bounds the graceful stop of all transports.
const shutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := new(server)

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	servers.logger = logger

	return servers, nil
}

// RunServer serves until SIGTERM, SIGINT or SIGQUIT, then shuts every
// transport down.
func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.run(ctx)
}

func (s *server) Shutdown(ctx context.Context) error {
	var err error

	// finish HTTP server
	if s.httpServer != nil {
		err = multierr.Append(err, s.httpServer.Shutdown(ctx))
	}

	// finish gRPC server
	if s.gRPCServer != nil {
		err = multierr.Append(err, s.gRPCServer.Shutdown(ctx))
	}

	return err
}

// run blocks until ctx ends or one of the servers fails.
func (s *server) run(ctx context.Context) error {
	// check if any server was created
	if s.httpServer == nil && s.gRPCServer == nil {
		return errNoServersToRun
	}

	group, groupCtx := errgroup.WithContext(ctx)

	// launch all created servers
	if s.httpServer != nil {
		s.logger.Info().Msg("Launching HTTP server")
		group.Go(s.httpServer.RunServer)
	}
	if s.gRPCServer != nil {
		s.logger.Info().Msg("Launching GRPC server")
		group.Go(s.gRPCServer.RunServer)
	}

	// listen for stop signals or a failed server
	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// finish started servers
		return s.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		s.logger.Err(err).Msg("server stopped with error")
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
