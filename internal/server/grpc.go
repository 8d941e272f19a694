package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-app-state-sync/internal/config"
	myGRPC "github.com/MKhiriev/go-app-state-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/wire"
)

type grpcServer struct {
	address string

	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer(
		grpc.ForceServerCodec(wire.RawCodec{}),
		grpc.ChainUnaryInterceptor(handler.UnaryInterceptors()...),
	)
	handler.Register(server)

	return &grpcServer{
		address: cfg.GRPCAddress,
		server:  server,
		logger:  logger,
	}
}

// listen binds the listener unless one was already provided.
func (g *grpcServer) listen() error {
	if g.gRPCNetListener != nil {
		return nil
	}
	lis, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("gRPC listen on %s: %w", g.address, err)
	}
	g.gRPCNetListener = lis
	return nil
}

func (g *grpcServer) RunServer() error {
	if err := g.listen(); err != nil {
		g.logger.Err(err).Msg("gRPC server listen")
		return err
	}

	g.logger.Info().Str("address", g.gRPCNetListener.Addr().String()).Msg("gRPC server listening")
	if err := g.server.Serve(g.gRPCNetListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		g.logger.Err(err).Msg("gRPC server Serve")
		return err
	}
	return nil
}

// Shutdown waits for in-flight calls and falls back to a hard stop when ctx
// ends first.
func (g *grpcServer) Shutdown(ctx context.Context) error {
	g.logger.Info().Msg("GRPC server Shutdown")

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		g.server.Stop()
		return ctx.Err()
	}
}
