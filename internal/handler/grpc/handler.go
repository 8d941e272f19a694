package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/service"
	"github.com/MKhiriev/go-app-state-sync/internal/wire"
)

// Handler is the root gRPC transport handler.
//
// It serves the appsync.Relay service. Every method takes and returns a raw
// frame, so the server must run with [wire.RawCodec] forced as its codec.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// RelayServer is the handler type of the appsync.Relay service.
type RelayServer interface {
	SubmitQuery(ctx context.Context, payload []byte) ([]byte, error)
	RegisterDevice(ctx context.Context, deviceID []byte) ([]byte, error)
	DownloadBlob(ctx context.Context, path []byte) ([]byte, error)
}

// ServiceDesc describes appsync.Relay for [grpc.Server.RegisterService]
// with the Handler as its implementation.
func (h *Handler) ServiceDesc() *grpc.ServiceDesc {
	return &grpc.ServiceDesc{
		ServiceName: wire.RelayService,
		HandlerType: (*RelayServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "SubmitQuery",
				Handler:    unaryHandler(wire.MethodSubmitQuery, RelayServer.SubmitQuery),
			},
			{
				MethodName: "RegisterDevice",
				Handler:    unaryHandler(wire.MethodRegisterDevice, RelayServer.RegisterDevice),
			},
			{
				MethodName: "DownloadBlob",
				Handler:    unaryHandler(wire.MethodDownloadBlob, RelayServer.DownloadBlob),
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "appsync/relay",
	}
}

// Register adds the relay service to server.
func (h *Handler) Register(server *grpc.Server) {
	server.RegisterService(h.ServiceDesc(), h)
}

func unaryHandler(fullMethod string, call func(RelayServer, context.Context, []byte) ([]byte, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		var in []byte
		if err := dec(&in); err != nil {
			return nil, err
		}

		handle := func(ctx context.Context, req any) (any, error) {
			out, err := call(srv.(RelayServer), ctx, *req.(*[]byte))
			if err != nil {
				return nil, err
			}
			return &out, nil
		}

		if interceptor == nil {
			return handle(ctx, &in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		return interceptor(ctx, &in, info, handle)
	}
}
