package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/utils"
	"github.com/MKhiriev/go-app-state-sync/internal/wire"
)

const (
	traceIDMetadata       = "x-trace-id"
	authorizationMetadata = "authorization"
)

// UnaryInterceptors returns the interceptor chain of the relay server:
// request logging with a trace ID, then device authentication.
func (h *Handler) UnaryInterceptors() []grpc.UnaryServerInterceptor {
	return []grpc.UnaryServerInterceptor{h.withLogging, h.auth}
}

func (h *Handler) withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	traceID := firstMetadataValue(ctx, traceIDMetadata)
	if traceID == "" {
		traceID = uuid.NewString()
	}

	ctx, l := h.logger.WithTraceID(ctx, traceID)

	start := time.Now()
	resp, err := handler(ctx, req)

	l.Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}

// auth checks the bearer token of every method except RegisterDevice and
// puts the account and device into the context.
func (h *Handler) auth(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if info.FullMethod == wire.MethodRegisterDevice {
		return handler(ctx, req)
	}

	log := logger.FromContext(ctx)

	tokenString, err := utils.ParseBearerToken(firstMetadataValue(ctx, authorizationMetadata))
	if err != nil {
		log.Err(err).Str("method", info.FullMethod).Msg("no bearer token")
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	token, err := h.services.AuthService.ParseToken(ctx, tokenString)
	if err != nil {
		log.Err(err).Str("method", info.FullMethod).Msg("error occurred during parsing token")
		return nil, statusFromError(err)
	}

	return handler(utils.WithDevice(ctx, token.AccountID, token.DeviceID), req)
}
