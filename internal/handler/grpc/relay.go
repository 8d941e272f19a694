package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-app-state-sync/internal/app"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/metrics"
	"github.com/MKhiriev/go-app-state-sync/internal/utils"
	"github.com/MKhiriev/go-app-state-sync/internal/wire"
)

// SubmitQuery answers a sync query. The namespace comes from the
// x-namespace metadata, the device from the auth interceptor.
func (h *Handler) SubmitQuery(ctx context.Context, payload []byte) ([]byte, error) {
	defer metrics.ObserveQuery("grpc", time.Now())

	log := logger.FromContext(ctx)

	accountID, foundAccount := utils.GetAccountIDFromContext(ctx)
	deviceID, foundDevice := utils.GetDeviceIDFromContext(ctx)
	if !foundAccount || !foundDevice {
		log.Error().Str("func", "*Handler.SubmitQuery").Msg("no device in context")
		return nil, status.Error(codes.Unauthenticated, app.MsgNoDeviceInContext)
	}

	namespace := firstMetadataValue(ctx, wire.MetadataNamespace)
	response, err := h.services.RelayService.Submit(ctx, accountID, deviceID, namespace, payload)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.SubmitQuery").
			Str("namespace", namespace).
			Msg("query failed")
		return nil, statusFromError(err)
	}

	return response, nil
}

// RegisterDevice takes the device ID as payload and replies with the signed
// token.
func (h *Handler) RegisterDevice(ctx context.Context, deviceID []byte) ([]byte, error) {
	token, err := h.services.AuthService.RegisterDevice(ctx, string(deviceID))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Handler.RegisterDevice").Msg("device registration failed")
		return nil, statusFromError(err)
	}

	return []byte(token.SignedString), nil
}

func (h *Handler) DownloadBlob(ctx context.Context, path []byte) ([]byte, error) {
	data, err := h.services.RelayService.FetchBlob(ctx, string(path))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*Handler.DownloadBlob").
			Str("path", string(path)).
			Msg("blob download failed")
		return nil, statusFromError(err)
	}

	return data, nil
}

func firstMetadataValue(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}
