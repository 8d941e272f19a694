package service

import (
	"context"

	"github.com/MKhiriev/go-app-state-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// RelayService answers sync queries of the devices of one account.
type RelayService interface {
	// Submit decodes a query sent to namespace and returns the encoded
	// response. Per-collection failures travel inside the response.
	Submit(ctx context.Context, accountID, deviceID, namespace string, payload []byte) ([]byte, error)

	// FetchBlob returns a stored blob exactly as it was written.
	FetchBlob(ctx context.Context, path string) ([]byte, error)
}

type AuthService interface {
	RegisterDevice(ctx context.Context, deviceID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
