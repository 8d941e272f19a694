package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-app-state-sync/internal/adapter"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/utils"
	"github.com/MKhiriev/go-app-state-sync/models"
)

// tokenRefreshWindow is how long before expiry a token is renewed.
const tokenRefreshWindow = time.Minute

type clientAuthService struct {
	deviceID string
	adapter  adapter.ServerAdapter
	now      func() time.Time
}

func NewClientAuthService(deviceID string, serverAdapter adapter.ServerAdapter) ClientAuthService {
	return &clientAuthService{deviceID: deviceID, adapter: serverAdapter, now: time.Now}
}

func (a *clientAuthService) Register(ctx context.Context) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := a.adapter.RegisterDevice(ctx, a.deviceID)
	if err != nil {
		log.Err(err).
			Str("func", "clientAuthService.Register").
			Str("device_id", a.deviceID).
			Msg("device registration failed")
		return models.Token{}, fmt.Errorf("register device: %w", err)
	}

	log.Info().
		Str("func", "clientAuthService.Register").
		Str("device_id", token.DeviceID).
		Str("account_id", token.AccountID).
		Msg("device registered")
	return token, nil
}

func (a *clientAuthService) EnsureToken(ctx context.Context) error {
	current := a.adapter.Token()
	if current != "" {
		expiresAt, err := utils.TokenExpiresAt(current)
		if err == nil && a.now().Add(tokenRefreshWindow).Before(expiresAt) {
			return nil
		}
	}

	_, err := a.Register(ctx)
	return err
}
