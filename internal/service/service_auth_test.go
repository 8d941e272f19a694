package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
)

func testServerApp() config.ServerApp {
	return config.ServerApp{
		TokenSignKey:  "sign-key",
		TokenIssuer:   "relay",
		TokenDuration: time.Hour,
		AccountID:     testAccountID,
	}
}

func TestAuthService_RegisterDevice(t *testing.T) {
	auth := NewAuthService(testServerApp(), logger.Nop())
	ctx := context.Background()

	token, err := auth.RegisterDevice(ctx, "  laptop ")
	require.NoError(t, err)
	assert.Equal(t, "laptop", token.DeviceID)
	assert.Equal(t, testAccountID, token.AccountID)

	parsed, err := auth.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "laptop", parsed.DeviceID)
	assert.Equal(t, testAccountID, parsed.AccountID)
}

func TestAuthService_RegisterDevice_EmptyID(t *testing.T) {
	auth := NewAuthService(testServerApp(), logger.Nop())

	_, err := auth.RegisterDevice(context.Background(), " ")
	assert.ErrorIs(t, err, ErrEmptyDeviceID)
}

func TestAuthService_RegisterDevice_NoSignKey(t *testing.T) {
	cfg := testServerApp()
	cfg.TokenSignKey = ""
	auth := NewAuthService(cfg, logger.Nop())

	_, err := auth.RegisterDevice(context.Background(), "laptop")
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_ParseToken_Rejects(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService(testServerApp(), logger.Nop())

	otherCfg := testServerApp()
	otherCfg.TokenSignKey = "other-key"
	foreign, err := NewAuthService(otherCfg, logger.Nop()).RegisterDevice(ctx, "laptop")
	require.NoError(t, err)

	expiredCfg := testServerApp()
	expiredCfg.TokenDuration = -time.Minute
	expired, err := NewAuthService(expiredCfg, logger.Nop()).RegisterDevice(ctx, "laptop")
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"garbage":       "abc.def.ghi",
		"foreign key":   foreign.SignedString,
		"expired token": expired.SignedString,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := auth.ParseToken(ctx, raw)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}
