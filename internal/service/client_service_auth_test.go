package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-app-state-sync/internal/utils"
	"github.com/MKhiriev/go-app-state-sync/models"
)

// stubServerAdapter implements adapter.ServerAdapter for auth tests.
// Registration issues a token valid for tokenTTL.
type stubServerAdapter struct {
	*fakeRelay

	mu          sync.Mutex
	token       string
	tokenTTL    time.Duration
	registerErr error
	registered  []string
}

func newStubServerAdapter(ttl time.Duration) *stubServerAdapter {
	return &stubServerAdapter{fakeRelay: newFakeRelay(testRelayConfig()), tokenTTL: ttl}
}

func (a *stubServerAdapter) SetToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
}

func (a *stubServerAdapter) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

func (a *stubServerAdapter) RegisterDevice(_ context.Context, deviceID string) (models.Token, error) {
	a.mu.Lock()
	a.registered = append(a.registered, deviceID)
	err := a.registerErr
	a.mu.Unlock()
	if err != nil {
		return models.Token{}, err
	}

	token, err := utils.GenerateJWTToken("relay", testAccountID, deviceID, a.tokenTTL, "secret")
	if err != nil {
		return models.Token{}, err
	}
	a.SetToken(token.SignedString)
	return token, nil
}

func (a *stubServerAdapter) Close() error { return nil }

func (a *stubServerAdapter) registrations() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.registered)
}

func TestClientAuthService_Register(t *testing.T) {
	serverAdapter := newStubServerAdapter(time.Hour)
	auth := NewClientAuthService("phone-1", serverAdapter)

	token, err := auth.Register(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "phone-1", token.DeviceID)
	assert.Equal(t, testAccountID, token.AccountID)
	assert.Equal(t, token.SignedString, serverAdapter.Token())
}

func TestClientAuthService_Register_Error(t *testing.T) {
	serverAdapter := newStubServerAdapter(time.Hour)
	serverAdapter.registerErr = errors.New("relay down")
	auth := NewClientAuthService("phone-1", serverAdapter)

	_, err := auth.Register(context.Background())
	assert.ErrorIs(t, err, serverAdapter.registerErr)
}

func TestClientAuthService_EnsureToken(t *testing.T) {
	tests := []struct {
		name             string
		ttl              time.Duration
		wantRegistration int
	}{
		{name: "long lived token is kept", ttl: time.Hour, wantRegistration: 1},
		{name: "token about to expire is renewed", ttl: 30 * time.Second, wantRegistration: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			serverAdapter := newStubServerAdapter(tt.ttl)
			auth := NewClientAuthService("phone-1", serverAdapter)

			// no token yet
			require.NoError(t, auth.EnsureToken(ctx))
			assert.Equal(t, 1, serverAdapter.registrations())

			require.NoError(t, auth.EnsureToken(ctx))
			assert.Equal(t, tt.wantRegistration, serverAdapter.registrations())
		})
	}
}

func TestClientAuthService_EnsureToken_Garbage(t *testing.T) {
	serverAdapter := newStubServerAdapter(time.Hour)
	serverAdapter.SetToken("not-a-jwt")
	auth := NewClientAuthService("phone-1", serverAdapter)

	require.NoError(t, auth.EnsureToken(context.Background()))
	assert.Equal(t, 1, serverAdapter.registrations())
}
