package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/service"
)

// newTestConfig returns a relay config listening on the given addresses.
func newTestConfig(httpAddress, grpcAddress string) *config.ServerConfig {
	return &config.ServerConfig{
		App: config.ServerApp{HashKey: "hash-key"},
		Server: config.Server{
			HTTPAddress: httpAddress,
			GRPCAddress: grpcAddress,
		},
	}
}

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		http     string
		grpc     string
		wantHTTP bool
		wantGRPC bool
		wantErr  error
	}{
		{name: "both transports", http: ":8080", grpc: ":9090", wantHTTP: true, wantGRPC: true},
		{name: "only http", http: ":8080", wantHTTP: true},
		{name: "only grpc", grpc: ":9090", wantGRPC: true},
		{name: "no transports", wantErr: errNoHandlersAreCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// handlers only keep the pointer at construction time
			h, err := NewHandlers(&service.Services{}, newTestConfig(tt.http, tt.grpc), logger.Nop())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil)
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil)
		})
	}
}
