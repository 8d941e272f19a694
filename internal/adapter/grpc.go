package adapter

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/crypto"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/wire"
	"github.com/MKhiriev/go-app-state-sync/models"
)

// grpcServerAdapter talks to the relay's raw-frame gRPC service. Frames are
// the same bytes the HTTP adapter sends as request bodies.
type grpcServerAdapter struct {
	conn    *grpc.ClientConn
	cfg     config.ClientAdapter

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewGRPCServerAdapter dials adapterCfg.GRPCAddress lazily; the first call
// establishes the connection.
func NewGRPCServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	addr := strings.TrimSpace(adapterCfg.GRPCAddress)
	if addr == "" {
		return nil, ErrNoAddress
	}

	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(wire.RawCodec{})),
	)
	if err != nil {
		return nil, fmt.Errorf("create grpc client: %w", err)
	}

	return &grpcServerAdapter{conn: conn, cfg: adapterCfg, logger: logger}, nil
}

func (g *grpcServerAdapter) SetToken(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = strings.TrimSpace(token)
}

func (g *grpcServerAdapter) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

func (g *grpcServerAdapter) RegisterDevice(ctx context.Context, deviceID string) (models.Token, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	in := []byte(deviceID)
	var out []byte
	if err := g.conn.Invoke(ctx, wire.MethodRegisterDevice, &in, &out); err != nil {
		return models.Token{}, mapGRPCError(err)
	}

	signed := string(out)
	g.SetToken(signed)
	return parseDeviceToken(signed, deviceID), nil
}

func (g *grpcServerAdapter) SubmitQuery(ctx context.Context, namespace string, payload []byte) ([]byte, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	ctx = metadata.AppendToOutgoingContext(g.authed(ctx), wire.MetadataNamespace, namespace)

	var out []byte
	if err := g.conn.Invoke(ctx, wire.MethodSubmitQuery, &payload, &out); err != nil {
		err = mapGRPCError(err)
		g.logger.Debug().
			Err(err).
			Str("func", "grpcServerAdapter.SubmitQuery").
			Str("namespace", namespace).
			Msg("relay rejected query")
		return nil, err
	}

	return out, nil
}

func (g *grpcServerAdapter) Download(ctx context.Context, ref *models.ExternalBlobReference) ([]byte, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	in := []byte(strings.TrimPrefix(ref.DirectPath, "/"))
	var out []byte
	if err := g.conn.Invoke(g.authed(ctx), wire.MethodDownloadBlob, &in, &out); err != nil {
		return nil, mapGRPCError(err)
	}

	return crypto.DecryptBlob(ref, out)
}

func (g *grpcServerAdapter) Close() error {
	return g.conn.Close()
}

func (g *grpcServerAdapter) authed(ctx context.Context) context.Context {
	if token := g.Token(); token != "" {
		return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
	}
	return ctx
}

func (g *grpcServerAdapter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.cfg.RequestTimeout)
}
