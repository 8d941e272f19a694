package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/crypto"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/utils"
	"github.com/MKhiriev/go-app-state-sync/models"
)

// HashHeader carries the hex HMAC-SHA256 of a request body under the shared
// hash key.
const HashHeader = "HashSHA256"

const contentTypeProtobuf = "application/x-protobuf"

type httpServerAdapter struct {
	client *utils.HTTPClient

	hashKey string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewServerAdapter returns the gRPC adapter when a gRPC address is
// configured and the HTTP adapter otherwise.
func NewServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	switch {
	case adapterCfg.GRPCAddress != "":
		return NewGRPCServerAdapter(adapterCfg, logger)
	case adapterCfg.HTTPAddress != "":
		return NewHTTPServerAdapter(adapterCfg, appCfg, logger)
	default:
		return nil, ErrNoAddress
	}
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress,
// configures the underlying HTTP client with the resolved base URL and request
// timeout, and initialises the shared HMAC hasher pool used for body hashes.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	if appCfg.HashKey != "" {
		utils.InitHasherPool(appCfg.HashKey)
	}

	return &httpServerAdapter{client: client, hashKey: appCfg.HashKey, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// RegisterDevice POSTs the device ID to /api/devices. The token is taken
// from the Authorization response header.
func (h *httpServerAdapter) RegisterDevice(ctx context.Context, deviceID string) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.DeviceRegistration{DeviceID: deviceID}).
		Post("/api/devices")
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: register device request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	signed, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("register device parse bearer token: %w", err)
	}

	h.SetToken(signed)
	return parseDeviceToken(signed, deviceID), nil
}

// SubmitQuery POSTs payload to /api/sync/{namespace} and returns the raw
// response body.
func (h *httpServerAdapter) SubmitQuery(ctx context.Context, namespace string, payload []byte) ([]byte, error) {
	req := h.authedRequest(ctx).
		SetHeader("Content-Type", contentTypeProtobuf).
		SetPathParam("namespace", namespace).
		SetBody(payload)
	if h.hashKey != "" {
		req.SetHeader(HashHeader, utils.HashHex(payload))
	}

	resp, err := req.Post("/api/sync/{namespace}")
	if err != nil {
		return nil, fmt.Errorf("%w: submit query: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().
			Err(err).
			Str("func", "httpServerAdapter.SubmitQuery").
			Str("namespace", namespace).
			Msg("relay rejected query")
		return nil, err
	}

	return resp.Body(), nil
}

// Download GETs /api/blobs/{directPath} and decrypts the file.
func (h *httpServerAdapter) Download(ctx context.Context, ref *models.ExternalBlobReference) ([]byte, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("path", strings.TrimPrefix(ref.DirectPath, "/")).
		Get("/api/blobs/{path}")
	if err != nil {
		return nil, fmt.Errorf("%w: download blob: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return crypto.DecryptBlob(ref, resp.Body())
}

func (h *httpServerAdapter) Close() error {
	return nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// parseDeviceToken reads the claims of a token issued by the relay. The
// client has no sign key, so the signature is not checked here.
func parseDeviceToken(signed, deviceID string) models.Token {
	token := models.Token{SignedString: signed, DeviceID: deviceID}

	claims := &models.DeviceClaims{}
	parsed, _, err := jwt.NewParser().ParseUnverified(signed, claims)
	if err != nil {
		return token
	}

	token.Token = parsed
	token.AccountID = claims.AccountID
	if claims.Subject != "" {
		token.DeviceID = claims.Subject
	}
	return token
}
