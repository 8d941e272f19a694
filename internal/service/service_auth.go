package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/utils"
	"github.com/MKhiriev/go-app-state-sync/models"
)

// authService issues and checks device tokens. Every device of this relay
// belongs to the single configured account.
type authService struct {
	// accountID is the account every registered device is bound to.
	accountID string

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

func NewAuthService(cfg config.ServerApp, logger *logger.Logger) AuthService {
	return &authService{
		accountID:     cfg.AccountID,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// RegisterDevice issues a signed JWT for deviceID.
func (a *authService) RegisterDevice(ctx context.Context, deviceID string) (models.Token, error) {
	log := logger.FromContext(ctx)

	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		log.Error().Str("func", "authService.RegisterDevice").Msg("empty device id")
		return models.Token{}, ErrEmptyDeviceID
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, a.accountID, deviceID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "authService.RegisterDevice").Str("device_id", deviceID).Msg("token creation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	log.Info().Str("func", "authService.RegisterDevice").Str("device_id", deviceID).Msg("device registered")
	return token, nil
}

// ParseToken validates and parses a raw JWT string. Any validation failure
// (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
