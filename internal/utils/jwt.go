package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-app-state-sync/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a device token is malformed, expired,
// signed with another key or lacks identity claims.
var ErrInvalidToken = errors.New("invalid device token")

// GenerateJWTToken creates a signed HMAC-SHA256 device token.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the relay that issued the token
//   - Subject   (sub): the device ID
//   - acc            : the account whose log the device may access
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("relay", "acc-1", "phone", time.Hour, "secret")
func GenerateJWTToken(issuer, accountID, deviceID string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || accountID == "" || deviceID == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &models.DeviceClaims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   deviceID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, AccountID: accountID, DeviceID: deviceID}, nil
}

// ValidateAndParseJWTToken validates the given device token and extracts
// its identity.
//
// Validation includes:
//   - Signature verification using the provided sign key (HS256 only)
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Presence of the subject and account claims
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "relay")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.DeviceClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" || claims.AccountID == "" {
		return models.Token{}, fmt.Errorf("%w: empty subject or account", ErrInvalidToken)
	}

	return models.Token{
		Token:        token,
		SignedString: tokenString,
		AccountID:    claims.AccountID,
		DeviceID:     claims.Subject,
	}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

// TokenExpiresAt reads the exp claim without verifying the signature. The
// client uses it to refresh its token before the relay starts rejecting it.
func TokenExpiresAt(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &models.DeviceClaims{})
	if err != nil {
		return time.Time{}, err
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errors.New("token has no expiration")
	}
	return exp.Time, nil
}
