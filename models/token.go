package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// DeviceClaims is the claim set of a device token. The subject is the
// device ID; AccountID names the log the device reads and appends to.
type DeviceClaims struct {
	AccountID string `json:"acc"`
	jwt.RegisteredClaims
}

// Token wraps a signed device JWT with its parsed identity.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"token"`

	// AccountID and DeviceID are cached copies of the "acc" and "sub" claims.
	AccountID string `json:"-"`
	DeviceID  string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// DeviceRegistration is the body of a device registration request.
type DeviceRegistration struct {
	DeviceID string `json:"device_id"`
}
