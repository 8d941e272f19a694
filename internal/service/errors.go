package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-app-state-sync/models"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrDecodeFailure wraps anything that stopped a pulled page from being
	// applied: a failed MAC, a missing key, a malformed patch or snapshot.
	ErrDecodeFailure = errors.New("app state decode failure")

	// ErrCollectionSync is matched by [*CollectionSyncError].
	ErrCollectionSync = errors.New("collection sync failed")

	// ErrNoAppStateKey is returned when the key a record references, or any
	// key at all for a push, is not provisioned on this device.
	ErrNoAppStateKey = errors.New("no app state sync key")

	// ErrPushQueued is returned when a push could not reach the relay and
	// was stored for the next [AppStateService.Flush].
	ErrPushQueued = errors.New("push queued")

	ErrUnknownClientType = errors.New("unknown client type")
	ErrTokenIsExpired    = errors.New("token is expired")
)

// Relay errors.
var (
	ErrUnknownNamespace = errors.New("unknown query namespace")
	ErrInvalidQuery     = errors.New("invalid sync query")
	ErrEmptyDeviceID    = errors.New("device id is empty")
	ErrBlobNotFound     = errors.New("blob not found")

	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
)

// CollectionSyncError is the error the relay reported for one collection.
type CollectionSyncError struct {
	Collection models.Collection
	Code       uint32
	Text       string
}

func (e *CollectionSyncError) Error() string {
	return fmt.Sprintf("%s: %s: code %d: %s", ErrCollectionSync, e.Collection, e.Code, e.Text)
}

func (e *CollectionSyncError) Unwrap() error {
	return ErrCollectionSync
}
