package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-app-state-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// KeyProvider resolves app state sync keys of this device and the mutation
// keys derived from them. Missing keys are reported as ErrNoAppStateKey.
type KeyProvider interface {
	// Latest returns the newest provisioned key, used for every push.
	Latest(ctx context.Context) (models.AppStateSyncKey, models.MutationKeys, error)

	// Find returns the mutation keys of the key a record or patch references.
	Find(ctx context.Context, keyID []byte) (models.MutationKeys, error)

	// Import stores a key provisioned out of band.
	Import(ctx context.Context, key models.AppStateSyncKey) error
}

// Listener receives the effects of applied mutations. Callbacks run
// synchronously on the goroutine that applied the patch, in mutation order,
// and must not call back into the sync engine.
type Listener interface {
	// OnAction is called for every chat, contact, message or label action.
	OnAction(action models.ActionPayload, index models.MessageIndex)

	// OnSetting is called for every account setting.
	OnSetting(setting models.ActionPayload)

	// OnFeatures is called with the flags of a primary feature mutation.
	OnFeatures(flags []string)

	// OnInitialSync is called once, after every collection has been synced
	// at least to version 1.
	OnInitialSync()
}

// Dispatcher applies decoded mutations to the domain store and fans them
// out to listeners.
type Dispatcher interface {
	// Dispatch applies mutations in order. A target that cannot be resolved
	// only skips that mutation's domain effect; the returned error reports
	// domain store failures.
	Dispatch(ctx context.Context, mutations []models.Mutation) error

	Observe(listener Listener)

	// InitialSyncCompleted notifies listeners that the first full sync is done.
	InitialSyncCompleted()
}

// AppStateService keeps the local collection states in sync with the relay.
//
// Pull and Push are serialised by two FIFO gates: concurrent pulls queue
// behind each other, a push waits for the running pull and blocks new ones
// while its patch is in flight.
type AppStateService interface {
	// Pull fetches and applies everything the relay has past the local
	// version of each collection. No collections means all of them.
	Pull(ctx context.Context, collections ...models.Collection) error

	// Push encrypts mutations into one patch on top of the local state of
	// collection and appends it to the relay log. When the relay cannot be
	// reached the mutations are queued and the error wraps [ErrPushQueued].
	Push(ctx context.Context, collection models.Collection, mutations ...models.PendingMutation) error

	// PushActions groups mutations by collection and pushes each group.
	PushActions(ctx context.Context, mutations ...models.PendingMutation) error

	// Flush retries the pushes that were queued because the relay was
	// unreachable.
	Flush(ctx context.Context) error

	// Attempts returns how many pulls of collection failed to decode since
	// the last clean sync cycle.
	Attempts(collection models.Collection) int

	// State returns a copy of the stored state of collection.
	State(ctx context.Context, collection models.Collection) (*models.CollectionState, error)

	Observe(listener Listener)
}

// ClientAuthService keeps this device registered with the relay.
type ClientAuthService interface {
	// Register obtains a fresh device token.
	Register(ctx context.Context) (models.Token, error)

	// EnsureToken registers again when the current token is missing or
	// expires within the refresh window.
	EnsureToken(ctx context.Context) error
}

// ClientSyncJob defines the contract for a background worker that
// periodically pulls every collection.
type ClientSyncJob interface {
	// Start launches the background goroutine. It pulls every interval,
	// defaulting to 30 seconds if interval is zero or negative. Any
	// previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

// ListenerFuncs adapts plain functions to [Listener]. Nil fields are skipped.
type ListenerFuncs struct {
	Action      func(action models.ActionPayload, index models.MessageIndex)
	Setting     func(setting models.ActionPayload)
	Features    func(flags []string)
	InitialSync func()
}

func (l ListenerFuncs) OnAction(action models.ActionPayload, index models.MessageIndex) {
	if l.Action != nil {
		l.Action(action, index)
	}
}

func (l ListenerFuncs) OnSetting(setting models.ActionPayload) {
	if l.Setting != nil {
		l.Setting(setting)
	}
}

func (l ListenerFuncs) OnFeatures(flags []string) {
	if l.Features != nil {
		l.Features(flags)
	}
}

func (l ListenerFuncs) OnInitialSync() {
	if l.InitialSync != nil {
		l.InitialSync()
	}
}
