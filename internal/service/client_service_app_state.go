package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/semaphore"

	"github.com/MKhiriev/go-app-state-sync/internal/adapter"
	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/crypto"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/metrics"
	"github.com/MKhiriev/go-app-state-sync/internal/store"
	"github.com/MKhiriev/go-app-state-sync/internal/utils"
	"github.com/MKhiriev/go-app-state-sync/internal/wire"
	"github.com/MKhiriev/go-app-state-sync/models"
)

// MaxDecodeAttempts is how many failed decodes of a collection are tolerated
// before its state is reset and the next pull starts from a snapshot.
const MaxDecodeAttempts = 3

// Client types. Only WEB pulls before pushing, only MOBILE skips the local
// echo of its own pushes.
const (
	ClientTypeMobile  = "MOBILE"
	ClientTypeWeb     = "WEB"
	ClientTypeDesktop = "DESKTOP"
)

type appStateService struct {
	deviceID   string
	clientType string
	checkMACs  bool

	transport  adapter.Transport
	blobs      adapter.BlobDownloader
	states     store.CollectionStateRepository
	pending    store.PendingMutationRepository
	keys       KeyProvider
	dispatcher Dispatcher
	random     io.Reader
	batchIDs   *utils.UUIDGenerator

	// pullGate and pushGate are FIFO: semaphore.Weighted wakes waiters in
	// the order they called Acquire.
	pullGate *semaphore.Weighted
	pushGate *semaphore.Weighted

	mu              sync.Mutex
	attempts        map[models.Collection]int
	initialSyncDone bool

	logger *logger.Logger
}

// NewAppStateService wires the sync engine of one device.
func NewAppStateService(
	cfg config.ClientSync,
	transport adapter.Transport,
	blobs adapter.BlobDownloader,
	states store.CollectionStateRepository,
	pending store.PendingMutationRepository,
	keys KeyProvider,
	dispatcher Dispatcher,
	logger *logger.Logger,
) (AppStateService, error) {
	switch cfg.ClientType {
	case ClientTypeMobile, ClientTypeWeb, ClientTypeDesktop:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownClientType, cfg.ClientType)
	}

	return &appStateService{
		deviceID:   cfg.DeviceID,
		clientType: cfg.ClientType,
		checkMACs:  cfg.CheckPatchMACs,
		transport:  transport,
		blobs:      blobs,
		states:     states,
		pending:    pending,
		keys:       keys,
		dispatcher: dispatcher,
		random:     rand.Reader,
		batchIDs:   utils.NewUUIDGenerator(),
		pullGate:   semaphore.NewWeighted(1),
		pushGate:   semaphore.NewWeighted(1),
		attempts:   make(map[models.Collection]int),
		logger:     logger,
	}, nil
}

func (s *appStateService) Observe(listener Listener) {
	s.dispatcher.Observe(listener)
}

func (s *appStateService) Attempts(collection models.Collection) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts[collection]
}

func (s *appStateService) State(ctx context.Context, collection models.Collection) (*models.CollectionState, error) {
	state, err := s.loadState(ctx, collection)
	if err != nil {
		return nil, err
	}
	return state.Copy(), nil
}

func (s *appStateService) loadState(ctx context.Context, collection models.Collection) (*models.CollectionState, error) {
	state, err := s.states.Load(ctx, s.deviceID, collection)
	if err != nil {
		return nil, fmt.Errorf("load %s state: %w", collection, err)
	}
	if state == nil {
		state = models.NewCollectionState(collection)
	}
	return state, nil
}

func (s *appStateService) Pull(ctx context.Context, collections ...models.Collection) error {
	if len(collections) == 0 {
		collections = models.AllCollections()
	}
	for _, c := range collections {
		if !c.Valid() {
			return fmt.Errorf("%w: %q", models.ErrUnknownCollection, c)
		}
	}

	if err := s.pullGate.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.pullGate.Release(1)

	return s.pull(ctx, collections)
}

// pull runs one sync cycle. The caller holds the pull gate.
func (s *appStateService) pull(ctx context.Context, collections []models.Collection) error {
	log := logger.FromContext(ctx)

	states := make(map[models.Collection]*models.CollectionState, len(collections))
	var pending []models.Collection
	for _, c := range collections {
		if _, seen := states[c]; seen {
			continue
		}
		state, err := s.loadState(ctx, c)
		if err != nil {
			return err
		}
		states[c] = state
		pending = append(pending, c)
	}

	var errs error
	for len(pending) > 0 {
		req := &models.SyncRequest{}
		for _, c := range pending {
			version := states[c].Version
			req.Collections = append(req.Collections, models.CollectionRequest{
				Name:           c,
				Version:        version,
				ReturnSnapshot: version == 0,
			})
		}

		resp, err := s.submit(ctx, req)
		if err != nil {
			for _, c := range pending {
				metrics.PullsTotal.WithLabelValues(c.String(), metrics.ResultError).Inc()
			}
			return multierr.Append(errs, err)
		}

		var next []models.Collection
		for _, cr := range resp.Collections {
			state, requested := states[cr.Name]
			if !requested {
				continue
			}

			applied, more, err := s.applyPage(ctx, state, cr)
			metrics.PullsTotal.WithLabelValues(cr.Name.String(), metrics.Result(err)).Inc()
			if err != nil {
				log.Err(err).
					Str("func", "appStateService.pull").
					Str("collection", cr.Name.String()).
					Msg("failed to sync collection")
				errs = multierr.Append(errs, err)
				continue
			}
			states[cr.Name] = applied

			if more {
				if applied.Version == state.Version {
					log.Warn().
						Str("func", "appStateService.pull").
						Str("collection", cr.Name.String()).
						Uint64("version", applied.Version).
						Msg("relay reported more patches but sent nothing new")
					continue
				}
				next = append(next, cr.Name)
			}
		}
		pending = next
	}

	if errs != nil {
		return errs
	}

	s.mu.Lock()
	for _, c := range collections {
		delete(s.attempts, c)
	}
	s.mu.Unlock()

	s.checkInitialSync(ctx)
	return nil
}

func (s *appStateService) submit(ctx context.Context, req *models.SyncRequest) (*models.SyncResponse, error) {
	raw, err := s.transport.SubmitQuery(ctx, models.SyncNamespace, wire.EncodeSyncRequest(req))
	if err != nil {
		return nil, fmt.Errorf("submit sync query: %w", err)
	}

	resp, err := wire.DecodeSyncResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: sync response: %w", ErrDecodeFailure, err)
	}
	return resp, nil
}

// applyPage decodes one page of a collection, stores the result and
// dispatches its mutations. On any failure the stored state is untouched.
func (s *appStateService) applyPage(ctx context.Context, state *models.CollectionState, resp models.CollectionResponse) (*models.CollectionState, bool, error) {
	log := logger.FromContext(ctx)

	if resp.Failed() {
		return nil, false, &CollectionSyncError{Collection: resp.Name, Code: resp.ErrorCode, Text: resp.ErrorText}
	}

	next, mutations, err := s.decodeCollection(ctx, state, resp)
	if err != nil {
		if !countsAsDecodeFailure(err) {
			return nil, false, fmt.Errorf("sync %s: %w", state.Name, err)
		}
		return nil, false, s.decodeFailed(ctx, state.Name, err)
	}

	if err = s.states.Save(ctx, s.deviceID, next); err != nil {
		return nil, false, fmt.Errorf("save %s state: %w", state.Name, err)
	}
	metrics.CollectionVersion.WithLabelValues(state.Name.String()).Set(float64(next.Version))

	log.Info().
		Str("func", "appStateService.applyPage").
		Str("collection", state.Name.String()).
		Uint64("from_version", state.Version).
		Uint64("to_version", next.Version).
		Int("mutations", len(mutations)).
		Msg("collection page applied")

	if err = s.dispatcher.Dispatch(ctx, mutations); err != nil {
		log.Err(err).
			Str("func", "appStateService.applyPage").
			Str("collection", state.Name.String()).
			Msg("some mutations were not applied to the domain store")
	}

	return next, resp.HasMorePatches, nil
}

// countsAsDecodeFailure reports whether err says something about the pulled
// data. A missing key is expected to arrive later and resetting the state
// would not bring it.
func countsAsDecodeFailure(err error) bool {
	switch {
	case errors.Is(err, adapter.ErrTransport),
		errors.Is(err, ErrNoAppStateKey),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}

// decodeFailed counts a failed decode of collection. The third failure in a
// row resets the stored state so the next pull asks for a snapshot.
func (s *appStateService) decodeFailed(ctx context.Context, collection models.Collection, cause error) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	s.attempts[collection]++
	attempts := s.attempts[collection]
	s.mu.Unlock()

	log.Warn().
		Err(cause).
		Str("func", "appStateService.decodeFailed").
		Str("collection", collection.String()).
		Int("attempts", attempts).
		Msg("failed to decode collection page")

	if attempts >= MaxDecodeAttempts {
		if err := s.states.Save(ctx, s.deviceID, models.NewCollectionState(collection)); err != nil {
			log.Err(err).
				Str("func", "appStateService.decodeFailed").
				Str("collection", collection.String()).
				Msg("failed to reset collection state")
		} else {
			metrics.DecodeResetsTotal.WithLabelValues(collection.String()).Inc()
			metrics.CollectionVersion.WithLabelValues(collection.String()).Set(0)
			log.Warn().
				Str("func", "appStateService.decodeFailed").
				Str("collection", collection.String()).
				Msg("collection state reset after repeated decode failures")
		}
	}

	return fmt.Errorf("%w: %s: %w", ErrDecodeFailure, collection, cause)
}

// checkInitialSync signals listeners once every collection has a version.
func (s *appStateService) checkInitialSync(ctx context.Context) {
	s.mu.Lock()
	done := s.initialSyncDone
	s.mu.Unlock()
	if done {
		return
	}

	states, err := s.states.LoadAll(ctx, s.deviceID)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "appStateService.checkInitialSync").
			Msg("failed to load collection states")
		return
	}

	synced := make(map[models.Collection]bool, len(states))
	for _, st := range states {
		synced[st.Name] = st.Version > 0
	}
	for _, c := range models.AllCollections() {
		if !synced[c] {
			return
		}
	}

	s.mu.Lock()
	if s.initialSyncDone {
		s.mu.Unlock()
		return
	}
	s.initialSyncDone = true
	s.mu.Unlock()

	s.dispatcher.InitialSyncCompleted()
}

func (s *appStateService) PushActions(ctx context.Context, mutations ...models.PendingMutation) error {
	var order []models.Collection
	groups := make(map[models.Collection][]models.PendingMutation)
	for _, m := range mutations {
		if _, ok := groups[m.Collection]; !ok {
			order = append(order, m.Collection)
		}
		groups[m.Collection] = append(groups[m.Collection], m)
	}

	var errs error
	for _, c := range order {
		err := s.Push(ctx, c, groups[c]...)
		switch {
		case err == nil:
		case errors.Is(err, ErrPushQueued):
			errs = multierr.Append(errs, err)
		default:
			return multierr.Append(errs, err)
		}
	}
	return errs
}

func (s *appStateService) Push(ctx context.Context, collection models.Collection, mutations ...models.PendingMutation) error {
	if len(mutations) == 0 {
		return nil
	}
	if !collection.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownCollection, collection)
	}
	for _, m := range mutations {
		if m.Collection != "" && m.Collection != collection {
			return fmt.Errorf("%w: %s mutation pushed to %s", ErrInvalidDataProvided, m.Collection, collection)
		}
	}

	err := s.deliver(ctx, collection, mutations, s.clientType == ClientTypeWeb)
	if err == nil || !errors.Is(err, adapter.ErrTransport) {
		return err
	}

	batch := models.PendingBatch{
		ID:         s.batchIDs.Generate(),
		Collection: collection,
		Mutations:  mutations,
		QueuedAt:   time.Now(),
	}
	if qerr := s.pending.Enqueue(ctx, s.deviceID, batch); qerr != nil {
		return multierr.Append(err, fmt.Errorf("queue %s push: %w", collection, qerr))
	}

	logger.FromContext(ctx).Warn().
		Err(err).
		Str("func", "appStateService.Push").
		Str("collection", collection.String()).
		Str("batch_id", batch.ID).
		Msg("relay unreachable, push queued")
	return fmt.Errorf("%w: %w", ErrPushQueued, err)
}

// deliver pushes one patch under the gates, optionally pulling collection
// first.
func (s *appStateService) deliver(ctx context.Context, collection models.Collection, mutations []models.PendingMutation, pullFirst bool) error {
	if pullFirst {
		if err := s.Pull(ctx, collection); err != nil {
			return fmt.Errorf("pull before push: %w", err)
		}
	}

	if err := s.pushGate.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.pushGate.Release(1)

	// the state must not move under the patch being built
	if err := s.pullGate.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.pullGate.Release(1)

	err := s.push(ctx, collection, mutations)
	metrics.PushesTotal.WithLabelValues(collection.String(), metrics.Result(err)).Inc()
	if err == nil {
		s.mu.Lock()
		delete(s.attempts, collection)
		s.mu.Unlock()
	}
	return err
}

// Flush pushes the queued batches oldest first. A batch that still cannot
// reach the relay, or loses the race for the collection version, stays
// queued and stops the flush. A batch the relay or the codec rejects for
// good is dropped.
func (s *appStateService) Flush(ctx context.Context) error {
	log := logger.FromContext(ctx)

	batches, err := s.pending.Pending(ctx, s.deviceID)
	if err != nil {
		return fmt.Errorf("load pending pushes: %w", err)
	}

	for _, b := range batches {
		err = s.deliver(ctx, b.Collection, b.Mutations, true)
		if err != nil && keepQueued(err) {
			log.Warn().
				Err(err).
				Str("func", "appStateService.Flush").
				Str("batch_id", b.ID).
				Msg("pending push still not delivered")
			return err
		}
		if err != nil {
			log.Err(err).
				Str("func", "appStateService.Flush").
				Str("collection", b.Collection.String()).
				Str("batch_id", b.ID).
				Int("mutations", len(b.Mutations)).
				Msg("dropping pending push")
		}

		if rerr := s.pending.Remove(ctx, s.deviceID, b.ID); rerr != nil {
			return fmt.Errorf("remove pending push %s: %w", b.ID, rerr)
		}
	}
	return nil
}

// keepQueued reports whether a failed delivery is worth another try later.
func keepQueued(err error) bool {
	if !countsAsDecodeFailure(err) {
		return true
	}
	var syncErr *CollectionSyncError
	return errors.As(err, &syncErr) && syncErr.Code == http.StatusConflict
}

func (s *appStateService) push(ctx context.Context, collection models.Collection, mutations []models.PendingMutation) error {
	log := logger.FromContext(ctx)

	key, keys, err := s.keys.Latest(ctx)
	if err != nil {
		return err
	}

	state, err := s.loadState(ctx, collection)
	if err != nil {
		return err
	}

	patch, next, err := s.buildPatch(state, key, keys, mutations)
	if err != nil {
		return err
	}

	resp, err := s.submit(ctx, &models.SyncRequest{Collections: []models.CollectionRequest{{
		Name:    collection,
		Version: state.Version,
		Patch:   patch,
	}}})
	if err != nil {
		return err
	}
	for _, cr := range resp.Collections {
		if cr.Name == collection && cr.Failed() {
			return &CollectionSyncError{Collection: collection, Code: cr.ErrorCode, Text: cr.ErrorText}
		}
	}

	if err = s.states.Save(ctx, s.deviceID, next); err != nil {
		return fmt.Errorf("save %s state: %w", collection, err)
	}
	metrics.CollectionVersion.WithLabelValues(collection.String()).Set(float64(next.Version))

	log.Info().
		Str("func", "appStateService.push").
		Str("collection", collection.String()).
		Uint64("version", next.Version).
		Int("mutations", len(mutations)).
		Msg("patch pushed")

	if s.clientType == ClientTypeMobile {
		return nil
	}

	// local echo: our own patch goes through the same path as a pulled one
	_, decoded, err := s.decodePatch(ctx, state, patch)
	if err != nil {
		log.Err(err).
			Str("func", "appStateService.push").
			Str("collection", collection.String()).
			Msg("failed to decode own patch")
		return nil
	}
	if err = s.dispatcher.Dispatch(ctx, decoded); err != nil {
		log.Err(err).
			Str("func", "appStateService.push").
			Str("collection", collection.String()).
			Msg("some mutations were not applied to the domain store")
	}
	return nil
}

// buildPatch encrypts mutations on top of state and returns the patch with
// the state it produces.
func (s *appStateService) buildPatch(state *models.CollectionState, key models.AppStateSyncKey, keys models.MutationKeys, mutations []models.PendingMutation) (*models.Patch, *models.CollectionState, error) {
	patch := &models.Patch{KeyID: key.KeyID}
	generator := crypto.NewHashGenerator(state)

	for _, m := range mutations {
		value := m.Value
		data := &models.SyncActionData{
			Index:   m.Index.Bytes(),
			Value:   &value,
			Version: m.Version,
		}

		record, err := crypto.EncryptMutation(s.random, keys, key.KeyID, m.Operation, data)
		if err != nil {
			return nil, nil, fmt.Errorf("encrypt %s mutation: %w", m.Index.Kind(), err)
		}

		patch.Mutations = append(patch.Mutations, models.SyncdMutation{Operation: m.Operation, Record: record})
		generator.Mix(record.IndexMAC, crypto.ValueMAC(record.ValueBlob), m.Operation)
	}

	next := &models.CollectionState{Name: state.Name, Version: state.Version + 1}
	generator.Apply(next)

	patch.SetVersion(next.Version)
	patch.SnapshotMAC = crypto.SnapshotMAC(next.Hash[:], next.Version, next.Name, keys.SnapshotMACKey)
	patch.PatchMAC = crypto.PatchMAC(patch.SnapshotMAC, crypto.PatchValueMACs(patch.Mutations), next.Version, next.Name, keys.PatchMACKey)

	return patch, next, nil
}
