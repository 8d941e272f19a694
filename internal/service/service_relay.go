package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/crypto"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/metrics"
	"github.com/MKhiriev/go-app-state-sync/internal/store"
	"github.com/MKhiriev/go-app-state-sync/internal/validators"
	"github.com/MKhiriev/go-app-state-sync/internal/wire"
	"github.com/MKhiriev/go-app-state-sync/models"
)

const (
	conflictErrorText = "conflict"
	internalErrorText = "internal"
)

// relayService answers sync queries against the patch log. It never sees
// keys: patches are stored and served as they were pushed.
type relayService struct {
	patchLog  store.PatchLogRepository
	blobs     store.BlobStorage
	validator validators.Validator
	cfg       config.ServerRelay
	random    io.Reader

	logger *logger.Logger
}

func NewRelayService(patchLog store.PatchLogRepository, blobs store.BlobStorage, cfg config.ServerRelay, logger *logger.Logger) RelayService {
	return &relayService{
		patchLog:  patchLog,
		blobs:     blobs,
		validator: validators.NewSyncRequestValidator(),
		cfg:       cfg,
		random:    rand.Reader,
		logger:    logger,
	}
}

// Submit handles one query. Only a malformed query fails as a whole,
// storage problems are reported per collection.
func (s *relayService) Submit(ctx context.Context, accountID, deviceID, namespace string, payload []byte) ([]byte, error) {
	log := logger.FromContext(ctx)

	if namespace != models.SyncNamespace {
		log.Warn().Str("func", "relayService.Submit").Str("namespace", namespace).Msg("unknown namespace")
		return nil, fmt.Errorf("%w: %q", ErrUnknownNamespace, namespace)
	}

	request, err := wire.DecodeSyncRequest(payload)
	if err != nil {
		log.Err(err).Str("func", "relayService.Submit").Msg("failed to decode sync request")
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	if err = s.validator.Validate(ctx, request); err != nil {
		log.Err(err).Str("func", "relayService.Submit").Msg("sync request is invalid")
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	response := &models.SyncResponse{Collections: make([]models.CollectionResponse, 0, len(request.Collections))}
	for _, c := range request.Collections {
		response.Collections = append(response.Collections, s.collection(ctx, accountID, deviceID, c))
	}

	return wire.EncodeSyncResponse(response), nil
}

func (s *relayService) collection(ctx context.Context, accountID, deviceID string, request models.CollectionRequest) models.CollectionResponse {
	log := logger.FromContext(ctx)

	head, err := s.patchLog.Head(ctx, accountID, request.Name)
	if err != nil {
		log.Err(err).Str("func", "relayService.collection").Str("collection", request.Name.String()).Msg("failed to read head")
		return failedCollection(request.Name, http.StatusInternalServerError, internalErrorText)
	}

	if request.Patch != nil {
		if head.Version != request.Version {
			metrics.PatchConflictsTotal.WithLabelValues(request.Name.String()).Inc()
			log.Info().
				Str("func", "relayService.collection").
				Str("collection", request.Name.String()).
				Uint64("head", head.Version).
				Uint64("client_version", request.Version).
				Msg("push is behind the head")
			return failedCollection(request.Name, http.StatusConflict, conflictErrorText)
		}

		if err = s.store(ctx, accountID, deviceID, request); err != nil {
			if errors.Is(err, store.ErrVersionConflict) {
				metrics.PatchConflictsTotal.WithLabelValues(request.Name.String()).Inc()
				return failedCollection(request.Name, http.StatusConflict, conflictErrorText)
			}
			return failedCollection(request.Name, http.StatusInternalServerError, internalErrorText)
		}

		// the pusher already applied its own patch
		return models.CollectionResponse{Name: request.Name, Version: request.Patch.GetVersion()}
	}

	response, err := s.pull(ctx, accountID, head, request)
	if err != nil {
		log.Err(err).Str("func", "relayService.collection").Str("collection", request.Name.String()).Msg("failed to serve pull")
		return failedCollection(request.Name, http.StatusInternalServerError, internalErrorText)
	}
	return response
}

// store appends the pushed patch. Patches with more mutations than the
// threshold are kept with their mutations offloaded to a blob.
func (s *relayService) store(ctx context.Context, accountID, deviceID string, request models.CollectionRequest) error {
	log := logger.FromContext(ctx)

	stored := *request.Patch
	if s.cfg.ExternalMutationsThreshold > 0 && uint64(len(stored.Mutations)) > s.cfg.ExternalMutationsThreshold {
		ref, err := s.putBlob(ctx, wire.EncodeMutations(stored.Mutations))
		if err != nil {
			log.Err(err).Str("func", "relayService.store").Str("collection", request.Name.String()).Msg("failed to offload mutations")
			return err
		}
		stored.Mutations = nil
		stored.ExternalMutations = ref
	}

	err := s.patchLog.Append(ctx, models.LogAppend{
		AccountID:  accountID,
		DeviceID:   deviceID,
		Collection: request.Name,
		Patch:      &stored,
		Mutations:  request.Patch.Mutations,
	})
	if err != nil {
		return err
	}

	metrics.PatchesStoredTotal.WithLabelValues(request.Name.String()).Inc()
	return nil
}

func (s *relayService) pull(ctx context.Context, accountID string, head models.LogHead, request models.CollectionRequest) (models.CollectionResponse, error) {
	response := models.CollectionResponse{Name: request.Name, Version: head.Version}
	if request.Version >= head.Version {
		return response, nil
	}

	behind := head.Version - request.Version
	if request.ReturnSnapshot || (s.cfg.SnapshotThreshold > 0 && behind > s.cfg.SnapshotThreshold) {
		ref, err := s.snapshot(ctx, accountID, head)
		if err != nil {
			return models.CollectionResponse{}, err
		}
		response.Snapshot = ref
		metrics.SnapshotsServedTotal.WithLabelValues(request.Name.String()).Inc()
		return response, nil
	}

	limit := s.cfg.PageSize
	if limit == 0 {
		limit = config.DefaultPageSize
	}

	patches, err := s.patchLog.PatchesAfter(ctx, accountID, request.Name, request.Version, limit+1)
	if err != nil {
		return models.CollectionResponse{}, err
	}
	if uint64(len(patches)) > limit {
		patches = patches[:limit]
		response.HasMorePatches = true
	}
	response.Patches = patches

	return response, nil
}

// snapshot builds the live set at head. The MAC and key id are those of
// the head patch, so clients can verify it with the key that produced it.
func (s *relayService) snapshot(ctx context.Context, accountID string, head models.LogHead) (*models.ExternalBlobReference, error) {
	records, err := s.patchLog.LiveRecords(ctx, accountID, head.Collection)
	if err != nil {
		return nil, err
	}

	snapshot := &models.Snapshot{
		Version: head.Version,
		Records: records,
		MAC:     head.SnapshotMAC,
		KeyID:   head.KeyID,
	}
	return s.putBlob(ctx, wire.EncodeSnapshot(snapshot))
}

func (s *relayService) putBlob(ctx context.Context, plaintext []byte) (*models.ExternalBlobReference, error) {
	ref, encrypted, err := crypto.EncryptBlob(s.random, plaintext)
	if err != nil {
		return nil, fmt.Errorf("encrypt blob: %w", err)
	}

	path, err := s.blobs.Put(ctx, encrypted)
	if err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}
	ref.DirectPath = path

	return ref, nil
}

// FetchBlob returns an encrypted blob as stored.
func (s *relayService) FetchBlob(ctx context.Context, path string) ([]byte, error) {
	data, err := s.blobs.Get(ctx, path)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidBlobPath) {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, path)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "relayService.FetchBlob").Str("path", path).Msg("failed to read blob")
		return nil, err
	}
	return data, nil
}

func failedCollection(name models.Collection, code uint32, text string) models.CollectionResponse {
	return models.CollectionResponse{
		Name:      name,
		Type:      models.CollectionResponseError,
		ErrorCode: code,
		ErrorText: text,
	}
}
