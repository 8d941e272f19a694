package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-app-state-sync/internal/crypto"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/metrics"
	"github.com/MKhiriev/go-app-state-sync/internal/wire"
	"github.com/MKhiriev/go-app-state-sync/models"
)

// decodeCollection applies one response page on top of state and returns the
// resulting state with the mutations to dispatch. state is never modified.
func (s *appStateService) decodeCollection(ctx context.Context, state *models.CollectionState, resp models.CollectionResponse) (*models.CollectionState, []models.Mutation, error) {
	log := logger.FromContext(ctx)

	current := state
	var mutations []models.Mutation

	if resp.Snapshot != nil {
		snapshotState, decoded, err := s.decodeSnapshot(ctx, state.Name, resp.Snapshot)
		if err != nil {
			return nil, nil, err
		}
		current, mutations = snapshotState, decoded
	}

	for i := range resp.Patches {
		patch := &resp.Patches[i]
		if patch.Version == nil {
			patch.SetVersion(current.Version + 1)
		}
		if patch.GetVersion() <= current.Version {
			log.Debug().
				Str("func", "appStateService.decodeCollection").
				Str("collection", state.Name.String()).
				Uint64("patch_version", patch.GetVersion()).
				Uint64("state_version", current.Version).
				Msg("skipping already applied patch")
			continue
		}
		if patch.ExitCode != nil {
			log.Warn().
				Str("func", "appStateService.decodeCollection").
				Str("collection", state.Name.String()).
				Uint64("code", patch.ExitCode.Code).
				Str("text", patch.ExitCode.Text).
				Msg("patch carries an exit code")
		}

		next, decoded, err := s.decodePatch(ctx, current, patch)
		if err != nil {
			return nil, nil, err
		}
		current = next
		mutations = append(mutations, decoded...)
	}

	if current == state {
		current = state.Copy()
	}
	return current, mutations, nil
}

// decodeSnapshot downloads a snapshot and rebuilds the collection state from
// its records.
func (s *appStateService) decodeSnapshot(ctx context.Context, name models.Collection, ref *models.ExternalBlobReference) (*models.CollectionState, []models.Mutation, error) {
	raw, err := s.blobs.Download(ctx, ref)
	if err != nil {
		return nil, nil, fmt.Errorf("download snapshot: %w", err)
	}

	snapshot, err := wire.DecodeSnapshot(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("decode snapshot: %w", err)
	}

	keys, err := s.keys.Find(ctx, snapshot.KeyID)
	if err != nil {
		return nil, nil, err
	}

	state := models.NewCollectionState(name)
	state.Version = snapshot.Version

	generator := crypto.NewHashGenerator(state)
	mutations := make([]models.Mutation, 0, len(snapshot.Records))
	for _, record := range snapshot.Records {
		m, err := s.decodeRecord(ctx, name, snapshot.KeyID, keys, models.SyncdMutation{Operation: models.OperationSet, Record: record})
		if err != nil {
			return nil, nil, err
		}
		generator.Mix(m.IndexMAC, m.ValueMAC, models.OperationSet)
		mutations = append(mutations, m)
	}
	generator.Apply(state)

	if s.checkMACs {
		if err = crypto.VerifySnapshotMAC(state, snapshot.MAC, keys); err != nil {
			metrics.MACFailuresTotal.WithLabelValues(name.String(), "snapshot").Inc()
			return nil, nil, err
		}
	}

	return state, mutations, nil
}

// decodePatch verifies patch against state and returns the state after it.
func (s *appStateService) decodePatch(ctx context.Context, state *models.CollectionState, patch *models.Patch) (*models.CollectionState, []models.Mutation, error) {
	name := state.Name

	records := patch.Mutations
	if patch.ExternalMutations != nil {
		raw, err := s.blobs.Download(ctx, patch.ExternalMutations)
		if err != nil {
			return nil, nil, fmt.Errorf("download external mutations: %w", err)
		}
		if records, err = wire.DecodeMutations(raw); err != nil {
			return nil, nil, fmt.Errorf("decode external mutations: %w", err)
		}
	}

	keys, err := s.keys.Find(ctx, patch.KeyID)
	if err != nil {
		return nil, nil, err
	}

	if s.checkMACs {
		if err = crypto.VerifyPatchMAC(patch, records, name, keys); err != nil {
			metrics.MACFailuresTotal.WithLabelValues(name.String(), "patch").Inc()
			return nil, nil, err
		}
	}

	generator := crypto.NewHashGenerator(state)
	mutations := make([]models.Mutation, 0, len(records))
	for _, record := range records {
		m, err := s.decodeRecord(ctx, name, patch.KeyID, keys, record)
		if err != nil {
			return nil, nil, err
		}
		generator.Mix(m.IndexMAC, m.ValueMAC, m.Operation)
		mutations = append(mutations, m)
	}

	next := &models.CollectionState{Name: name, Version: patch.GetVersion()}
	generator.Apply(next)

	if s.checkMACs {
		if err = crypto.VerifySnapshotMAC(next, patch.SnapshotMAC, keys); err != nil {
			metrics.MACFailuresTotal.WithLabelValues(name.String(), "snapshot").Inc()
			return nil, nil, err
		}
	}

	return next, mutations, nil
}

// decodeRecord decrypts one record. Records normally share the key of their
// patch; any other key is looked up separately.
func (s *appStateService) decodeRecord(ctx context.Context, name models.Collection, keyID []byte, keys models.MutationKeys, record models.SyncdMutation) (models.Mutation, error) {
	if len(record.Record.KeyID) > 0 && !bytes.Equal(record.Record.KeyID, keyID) {
		var err error
		if keys, err = s.keys.Find(ctx, record.Record.KeyID); err != nil {
			return models.Mutation{}, err
		}
	}

	data, err := crypto.DecryptMutation(keys, record.Operation, record.Record, s.checkMACs)
	if err != nil {
		if errors.Is(err, crypto.ErrAuthenticationFailed) {
			metrics.MACFailuresTotal.WithLabelValues(name.String(), "mutation").Inc()
		}
		return models.Mutation{}, err
	}

	index, err := models.ParseMessageIndex(data.Index)
	if err != nil {
		return models.Mutation{}, err
	}

	m := models.Mutation{
		Collection: name,
		Operation:  record.Operation,
		Index:      index,
		Padding:    data.Padding,
		Version:    data.Version,
		IndexMAC:   record.Record.IndexMAC,
		ValueMAC:   crypto.ValueMAC(record.Record.ValueBlob),
	}
	if data.Value != nil {
		m.Value = *data.Value
	}
	return m, nil
}
