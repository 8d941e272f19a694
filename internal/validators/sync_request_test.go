package validators

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-app-state-sync/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validMutation() models.SyncdMutation {
	return models.SyncdMutation{
		Operation: models.OperationSet,
		Record: models.MutationRecord{
			IndexMAC:  bytes.Repeat([]byte{1}, 32),
			ValueBlob: bytes.Repeat([]byte{2}, 80),
			KeyID:     []byte{0, 1},
		},
	}
}

func validPatch(version uint64) *models.Patch {
	p := &models.Patch{
		Mutations:   []models.SyncdMutation{validMutation()},
		SnapshotMAC: bytes.Repeat([]byte{3}, 32),
		PatchMAC:    bytes.Repeat([]byte{4}, 32),
		KeyID:       []byte{0, 1},
	}
	p.SetVersion(version)
	return p
}

func TestNewSyncRequestValidator(t *testing.T) {
	require.NotNil(t, NewSyncRequestValidator())
}

func TestValidate_UnsupportedType(t *testing.T) {
	err := NewSyncRequestValidator().Validate(context.Background(), 42)
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestValidate_SyncRequest(t *testing.T) {
	v := NewSyncRequestValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		request models.SyncRequest
		wantErr error
	}{
		{
			name:    "empty",
			request: models.SyncRequest{},
			wantErr: ErrEmptyCollections,
		},
		{
			name: "pull of every collection",
			request: models.SyncRequest{Collections: []models.CollectionRequest{
				{Name: models.CriticalBlock},
				{Name: models.Regular, Version: 12},
			}},
		},
		{
			name: "duplicate collection",
			request: models.SyncRequest{Collections: []models.CollectionRequest{
				{Name: models.RegularHigh},
				{Name: models.RegularHigh, Version: 3},
			}},
			wantErr: ErrDuplicateCollection,
		},
		{
			name: "unknown collection",
			request: models.SyncRequest{Collections: []models.CollectionRequest{
				{Name: "bogus"},
			}},
			wantErr: ErrUnknownCollection,
		},
		{
			name: "push on top of version",
			request: models.SyncRequest{Collections: []models.CollectionRequest{
				{Name: models.RegularHigh, Version: 4, Patch: validPatch(5)},
			}},
		},
		{
			name: "push skipping a version",
			request: models.SyncRequest{Collections: []models.CollectionRequest{
				{Name: models.RegularHigh, Version: 4, Patch: validPatch(6)},
			}},
			wantErr: ErrInvalidPatchVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, &tt.request)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Patch(t *testing.T) {
	v := NewSyncRequestValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(p *models.Patch)
		wantErr error
	}{
		{name: "valid", mutate: func(p *models.Patch) {}},
		{name: "no patch mac", mutate: func(p *models.Patch) { p.PatchMAC = nil }, wantErr: ErrMissingPatchMAC},
		{name: "no snapshot mac", mutate: func(p *models.Patch) { p.SnapshotMAC = nil }, wantErr: ErrMissingSnapshotMAC},
		{name: "no key id", mutate: func(p *models.Patch) { p.KeyID = nil }, wantErr: ErrMissingKeyID},
		{name: "no mutations", mutate: func(p *models.Patch) { p.Mutations = nil }, wantErr: ErrEmptyPatch},
		{
			name:    "external mutations",
			mutate:  func(p *models.Patch) { p.ExternalMutations = &models.ExternalBlobReference{DirectPath: "x"} },
			wantErr: ErrExternalMutations,
		},
		{
			name:    "short index mac",
			mutate:  func(p *models.Patch) { p.Mutations[0].Record.IndexMAC = []byte{1} },
			wantErr: ErrInvalidIndexMAC,
		},
		{
			name:    "short value blob",
			mutate:  func(p *models.Patch) { p.Mutations[0].Record.ValueBlob = []byte{1, 2, 3} },
			wantErr: ErrInvalidValueBlob,
		},
		{
			name:    "bad operation",
			mutate:  func(p *models.Patch) { p.Mutations[0].Operation = 7 },
			wantErr: ErrInvalidOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch := validPatch(1)
			tt.mutate(patch)

			err := v.Validate(ctx, models.CollectionRequest{Name: models.Regular, Patch: patch})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_FieldScoping(t *testing.T) {
	v := NewSyncRequestValidator()
	ctx := context.Background()

	// only the name is checked, the broken patch is ignored
	request := models.CollectionRequest{Name: models.Regular, Patch: &models.Patch{}}
	require.NoError(t, v.Validate(ctx, request, FieldName))

	require.ErrorIs(t, v.Validate(ctx, request, "nope"), ErrUnknownField)
}
