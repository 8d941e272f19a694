package wire

import (
	"testing"

	"github.com/MKhiriev/go-app-state-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func testPatch() *models.Patch {
	p := &models.Patch{
		Mutations: []models.SyncdMutation{
			{
				Operation: models.OperationSet,
				Record: models.MutationRecord{
					IndexMAC:  []byte("index-mac-0"),
					ValueBlob: []byte("value-blob-0"),
					KeyID:     []byte{0x01},
				},
			},
			{
				Operation: models.OperationRemove,
				Record: models.MutationRecord{
					IndexMAC:  []byte("index-mac-1"),
					ValueBlob: []byte("value-blob-1"),
					KeyID:     []byte{0x01},
				},
			},
		},
		SnapshotMAC: []byte("snapshot-mac"),
		PatchMAC:    []byte("patch-mac"),
		KeyID:       []byte{0x01},
		DeviceIndex: 3,
	}
	p.SetVersion(7)
	return p
}

func TestDecodePatch_PreservesMutationOrder(t *testing.T) {
	decoded, err := DecodePatch(EncodePatch(testPatch()))
	require.NoError(t, err)

	assert.Equal(t, testPatch(), decoded)
	require.Len(t, decoded.Mutations, 2)
	assert.Equal(t, models.OperationRemove, decoded.Mutations[1].Operation)
}

func TestDecodePatch_VersionZeroIsPresent(t *testing.T) {
	p := testPatch()
	p.SetVersion(0)

	decoded, err := DecodePatch(EncodePatch(p))
	require.NoError(t, err)
	require.NotNil(t, decoded.Version)
	assert.Equal(t, uint64(0), *decoded.Version)
}

func TestDecodePatch_MissingVersion(t *testing.T) {
	p := testPatch()
	p.Version = nil

	decoded, err := DecodePatch(EncodePatch(p))
	require.NoError(t, err)
	assert.Nil(t, decoded.Version)
	assert.Equal(t, uint64(0), decoded.GetVersion())
}

func TestDecodePatch_ExternalMutationsAndExitCode(t *testing.T) {
	p := testPatch()
	p.Mutations = nil
	p.ExternalMutations = &models.ExternalBlobReference{
		MediaKey:      []byte("media-key"),
		DirectPath:    "/blobs/abc",
		FileSizeBytes: 512,
		FileSHA256:    []byte("sha"),
		FileEncSHA256: []byte("enc-sha"),
	}
	p.ExitCode = &models.ExitCode{Code: 409, Text: "conflict"}

	decoded, err := DecodePatch(EncodePatch(p))
	require.NoError(t, err)
	assert.Equal(t, p.ExternalMutations, decoded.ExternalMutations)
	assert.Equal(t, p.ExitCode, decoded.ExitCode)
}

func TestDecodePatch_Malformed(t *testing.T) {
	_, err := DecodePatch([]byte{0x12, 0x05, 0x01})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodePatch_MutationWithoutRecord(t *testing.T) {
	mutation := protowire.AppendTag(nil, 1, protowire.VarintType)
	mutation = protowire.AppendVarint(mutation, 0)
	b := appendMessage(nil, 2, mutation)

	_, err := DecodePatch(b)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestDecodeSnapshot(t *testing.T) {
	s := &models.Snapshot{
		Version: 12,
		Records: []models.MutationRecord{
			{IndexMAC: []byte("i1"), ValueBlob: []byte("v1"), KeyID: []byte("k")},
			{IndexMAC: []byte("i2"), ValueBlob: []byte("v2"), KeyID: []byte("k")},
		},
		MAC:   []byte("mac"),
		KeyID: []byte("k"),
	}

	decoded, err := DecodeSnapshot(EncodeSnapshot(s))
	require.NoError(t, err)
	assert.Equal(t, s, decoded)
}

func TestDecodeMutations(t *testing.T) {
	mutations := testPatch().Mutations

	decoded, err := DecodeMutations(EncodeMutations(mutations))
	require.NoError(t, err)
	assert.Equal(t, mutations, decoded)
}

func TestDecodeExternalBlobReference_RequiresDirectPath(t *testing.T) {
	_, err := DecodeExternalBlobReference(EncodeExternalBlobReference(&models.ExternalBlobReference{MediaKey: []byte("k")}))
	assert.ErrorIs(t, err, ErrMissingField)
}
