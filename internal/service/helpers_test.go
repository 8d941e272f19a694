package service

import (
	"bytes"
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-app-state-sync/internal/adapter"
	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/crypto"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/store"
	"github.com/MKhiriev/go-app-state-sync/models"
)

// Заглушки вместо mockgen: пакет mock импортирует service, так что здесь
// его использовать нельзя (цикл импортов).

const testAccountID = "account-1"

var testKey = models.AppStateSyncKey{
	KeyID:     []byte{0x00, 0x01},
	KeyData:   bytes.Repeat([]byte{0x42}, 32),
	Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
}

// stubKeyRepository is an in-memory store.SyncKeyRepository.
type stubKeyRepository struct {
	mu   sync.Mutex
	keys []models.AppStateSyncKey
	err  error
}

func newStubKeyRepository(keys ...models.AppStateSyncKey) *stubKeyRepository {
	return &stubKeyRepository{keys: keys}
}

func (r *stubKeyRepository) Save(_ context.Context, _ string, key models.AppStateSyncKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.keys = append(r.keys, key)
	return nil
}

func (r *stubKeyRepository) Latest(_ context.Context, _ string) (models.AppStateSyncKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return models.AppStateSyncKey{}, r.err
	}
	if len(r.keys) == 0 {
		return models.AppStateSyncKey{}, store.ErrKeyNotFound
	}
	return slices.MaxFunc(r.keys, func(a, b models.AppStateSyncKey) int {
		return a.Timestamp.Compare(b.Timestamp)
	}), nil
}

func (r *stubKeyRepository) Find(_ context.Context, _ string, keyID []byte) (models.AppStateSyncKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return models.AppStateSyncKey{}, r.err
	}
	for _, k := range r.keys {
		if bytes.Equal(k.KeyID, keyID) {
			return k, nil
		}
	}
	return models.AppStateSyncKey{}, store.ErrKeyNotFound
}

// memoryPatchLog is an in-memory store.PatchLogRepository with the same
// optimistic locking as the Postgres one.
type memoryPatchLog struct {
	mu      sync.Mutex
	heads   map[models.Collection]models.LogHead
	patches map[models.Collection][]models.Patch
	records map[models.Collection]map[string]models.MutationRecord
}

func newMemoryPatchLog() *memoryPatchLog {
	return &memoryPatchLog{
		heads:   make(map[models.Collection]models.LogHead),
		patches: make(map[models.Collection][]models.Patch),
		records: make(map[models.Collection]map[string]models.MutationRecord),
	}
}

func (l *memoryPatchLog) Head(_ context.Context, _ string, collection models.Collection) (models.LogHead, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	head, ok := l.heads[collection]
	if !ok {
		return models.LogHead{Collection: collection}, nil
	}
	return head, nil
}

func (l *memoryPatchLog) Append(_ context.Context, entry models.LogAppend) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	version := entry.Patch.GetVersion()
	if version != l.heads[entry.Collection].Version+1 {
		return store.ErrVersionConflict
	}

	l.patches[entry.Collection] = append(l.patches[entry.Collection], *entry.Patch)
	live, ok := l.records[entry.Collection]
	if !ok {
		live = make(map[string]models.MutationRecord)
		l.records[entry.Collection] = live
	}
	for _, m := range entry.Mutations {
		if m.Operation == models.OperationRemove {
			delete(live, string(m.Record.IndexMAC))
			continue
		}
		live[string(m.Record.IndexMAC)] = m.Record
	}
	l.heads[entry.Collection] = models.LogHead{
		Collection:  entry.Collection,
		Version:     version,
		SnapshotMAC: entry.Patch.SnapshotMAC,
		KeyID:       entry.Patch.KeyID,
	}
	return nil
}

func (l *memoryPatchLog) PatchesAfter(_ context.Context, _ string, collection models.Collection, after, limit uint64) ([]models.Patch, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []models.Patch
	for _, p := range l.patches[collection] {
		if p.GetVersion() > after && uint64(len(out)) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (l *memoryPatchLog) LiveRecords(_ context.Context, _ string, collection models.Collection) ([]models.MutationRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.MutationRecord, 0, len(l.records[collection]))
	for _, r := range l.records[collection] {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b models.MutationRecord) int { return bytes.Compare(a.IndexMAC, b.IndexMAC) })
	return out, nil
}

// memoryBlobStorage is an in-memory store.BlobStorage.
type memoryBlobStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemoryBlobStorage() *memoryBlobStorage {
	return &memoryBlobStorage{blobs: make(map[string][]byte)}
}

func (s *memoryBlobStorage) Put(_ context.Context, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := uuid.NewString()
	s.blobs[path] = bytes.Clone(data)
	return path, nil
}

func (s *memoryBlobStorage) Get(_ context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[path]
	if !ok {
		return nil, store.ErrNotFound
	}
	return bytes.Clone(data), nil
}

// fakeRelay connects clients to a relayService in process. It implements
// adapter.Transport and adapter.BlobDownloader. respond, when set, replaces
// the relay for SubmitQuery.
type fakeRelay struct {
	relay   RelayService
	log     *memoryPatchLog
	blobs   *memoryBlobStorage
	respond func(payload []byte) ([]byte, error)

	mu      sync.Mutex
	queries int
}

func newFakeRelay(cfg config.ServerRelay) *fakeRelay {
	log := newMemoryPatchLog()
	blobs := newMemoryBlobStorage()
	return &fakeRelay{
		relay: NewRelayService(log, blobs, cfg, logger.Nop()),
		log:   log,
		blobs: blobs,
	}
}

func (f *fakeRelay) SubmitQuery(ctx context.Context, namespace string, payload []byte) ([]byte, error) {
	f.mu.Lock()
	f.queries++
	respond := f.respond
	f.mu.Unlock()

	if respond != nil {
		return respond(payload)
	}
	return f.relay.Submit(ctx, testAccountID, "device", namespace, payload)
}

func (f *fakeRelay) Download(ctx context.Context, ref *models.ExternalBlobReference) ([]byte, error) {
	data, err := f.relay.FetchBlob(ctx, ref.DirectPath)
	if err != nil {
		return nil, adapter.ErrNotFound
	}
	return crypto.DecryptBlob(ref, data)
}

func (f *fakeRelay) Queries() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries
}

// recordingListener remembers every callback in order.
type recordingListener struct {
	mu          sync.Mutex
	actions     []models.ActionPayload
	indexes     []models.MessageIndex
	settings    []models.ActionPayload
	features    [][]string
	initialSync int
}

func (l *recordingListener) OnAction(action models.ActionPayload, index models.MessageIndex) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.actions = append(l.actions, action)
	l.indexes = append(l.indexes, index)
}

func (l *recordingListener) OnSetting(setting models.ActionPayload) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.settings = append(l.settings, setting)
}

func (l *recordingListener) OnFeatures(flags []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.features = append(l.features, flags)
}

func (l *recordingListener) OnInitialSync() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.initialSync++
}

// testClient is one device talking to a fakeRelay.
type testClient struct {
	svc      *appStateService
	states   store.CollectionStateRepository
	pending  store.PendingMutationRepository
	domain   store.DomainStore
	listener *recordingListener
}

func newTestClient(t *testing.T, relay *fakeRelay, clientType string) *testClient {
	t.Helper()

	states := store.NewMemoryCollectionStateRepository()
	pending := store.NewMemoryPendingMutationRepository()
	domain, err := store.NewDomainStore(":memory:")
	require.NoError(t, err)

	keys := NewKeyProvider("device", newStubKeyRepository(testKey))
	dispatcher := NewDispatcher(domain, logger.Nop())

	cfg := config.ClientSync{DeviceID: "device", ClientType: clientType, CheckPatchMACs: true}
	svc, err := NewAppStateService(cfg, relay, relay, states, pending, keys, dispatcher, logger.Nop())
	require.NoError(t, err)

	listener := &recordingListener{}
	svc.Observe(listener)

	return &testClient{
		svc:      svc.(*appStateService),
		states:   states,
		pending:  pending,
		domain:   domain,
		listener: listener,
	}
}

func testRelayConfig() config.ServerRelay {
	return config.ServerRelay{PageSize: 50, SnapshotThreshold: 500, ExternalMutationsThreshold: 100}
}
