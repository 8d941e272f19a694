package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-app-state-sync/internal/adapter"
	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/crypto"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/mock"
	"github.com/MKhiriev/go-app-state-sync/internal/service"
	"github.com/MKhiriev/go-app-state-sync/internal/store"
	"github.com/MKhiriev/go-app-state-sync/internal/wire"
	"github.com/MKhiriev/go-app-state-sync/models"
)

// Внешний тестовый пакет: отсюда можно импортировать mock без цикла.

const (
	deviceID = "device"
	chatJID  = "15551234567@s.whatsapp.net"
)

type appStateMocks struct {
	transport  *mock.MockTransport
	blobs      *mock.MockBlobDownloader
	states     *mock.MockCollectionStateRepository
	pending    *mock.MockPendingMutationRepository
	keys       *mock.MockKeyProvider
	dispatcher *mock.MockDispatcher
}

func newMockedAppState(t *testing.T) (service.AppStateService, appStateMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := appStateMocks{
		transport:  mock.NewMockTransport(ctrl),
		blobs:      mock.NewMockBlobDownloader(ctrl),
		states:     mock.NewMockCollectionStateRepository(ctrl),
		pending:    mock.NewMockPendingMutationRepository(ctrl),
		keys:       mock.NewMockKeyProvider(ctrl),
		dispatcher: mock.NewMockDispatcher(ctrl),
	}

	cfg := config.ClientSync{DeviceID: deviceID, ClientType: service.ClientTypeDesktop, CheckPatchMACs: true}
	svc, err := service.NewAppStateService(cfg, m.transport, m.blobs, m.states, m.pending, m.keys, m.dispatcher, logger.Nop())
	require.NoError(t, err)
	return svc, m
}

func encodedResponse(collections ...models.CollectionResponse) []byte {
	return wire.EncodeSyncResponse(&models.SyncResponse{Collections: collections})
}

func TestAppStateService_SaveFailureSkipsDispatch(t *testing.T) {
	svc, m := newMockedAppState(t)
	boom := errors.New("disk full")

	m.states.EXPECT().Load(gomock.Any(), deviceID, models.Regular).Return(nil, nil)
	m.transport.EXPECT().
		SubmitQuery(gomock.Any(), models.SyncNamespace, gomock.Any()).
		Return(encodedResponse(models.CollectionResponse{Name: models.Regular}), nil)
	m.states.EXPECT().Save(gomock.Any(), deviceID, gomock.Any()).Return(boom)
	// Dispatch и LoadAll не ожидаются: gomock провалит тест, если их вызовут

	err := svc.Pull(context.Background(), models.Regular)

	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, service.ErrDecodeFailure)
	assert.Zero(t, svc.Attempts(models.Regular))
}

func TestAppStateService_InitialSyncSignalledOnce(t *testing.T) {
	svc, m := newMockedAppState(t)
	ctx := context.Background()

	synced := make([]*models.CollectionState, 0, len(models.AllCollections()))
	for _, c := range models.AllCollections() {
		st := models.NewCollectionState(c)
		st.Version = 1
		synced = append(synced, st)
	}
	current := models.NewCollectionState(models.Regular)
	current.Version = 1

	listener := mock.NewMockListener(gomock.NewController(t))
	m.dispatcher.EXPECT().Observe(listener)
	svc.Observe(listener)

	m.states.EXPECT().Load(gomock.Any(), deviceID, models.Regular).Return(current, nil).Times(2)
	m.transport.EXPECT().
		SubmitQuery(gomock.Any(), models.SyncNamespace, gomock.Any()).
		Return(encodedResponse(models.CollectionResponse{Name: models.Regular, Version: 1}), nil).
		Times(2)
	m.states.EXPECT().
		Save(gomock.Any(), deviceID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, st *models.CollectionState) error {
			assert.Equal(t, uint64(1), st.Version)
			return nil
		}).
		Times(2)
	m.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Len(0)).Return(nil).Times(2)
	m.states.EXPECT().LoadAll(gomock.Any(), deviceID).Return(synced, nil)
	m.dispatcher.EXPECT().InitialSyncCompleted()

	require.NoError(t, svc.Pull(ctx, models.Regular))
	require.NoError(t, svc.Pull(ctx, models.Regular))
}

func TestAppStateService_SnapshotDownloadFailures(t *testing.T) {
	snapshotResponse := encodedResponse(models.CollectionResponse{
		Name:     models.Regular,
		Version:  4,
		Snapshot: &models.ExternalBlobReference{DirectPath: "/blobs/snapshot", MediaKey: []byte{1}},
	})

	t.Run("transport error is not counted", func(t *testing.T) {
		svc, m := newMockedAppState(t)

		m.states.EXPECT().Load(gomock.Any(), deviceID, models.Regular).Return(nil, nil)
		m.transport.EXPECT().SubmitQuery(gomock.Any(), models.SyncNamespace, gomock.Any()).Return(snapshotResponse, nil)
		m.blobs.EXPECT().Download(gomock.Any(), gomock.Any()).Return(nil, adapter.ErrTransport)

		err := svc.Pull(context.Background(), models.Regular)

		require.ErrorIs(t, err, adapter.ErrTransport)
		assert.Zero(t, svc.Attempts(models.Regular))
	})

	t.Run("missing blob resets after repeated failures", func(t *testing.T) {
		svc, m := newMockedAppState(t)

		m.states.EXPECT().Load(gomock.Any(), deviceID, models.Regular).Return(nil, nil).Times(service.MaxDecodeAttempts)
		m.transport.EXPECT().
			SubmitQuery(gomock.Any(), models.SyncNamespace, gomock.Any()).
			Return(snapshotResponse, nil).
			Times(service.MaxDecodeAttempts)
		m.blobs.EXPECT().
			Download(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ref *models.ExternalBlobReference) ([]byte, error) {
				assert.Equal(t, "/blobs/snapshot", ref.DirectPath)
				return nil, adapter.ErrNotFound
			}).
			Times(service.MaxDecodeAttempts)
		m.states.EXPECT().
			Save(gomock.Any(), deviceID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, st *models.CollectionState) error {
				assert.Equal(t, models.Regular, st.Name)
				assert.True(t, st.Empty())
				return nil
			})

		for i := range service.MaxDecodeAttempts {
			err := svc.Pull(context.Background(), models.Regular)
			require.ErrorIs(t, err, service.ErrDecodeFailure)
			assert.ErrorIs(t, err, adapter.ErrNotFound)
			assert.Equal(t, i+1, svc.Attempts(models.Regular))
		}
	})
}

func TestKeyProvider_RepositoryErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("database is locked")

	t.Run("latest", func(t *testing.T) {
		repo := mock.NewMockSyncKeyRepository(gomock.NewController(t))
		repo.EXPECT().Latest(gomock.Any(), deviceID).Return(models.AppStateSyncKey{}, boom)

		_, _, err := service.NewKeyProvider(deviceID, repo).Latest(ctx)

		require.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, service.ErrNoAppStateKey)
	})

	t.Run("find missing key", func(t *testing.T) {
		repo := mock.NewMockSyncKeyRepository(gomock.NewController(t))
		repo.EXPECT().Find(gomock.Any(), deviceID, []byte{0x0a}).Return(models.AppStateSyncKey{}, store.ErrKeyNotFound)

		_, err := service.NewKeyProvider(deviceID, repo).Find(ctx, []byte{0x0a})

		require.ErrorIs(t, err, service.ErrNoAppStateKey)
		assert.Contains(t, err.Error(), "0a")
	})

	t.Run("import save failure", func(t *testing.T) {
		repo := mock.NewMockSyncKeyRepository(gomock.NewController(t))
		key := models.AppStateSyncKey{KeyID: []byte{1}, KeyData: make([]byte, 32)}
		repo.EXPECT().Save(gomock.Any(), deviceID, key).Return(boom)

		err := service.NewKeyProvider(deviceID, repo).Import(ctx, key)

		require.ErrorIs(t, err, boom)
	})
}

func TestDispatcher_WithMockedDomain(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	domain := mock.NewMockDomainStore(ctrl)
	listener := mock.NewMockListener(ctrl)
	boom := errors.New("disk full")

	d := service.NewDispatcher(domain, logger.Nop())
	d.Observe(listener)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	unpin := models.PinChat(chatJID, true, at).Removal()
	mute := models.MuteChat("unknown@s.whatsapp.net", at.Add(time.Hour), at)

	gomock.InOrder(
		domain.EXPECT().GetChat(gomock.Any(), chatJID).Return(models.Chat{JID: chatJID, PinnedTimestamp: 7}, nil),
		domain.EXPECT().
			SaveChat(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, chat models.Chat) error {
				assert.Zero(t, chat.PinnedTimestamp)
				return boom
			}),
		listener.EXPECT().OnAction(models.PinAction{}, unpin.Index),
		domain.EXPECT().GetChat(gomock.Any(), "unknown@s.whatsapp.net").Return(models.Chat{}, store.ErrNotFound),
		listener.EXPECT().OnAction(mute.Value.Payload, mute.Index),
	)
	listener.EXPECT().OnInitialSync()

	err := d.Dispatch(ctx, []models.Mutation{
		{Collection: unpin.Collection, Operation: unpin.Operation, Index: unpin.Index, Value: unpin.Value},
		{Collection: mute.Collection, Operation: mute.Operation, Index: mute.Index, Value: mute.Value},
	})
	d.InitialSyncCompleted()

	require.ErrorIs(t, err, boom)
}

func TestRelayService_WithMockedStorage(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	cfg := config.ServerRelay{PageSize: 10, SnapshotThreshold: 100, ExternalMutationsThreshold: 10}

	t.Run("head failure fails only that collection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		patchLog := mock.NewMockPatchLogRepository(ctrl)
		relay := service.NewRelayService(patchLog, mock.NewMockBlobStorage(ctrl), cfg, logger.Nop())

		patchLog.EXPECT().Head(gomock.Any(), "acc", models.Regular).Return(models.LogHead{}, boom)

		raw, err := relay.Submit(ctx, "acc", deviceID, models.SyncNamespace, wire.EncodeSyncRequest(&models.SyncRequest{
			Collections: []models.CollectionRequest{{Name: models.Regular, Version: 3}},
		}))
		require.NoError(t, err)

		resp, err := wire.DecodeSyncResponse(raw)
		require.NoError(t, err)
		require.Len(t, resp.Collections, 1)
		assert.True(t, resp.Collections[0].Failed())
		assert.Equal(t, uint32(500), resp.Collections[0].ErrorCode)
	})

	t.Run("fetch blob", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		blobs := mock.NewMockBlobStorage(ctrl)
		relay := service.NewRelayService(mock.NewMockPatchLogRepository(ctrl), blobs, cfg, logger.Nop())

		blobs.EXPECT().Get(gomock.Any(), "present").Return([]byte("sealed"), nil)
		blobs.EXPECT().Get(gomock.Any(), "absent").Return(nil, store.ErrNotFound)
		blobs.EXPECT().Get(gomock.Any(), "broken").Return(nil, boom)

		data, err := relay.FetchBlob(ctx, "present")
		require.NoError(t, err)
		assert.Equal(t, []byte("sealed"), data)

		_, err = relay.FetchBlob(ctx, "absent")
		assert.ErrorIs(t, err, service.ErrBlobNotFound)

		_, err = relay.FetchBlob(ctx, "broken")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, service.ErrBlobNotFound)
	})
}

func TestClientAuthService_WithMockedAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("no token registers", func(t *testing.T) {
		serverAdapter := mock.NewMockServerAdapter(gomock.NewController(t))
		serverAdapter.EXPECT().Token().Return("")
		serverAdapter.EXPECT().RegisterDevice(gomock.Any(), deviceID).Return(models.Token{DeviceID: deviceID, AccountID: "acc"}, nil)

		require.NoError(t, service.NewClientAuthService(deviceID, serverAdapter).EnsureToken(ctx))
	})

	t.Run("registration failure", func(t *testing.T) {
		serverAdapter := mock.NewMockServerAdapter(gomock.NewController(t))
		serverAdapter.EXPECT().RegisterDevice(gomock.Any(), deviceID).Return(models.Token{}, adapter.ErrUnauthorized)

		_, err := service.NewClientAuthService(deviceID, serverAdapter).Register(ctx)

		require.ErrorIs(t, err, adapter.ErrUnauthorized)
	})
}

func TestAppStateService_FlushRepositoryErrors(t *testing.T) {
	t.Run("pending list fails", func(t *testing.T) {
		svc, m := newMockedAppState(t)
		m.pending.EXPECT().Pending(gomock.Any(), deviceID).Return(nil, assert.AnError)

		assert.ErrorIs(t, svc.Flush(context.Background()), assert.AnError)
	})

	t.Run("remove fails", func(t *testing.T) {
		svc, m := newMockedAppState(t)
		batches := []models.PendingBatch{
			{ID: "b1", Collection: "bogus", Mutations: []models.PendingMutation{models.SetLocale("en", time.Now())}},
			{ID: "b2", Collection: models.CriticalBlock},
		}
		m.pending.EXPECT().Pending(gomock.Any(), deviceID).Return(batches, nil)
		// b1 отклоняется без обращения к relay, b2 уже не обрабатывается
		m.pending.EXPECT().Remove(gomock.Any(), deviceID, "b1").Return(assert.AnError)

		assert.ErrorIs(t, svc.Flush(context.Background()), assert.AnError)
	})
}

func TestAppStateService_QueueFailureSurfaces(t *testing.T) {
	svc, m := newMockedAppState(t)
	key := models.AppStateSyncKey{KeyID: []byte{0x01}, KeyData: bytes.Repeat([]byte{0x07}, 32)}
	mutationKeys, err := crypto.DeriveMutationKeys(key.KeyData)
	require.NoError(t, err)
	mute := models.MuteChat(chatJID, time.Now().Add(time.Hour), time.Now())

	m.keys.EXPECT().Latest(gomock.Any()).Return(key, mutationKeys, nil)
	m.states.EXPECT().Load(gomock.Any(), deviceID, mute.Collection).Return(nil, nil)
	m.transport.EXPECT().
		SubmitQuery(gomock.Any(), models.SyncNamespace, gomock.Any()).
		Return(nil, adapter.ErrTransport)
	m.pending.EXPECT().
		Enqueue(gomock.Any(), deviceID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, batch models.PendingBatch) error {
			assert.NotEmpty(t, batch.ID)
			assert.Equal(t, mute.Collection, batch.Collection)
			assert.Equal(t, []models.PendingMutation{mute}, batch.Mutations)
			return assert.AnError
		})

	err = svc.Push(context.Background(), mute.Collection, mute)

	assert.ErrorIs(t, err, adapter.ErrTransport)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, service.ErrPushQueued)
}
