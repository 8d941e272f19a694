package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-app-state-sync/internal/adapter"
	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/store"
	"github.com/MKhiriev/go-app-state-sync/internal/wire"
	"github.com/MKhiriev/go-app-state-sync/models"
)

const chatJID = "15551234567@s.whatsapp.net"

var (
	testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	muteEnd = testNow.Add(8 * time.Hour)
)

func loadState(t *testing.T, c *testClient, collection models.Collection) *models.CollectionState {
	t.Helper()
	state, err := c.svc.State(context.Background(), collection)
	require.NoError(t, err)
	return state
}

// tamperPatch makes the relay answer with a broken patch MAC on the patch
// of the given version.
func tamperPatch(relay *fakeRelay, version uint64) func(payload []byte) ([]byte, error) {
	return func(payload []byte) ([]byte, error) {
		raw, err := relay.relay.Submit(context.Background(), testAccountID, "device", models.SyncNamespace, payload)
		if err != nil {
			return nil, err
		}
		resp, err := wire.DecodeSyncResponse(raw)
		if err != nil {
			return nil, err
		}
		for i := range resp.Collections {
			for j := range resp.Collections[i].Patches {
				p := &resp.Collections[i].Patches[j]
				if p.GetVersion() == version {
					p.PatchMAC[0] ^= 0xff
				}
			}
		}
		return wire.EncodeSyncResponse(resp), nil
	}
}

func TestNewAppStateService_UnknownClientType(t *testing.T) {
	cfg := config.ClientSync{DeviceID: "device", ClientType: "TV"}
	relay := newFakeRelay(testRelayConfig())

	svc, err := NewAppStateService(cfg, relay, relay, store.NewMemoryCollectionStateRepository(),
		store.NewMemoryPendingMutationRepository(), NewKeyProvider("device", newStubKeyRepository()), NewDispatcher(nil, logger.Nop()), logger.Nop())

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrUnknownClientType)
}

func TestAppState_Pull_UnknownCollection(t *testing.T) {
	c := newTestClient(t, newFakeRelay(testRelayConfig()), ClientTypeWeb)

	err := c.svc.Pull(context.Background(), "bogus")
	assert.ErrorIs(t, err, models.ErrUnknownCollection)
}

func TestAppState_Pull_EmptyRelay(t *testing.T) {
	relay := newFakeRelay(testRelayConfig())
	c := newTestClient(t, relay, ClientTypeWeb)

	require.NoError(t, c.svc.Pull(context.Background()))

	assert.Equal(t, 1, relay.Queries())
	for _, collection := range models.AllCollections() {
		assert.Equal(t, uint64(0), loadState(t, c, collection).Version)
	}
	assert.Zero(t, c.listener.initialSync)
}

func TestAppState_PullOfOneMute(t *testing.T) {
	ctx := context.Background()
	relay := newFakeRelay(testRelayConfig())
	pusher := newTestClient(t, relay, ClientTypeDesktop)
	puller := newTestClient(t, relay, ClientTypeWeb)
	require.NoError(t, puller.domain.SaveChat(ctx, models.Chat{JID: chatJID}))

	require.NoError(t, pusher.svc.PushActions(ctx, models.MuteChat(chatJID, muteEnd, testNow)))
	require.NoError(t, puller.svc.Pull(ctx, models.RegularHigh))

	state := loadState(t, puller, models.RegularHigh)
	assert.Equal(t, uint64(1), state.Version)
	assert.Len(t, state.IndexValueMap, 1)

	chat, err := puller.domain.GetChat(ctx, chatJID)
	require.NoError(t, err)
	assert.Equal(t, muteEnd.UnixMilli(), chat.MuteEndTimestamp)

	require.Len(t, puller.listener.actions, 1)
	assert.Equal(t, models.MuteAction{Muted: true, MuteEndTimestamp: muteEnd.UnixMilli()}, puller.listener.actions[0])
	assert.Equal(t, models.MessageIndex{"mute", chatJID}, puller.listener.indexes[0])
}

func TestAppState_PushThenPull_SameState(t *testing.T) {
	ctx := context.Background()
	relay := newFakeRelay(testRelayConfig())
	pusher := newTestClient(t, relay, ClientTypeDesktop)
	puller := newTestClient(t, relay, ClientTypeWeb)

	require.NoError(t, pusher.svc.PushActions(ctx,
		models.MuteChat(chatJID, muteEnd, testNow),
		models.StarMessage(models.MessageKey{RemoteJID: chatJID, ID: "MSG1"}, true, testNow),
	))
	// overwrite the mute, the first value must leave the hash
	require.NoError(t, pusher.svc.PushActions(ctx, models.MuteChat(chatJID, time.Time{}, testNow)))

	// first pull comes as a snapshot
	require.NoError(t, puller.svc.Pull(ctx, models.RegularHigh))

	want := loadState(t, pusher, models.RegularHigh)
	got := loadState(t, puller, models.RegularHigh)
	assert.Equal(t, uint64(2), got.Version)
	assert.Equal(t, want.Hash, got.Hash)
	assert.Equal(t, want.IndexValueMap, got.IndexValueMap)

	// further pushes arrive as patches
	require.NoError(t, pusher.svc.PushActions(ctx, models.MuteChat(chatJID, muteEnd, testNow)))
	require.NoError(t, puller.svc.Pull(ctx, models.RegularHigh))

	want = loadState(t, pusher, models.RegularHigh)
	got = loadState(t, puller, models.RegularHigh)
	assert.Equal(t, uint64(3), got.Version)
	assert.Equal(t, want.Hash, got.Hash)
	assert.Equal(t, want.IndexValueMap, got.IndexValueMap)
}

func TestAppState_Pull_FollowsPages(t *testing.T) {
	ctx := context.Background()
	cfg := testRelayConfig()
	cfg.PageSize = 1
	relay := newFakeRelay(cfg)
	pusher := newTestClient(t, relay, ClientTypeDesktop)
	puller := newTestClient(t, relay, ClientTypeWeb)

	require.NoError(t, pusher.svc.PushActions(ctx, models.PinChat(chatJID, true, testNow)))
	require.NoError(t, puller.svc.Pull(ctx, models.RegularLow))

	for i := 0; i < 3; i++ {
		require.NoError(t, pusher.svc.PushActions(ctx, models.PinChat(chatJID, i%2 == 0, testNow)))
	}

	before := relay.Queries()
	require.NoError(t, puller.svc.Pull(ctx, models.RegularLow))

	assert.Equal(t, 3, relay.Queries()-before)
	assert.Equal(t, loadState(t, pusher, models.RegularLow).Hash, loadState(t, puller, models.RegularLow).Hash)
	assert.Equal(t, uint64(4), loadState(t, puller, models.RegularLow).Version)
}

func TestAppState_CorruptedMiddlePatch(t *testing.T) {
	ctx := context.Background()
	relay := newFakeRelay(testRelayConfig())
	pusher := newTestClient(t, relay, ClientTypeDesktop)
	puller := newTestClient(t, relay, ClientTypeWeb)

	require.NoError(t, pusher.svc.PushActions(ctx, models.MuteChat(chatJID, muteEnd, testNow)))
	require.NoError(t, puller.svc.Pull(ctx, models.RegularHigh))
	for i := 0; i < 3; i++ {
		require.NoError(t, pusher.svc.PushActions(ctx, models.MuteChat(chatJID, muteEnd.Add(time.Duration(i)*time.Hour), testNow)))
	}

	relay.respond = tamperPatch(relay, 3)
	err := puller.svc.Pull(ctx, models.RegularHigh)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecodeFailure)
	assert.Equal(t, 1, puller.svc.Attempts(models.RegularHigh))
	// the good patch before the broken one is not committed either
	assert.Equal(t, uint64(1), loadState(t, puller, models.RegularHigh).Version)

	relay.respond = nil
	require.NoError(t, puller.svc.Pull(ctx, models.RegularHigh))

	assert.Zero(t, puller.svc.Attempts(models.RegularHigh))
	assert.Equal(t, uint64(4), loadState(t, puller, models.RegularHigh).Version)
	assert.Equal(t, loadState(t, pusher, models.RegularHigh).Hash, loadState(t, puller, models.RegularHigh).Hash)
}

func TestAppState_RepeatedDecodeFailuresResetState(t *testing.T) {
	ctx := context.Background()
	relay := newFakeRelay(testRelayConfig())
	pusher := newTestClient(t, relay, ClientTypeDesktop)
	puller := newTestClient(t, relay, ClientTypeWeb)

	require.NoError(t, pusher.svc.PushActions(ctx, models.MuteChat(chatJID, muteEnd, testNow)))
	require.NoError(t, puller.svc.Pull(ctx, models.RegularHigh))
	require.NoError(t, pusher.svc.PushActions(ctx, models.MuteChat(chatJID, time.Time{}, testNow)))

	relay.respond = tamperPatch(relay, 2)
	for i := 1; i <= MaxDecodeAttempts; i++ {
		require.ErrorIs(t, puller.svc.Pull(ctx, models.RegularHigh), ErrDecodeFailure)
		assert.Equal(t, i, puller.svc.Attempts(models.RegularHigh))
	}

	reset := loadState(t, puller, models.RegularHigh)
	assert.Equal(t, uint64(0), reset.Version)
	assert.Empty(t, reset.IndexValueMap)

	// the next pull starts over from a snapshot
	relay.respond = nil
	require.NoError(t, puller.svc.Pull(ctx, models.RegularHigh))
	assert.Equal(t, uint64(2), loadState(t, puller, models.RegularHigh).Version)
	assert.Zero(t, puller.svc.Attempts(models.RegularHigh))
}

func TestAppState_SkipsAppliedPatches(t *testing.T) {
	ctx := context.Background()
	relay := newFakeRelay(testRelayConfig())
	pusher := newTestClient(t, relay, ClientTypeDesktop)
	puller := newTestClient(t, relay, ClientTypeWeb)

	require.NoError(t, pusher.svc.PushActions(ctx, models.ArchiveChat(chatJID, true, testNow)))
	require.NoError(t, pusher.svc.PushActions(ctx, models.ArchiveChat(chatJID, false, testNow)))
	require.NoError(t, puller.svc.Pull(ctx, models.RegularLow))
	require.NoError(t, pusher.svc.PushActions(ctx, models.ArchiveChat(chatJID, true, testNow)))

	// the relay replays the whole log
	relay.respond = func(_ []byte) ([]byte, error) {
		patches, err := relay.log.PatchesAfter(ctx, testAccountID, models.RegularLow, 0, 10)
		if err != nil {
			return nil, err
		}
		return wire.EncodeSyncResponse(&models.SyncResponse{Collections: []models.CollectionResponse{{
			Name:    models.RegularLow,
			Version: 3,
			Patches: patches,
		}}}), nil
	}

	require.NoError(t, puller.svc.Pull(ctx, models.RegularLow))
	assert.Equal(t, uint64(3), loadState(t, puller, models.RegularLow).Version)
	assert.Equal(t, loadState(t, pusher, models.RegularLow).Hash, loadState(t, puller, models.RegularLow).Hash)
}

func TestAppState_InitialSyncSignalledOnce(t *testing.T) {
	ctx := context.Background()
	relay := newFakeRelay(testRelayConfig())
	pusher := newTestClient(t, relay, ClientTypeDesktop)
	puller := newTestClient(t, relay, ClientTypeWeb)

	require.NoError(t, pusher.svc.PushActions(ctx,
		models.SetPushName("Alice", testNow),
		models.RenameContact(chatJID, "Bob Smith", "Bob", testNow),
		models.MuteChat(chatJID, muteEnd, testNow),
		models.PinChat(chatJID, true, testNow),
		models.EditLabel("1", models.LabelEditAction{Name: "Work", Color: 3}, testNow),
	))

	require.NoError(t, puller.svc.Pull(ctx))
	require.NoError(t, puller.svc.Pull(ctx))

	assert.Equal(t, 1, puller.listener.initialSync)
	for _, collection := range models.AllCollections() {
		assert.Equal(t, uint64(1), loadState(t, puller, collection).Version, collection)
	}

	settings, err := puller.domain.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", settings.PushName)

	// contact mutations create the chat, so the later mute lands
	chat, err := puller.domain.GetChat(ctx, chatJID)
	require.NoError(t, err)
	assert.Equal(t, "Bob Smith", chat.Name)
	assert.Equal(t, muteEnd.UnixMilli(), chat.MuteEndTimestamp)
}

func TestAppState_Push_WebPullsFirst(t *testing.T) {
	ctx := context.Background()
	relay := newFakeRelay(testRelayConfig())
	other := newTestClient(t, relay, ClientTypeDesktop)
	web := newTestClient(t, relay, ClientTypeWeb)

	require.NoError(t, other.svc.PushActions(ctx, models.MuteChat(chatJID, muteEnd, testNow)))
	require.NoError(t, web.svc.PushActions(ctx, models.StarMessage(models.MessageKey{RemoteJID: chatJID, ID: "M1"}, true, testNow)))

	assert.Equal(t, uint64(2), loadState(t, web, models.RegularHigh).Version)
}

func TestAppState_Push_StaleDesktopConflicts(t *testing.T) {
	ctx := context.Background()
	relay := newFakeRelay(testRelayConfig())
	other := newTestClient(t, relay, ClientTypeDesktop)
	stale := newTestClient(t, relay, ClientTypeDesktop)

	require.NoError(t, other.svc.PushActions(ctx, models.MuteChat(chatJID, muteEnd, testNow)))
	err := stale.svc.PushActions(ctx, models.MuteChat(chatJID, time.Time{}, testNow))

	var syncErr *CollectionSyncError
	require.ErrorAs(t, err, &syncErr)
	assert.ErrorIs(t, err, ErrCollectionSync)
	assert.Equal(t, uint32(409), syncErr.Code)
	assert.Equal(t, uint64(0), loadState(t, stale, models.RegularHigh).Version)
}

func TestAppState_Push_LocalEcho(t *testing.T) {
	tests := []struct {
		clientType string
		echo       bool
	}{
		{clientType: ClientTypeDesktop, echo: true},
		{clientType: ClientTypeWeb, echo: true},
		{clientType: ClientTypeMobile, echo: false},
	}

	for _, tt := range tests {
		t.Run(tt.clientType, func(t *testing.T) {
			ctx := context.Background()
			c := newTestClient(t, newFakeRelay(testRelayConfig()), tt.clientType)
			require.NoError(t, c.domain.SaveChat(ctx, models.Chat{JID: chatJID}))

			require.NoError(t, c.svc.PushActions(ctx, models.MuteChat(chatJID, muteEnd, testNow)))

			chat, err := c.domain.GetChat(ctx, chatJID)
			require.NoError(t, err)
			if tt.echo {
				assert.Equal(t, muteEnd.UnixMilli(), chat.MuteEndTimestamp)
				assert.Len(t, c.listener.actions, 1)
			} else {
				assert.Zero(t, chat.MuteEndTimestamp)
				assert.Empty(t, c.listener.actions)
			}
			assert.Equal(t, uint64(1), loadState(t, c, models.RegularHigh).Version)
		})
	}
}

func TestAppState_Push_RejectsForeignCollection(t *testing.T) {
	c := newTestClient(t, newFakeRelay(testRelayConfig()), ClientTypeDesktop)

	err := c.svc.Push(context.Background(), models.Regular, models.MuteChat(chatJID, muteEnd, testNow))
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAppState_Push_NoKey(t *testing.T) {
	relay := newFakeRelay(testRelayConfig())
	c := newTestClient(t, relay, ClientTypeDesktop)
	c.svc.keys = NewKeyProvider("device", newStubKeyRepository())

	err := c.svc.PushActions(context.Background(), models.MuteChat(chatJID, muteEnd, testNow))
	assert.ErrorIs(t, err, ErrNoAppStateKey)
	assert.Zero(t, relay.Queries())
}

func TestAppState_Pull_MissingKeyIsNotCounted(t *testing.T) {
	ctx := context.Background()
	relay := newFakeRelay(testRelayConfig())
	pusher := newTestClient(t, relay, ClientTypeDesktop)
	puller := newTestClient(t, relay, ClientTypeWeb)
	keys := newStubKeyRepository(testKey)
	puller.svc.keys = NewKeyProvider("device", keys)

	require.NoError(t, pusher.svc.PushActions(ctx, models.MuteChat(chatJID, muteEnd, testNow)))
	require.NoError(t, puller.svc.Pull(ctx, models.RegularHigh))
	require.NoError(t, pusher.svc.PushActions(ctx, models.MuteChat(chatJID, time.Time{}, testNow)))
	keys.keys = nil

	for range MaxDecodeAttempts + 1 {
		err := puller.svc.Pull(ctx, models.RegularHigh)
		assert.ErrorIs(t, err, ErrNoAppStateKey)
		assert.NotErrorIs(t, err, ErrDecodeFailure)
	}

	assert.Zero(t, puller.svc.Attempts(models.RegularHigh))
	// the key arrives later and the pull resumes from where it stopped
	assert.Equal(t, uint64(1), loadState(t, puller, models.RegularHigh).Version)

	require.NoError(t, keys.Save(ctx, "device", testKey))
	require.NoError(t, puller.svc.Pull(ctx, models.RegularHigh))
	assert.Equal(t, uint64(2), loadState(t, puller, models.RegularHigh).Version)
}

func TestAppState_Push_ClearsAttempts(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, newFakeRelay(testRelayConfig()), ClientTypeDesktop)

	_ = c.svc.decodeFailed(ctx, models.RegularHigh, assert.AnError)
	_ = c.svc.decodeFailed(ctx, models.Regular, assert.AnError)
	require.Equal(t, 1, c.svc.Attempts(models.RegularHigh))

	require.NoError(t, c.svc.PushActions(ctx, models.MuteChat(chatJID, muteEnd, testNow)))

	assert.Zero(t, c.svc.Attempts(models.RegularHigh))
	assert.Equal(t, 1, c.svc.Attempts(models.Regular), "other collections keep their count")
}

func TestAppState_Push_FailureKeepsAttempts(t *testing.T) {
	ctx := context.Background()
	relay := newFakeRelay(testRelayConfig())
	c := newTestClient(t, relay, ClientTypeDesktop)
	_ = c.svc.decodeFailed(ctx, models.RegularHigh, assert.AnError)

	relay.respond = func(_ []byte) ([]byte, error) {
		return nil, adapter.ErrTransport
	}
	err := c.svc.PushActions(ctx, models.MuteChat(chatJID, muteEnd, testNow))

	assert.ErrorIs(t, err, adapter.ErrTransport)
	assert.Equal(t, 1, c.svc.Attempts(models.RegularHigh))
}

func TestAppState_RemoveReachesOtherDevice(t *testing.T) {
	ctx := context.Background()
	relay := newFakeRelay(testRelayConfig())
	pusher := newTestClient(t, relay, ClientTypeDesktop)
	puller := newTestClient(t, relay, ClientTypeWeb)
	require.NoError(t, puller.domain.SaveChat(ctx, models.Chat{JID: chatJID}))

	mute := models.MuteChat(chatJID, muteEnd, testNow)
	require.NoError(t, pusher.svc.PushActions(ctx, mute))
	require.NoError(t, puller.svc.Pull(ctx, models.RegularHigh))
	require.NoError(t, pusher.svc.PushActions(ctx, mute.Removal()))
	require.NoError(t, puller.svc.Pull(ctx, models.RegularHigh))

	require.Len(t, puller.listener.actions, 2)
	assert.Equal(t, models.MuteAction{Muted: true, MuteEndTimestamp: muteEnd.UnixMilli()}, puller.listener.actions[0])
	assert.Equal(t, models.MuteAction{}, puller.listener.actions[1])
	assert.Equal(t, models.MessageIndex{"mute", chatJID}, puller.listener.indexes[1])

	chat, err := puller.domain.GetChat(ctx, chatJID)
	require.NoError(t, err)
	assert.Zero(t, chat.MuteEndTimestamp)

	got := loadState(t, puller, models.RegularHigh)
	want := loadState(t, pusher, models.RegularHigh)
	assert.Equal(t, uint64(2), got.Version)
	assert.Empty(t, got.IndexValueMap)
	assert.Equal(t, want.Hash, got.Hash)
}

func TestAppState_ConcurrentPushAndPull(t *testing.T) {
	const pushes = 16

	ctx := context.Background()
	relay := newFakeRelay(testRelayConfig())
	c := newTestClient(t, relay, ClientTypeDesktop)

	group, groupCtx := errgroup.WithContext(ctx)
	for i := range pushes {
		jid := fmt.Sprintf("1555000%04d@s.whatsapp.net", i)
		group.Go(func() error {
			return c.svc.PushActions(groupCtx, models.MuteChat(jid, muteEnd, testNow))
		})
		group.Go(func() error {
			return c.svc.Pull(groupCtx, models.RegularHigh)
		})
	}
	require.NoError(t, group.Wait())

	state := loadState(t, c, models.RegularHigh)
	assert.Equal(t, uint64(pushes), state.Version)
	assert.Len(t, state.IndexValueMap, pushes)
	assert.Zero(t, c.svc.Attempts(models.RegularHigh))

	// a fresh device ends up with the same hash
	other := newTestClient(t, relay, ClientTypeWeb)
	require.NoError(t, other.svc.Pull(ctx, models.RegularHigh))
	assert.Equal(t, state.Hash, loadState(t, other, models.RegularHigh).Hash)
}

func TestAppState_Pull_TransportErrorIsNotCounted(t *testing.T) {
	relay := newFakeRelay(testRelayConfig())
	c := newTestClient(t, relay, ClientTypeWeb)
	relay.respond = func(_ []byte) ([]byte, error) {
		return nil, adapter.ErrTransport
	}

	err := c.svc.Pull(context.Background(), models.Regular)

	assert.ErrorIs(t, err, adapter.ErrTransport)
	assert.Zero(t, c.svc.Attempts(models.Regular))
}

func TestAppState_Pull_CollectionError(t *testing.T) {
	relay := newFakeRelay(testRelayConfig())
	c := newTestClient(t, relay, ClientTypeWeb)
	relay.respond = func(_ []byte) ([]byte, error) {
		return wire.EncodeSyncResponse(&models.SyncResponse{Collections: []models.CollectionResponse{{
			Name:      models.Regular,
			Type:      models.CollectionResponseError,
			ErrorCode: 500,
			ErrorText: "internal",
		}}}), nil
	}

	err := c.svc.Pull(context.Background(), models.Regular)

	var syncErr *CollectionSyncError
	require.True(t, errors.As(err, &syncErr))
	assert.Equal(t, models.Regular, syncErr.Collection)
	assert.Equal(t, "internal", syncErr.Text)
	assert.Zero(t, c.svc.Attempts(models.Regular))
}

func TestAppState_Pull_MACChecksCanBeDisabled(t *testing.T) {
	ctx := context.Background()
	relay := newFakeRelay(testRelayConfig())
	pusher := newTestClient(t, relay, ClientTypeDesktop)
	puller := newTestClient(t, relay, ClientTypeWeb)
	puller.svc.checkMACs = false

	require.NoError(t, pusher.svc.PushActions(ctx, models.MuteChat(chatJID, muteEnd, testNow)))
	require.NoError(t, puller.svc.Pull(ctx, models.RegularHigh))
	require.NoError(t, pusher.svc.PushActions(ctx, models.MuteChat(chatJID, time.Time{}, testNow)))

	relay.respond = tamperPatch(relay, 2)
	require.NoError(t, puller.svc.Pull(ctx, models.RegularHigh))
	assert.Equal(t, uint64(2), loadState(t, puller, models.RegularHigh).Version)
}

func TestAppState_Push_QueuedWhileRelayDown(t *testing.T) {
	for _, clientType := range []string{ClientTypeWeb, ClientTypeDesktop} {
		t.Run(clientType, func(t *testing.T) {
			ctx := context.Background()
			relay := newFakeRelay(testRelayConfig())
			c := newTestClient(t, relay, clientType)

			relay.respond = func(_ []byte) ([]byte, error) {
				return nil, fmt.Errorf("%w: connection refused", adapter.ErrTransport)
			}
			mute := models.MuteChat(chatJID, muteEnd, testNow)
			name := models.SetPushName("Rasul", testNow)
			err := c.svc.PushActions(ctx, mute, name)

			require.ErrorIs(t, err, ErrPushQueued)
			assert.ErrorIs(t, err, adapter.ErrTransport)

			queued, err := c.pending.Pending(ctx, "device")
			require.NoError(t, err)
			require.Len(t, queued, 2)
			assert.Equal(t, mute.Collection, queued[0].Collection)
			assert.Equal(t, []models.PendingMutation{mute}, queued[0].Mutations)
			assert.Equal(t, name.Collection, queued[1].Collection)
			assert.NotEqual(t, queued[0].ID, queued[1].ID)

			state, err := c.svc.State(ctx, mute.Collection)
			require.NoError(t, err)
			assert.Zero(t, state.Version)

			// пока relay недоступен, очередь не трогаем
			require.ErrorIs(t, c.svc.Flush(ctx), adapter.ErrTransport)
			queued, err = c.pending.Pending(ctx, "device")
			require.NoError(t, err)
			assert.Len(t, queued, 2)

			relay.respond = nil
			require.NoError(t, c.svc.Flush(ctx))

			queued, err = c.pending.Pending(ctx, "device")
			require.NoError(t, err)
			assert.Empty(t, queued)

			reader := newTestClient(t, relay, ClientTypeDesktop)
			require.NoError(t, reader.svc.Pull(ctx, mute.Collection, name.Collection))
			assert.Contains(t, reader.listener.settings, name.Value.Payload)
			for _, coll := range []models.Collection{mute.Collection, name.Collection} {
				want, err := c.svc.State(ctx, coll)
				require.NoError(t, err)
				got, err := reader.svc.State(ctx, coll)
				require.NoError(t, err)
				assert.Equal(t, uint64(1), got.Version)
				assert.Equal(t, want.Hash, got.Hash)
			}
		})
	}
}

func TestAppState_Flush_DropsRejectedBatch(t *testing.T) {
	ctx := context.Background()
	relay := newFakeRelay(testRelayConfig())
	c := newTestClient(t, relay, ClientTypeDesktop)

	mute := models.MuteChat(chatJID, muteEnd, testNow)
	require.NoError(t, c.pending.Enqueue(ctx, "device", models.PendingBatch{
		ID:         "bogus",
		Collection: "bogus",
		Mutations:  []models.PendingMutation{mute},
	}))
	require.NoError(t, c.pending.Enqueue(ctx, "device", models.PendingBatch{
		ID:         "good",
		Collection: mute.Collection,
		Mutations:  []models.PendingMutation{mute},
	}))

	require.NoError(t, c.svc.Flush(ctx))

	queued, err := c.pending.Pending(ctx, "device")
	require.NoError(t, err)
	assert.Empty(t, queued)

	state, err := c.svc.State(ctx, mute.Collection)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), state.Version)
}

func TestAppState_Flush_KeepsBatchOnConflict(t *testing.T) {
	ctx := context.Background()
	relay := newFakeRelay(testRelayConfig())
	c := newTestClient(t, relay, ClientTypeDesktop)

	mute := models.MuteChat(chatJID, muteEnd, testNow)
	require.NoError(t, c.pending.Enqueue(ctx, "device", models.PendingBatch{
		ID:         "b1",
		Collection: mute.Collection,
		Mutations:  []models.PendingMutation{mute},
	}))

	relay.respond = func(_ []byte) ([]byte, error) {
		return wire.EncodeSyncResponse(&models.SyncResponse{Collections: []models.CollectionResponse{{
			Name:      mute.Collection,
			Type:      models.CollectionResponseError,
			ErrorCode: 409,
			ErrorText: "conflict",
		}}}), nil
	}

	err := c.svc.Flush(ctx)

	var syncErr *CollectionSyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, uint32(409), syncErr.Code)
	queued, err := c.pending.Pending(ctx, "device")
	require.NoError(t, err)
	assert.Len(t, queued, 1)
}
