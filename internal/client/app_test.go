package client

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-app-state-sync/internal/adapter"
	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/mock"
	"github.com/MKhiriev/go-app-state-sync/internal/service"
	"github.com/MKhiriev/go-app-state-sync/models"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type testApp struct {
	app      *App
	out      *bytes.Buffer
	keys     *mock.MockKeyProvider
	appState *mock.MockAppStateService
	auth     *mock.MockClientAuthService
	syncJob  *mock.MockClientSyncJob
}

func newTestApp(t *testing.T, cfg *config.ClientConfig) *testApp {
	t.Helper()
	ctrl := gomock.NewController(t)

	ta := &testApp{
		out:      &bytes.Buffer{},
		keys:     mock.NewMockKeyProvider(ctrl),
		appState: mock.NewMockAppStateService(ctrl),
		auth:     mock.NewMockClientAuthService(ctrl),
		syncJob:  mock.NewMockClientSyncJob(ctrl),
	}
	services := &service.ClientServices{
		Keys:     ta.keys,
		AppState: ta.appState,
		Auth:     ta.auth,
		SyncJob:  ta.syncJob,
	}
	if cfg == nil {
		cfg = &config.ClientConfig{}
	}

	app, err := NewApp(services, cfg, models.NewAppBuildInfo("1.2.3", "2026-03-01", "abc123"), ta.out, logger.Nop())
	require.NoError(t, err)
	app.now = func() time.Time { return testNow }
	ta.app = app
	return ta
}

// expectOnline ожидает регистрацию устройства и подписку на события.
func (ta *testApp) expectOnline() {
	ta.auth.EXPECT().Register(gomock.Any()).Return(models.Token{}, nil)
	ta.appState.EXPECT().Observe(gomock.Any())
}

func (ta *testApp) expectStates(collections ...models.Collection) {
	for _, c := range collections {
		ta.appState.EXPECT().State(gomock.Any(), c).Return(&models.CollectionState{Name: c, Version: 3}, nil)
		ta.appState.EXPECT().Attempts(c).Return(0)
	}
}

func (ta *testApp) expectPush(t *testing.T, check func(t *testing.T, m models.PendingMutation)) {
	ta.appState.EXPECT().PushActions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, muts ...models.PendingMutation) error {
			require.Len(t, muts, 1)
			check(t, muts[0])
			return nil
		})
}

func TestNewApp_RequiresServices(t *testing.T) {
	_, err := NewApp(nil, &config.ClientConfig{}, models.AppBuildInfo{}, &bytes.Buffer{}, logger.Nop())
	assert.Error(t, err)
}

func TestApp_UnknownCommand(t *testing.T) {
	ta := newTestApp(t, nil)

	err := ta.app.Run(context.Background(), []string{"explode"})

	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestApp_WrongArgs(t *testing.T) {
	ta := newTestApp(t, nil)

	err := ta.app.Run(context.Background(), []string{"mute", "123@s.whatsapp.net"})

	assert.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, err.Error(), "mute <jid> <seconds>")
}

func TestApp_Version(t *testing.T) {
	// version не требует ключей и регистрации
	ta := newTestApp(t, nil)

	require.NoError(t, ta.app.Run(context.Background(), []string{"version"}))

	assert.Contains(t, ta.out.String(), "Build version: 1.2.3")
	assert.Contains(t, ta.out.String(), "Build commit: abc123")
}

func TestApp_ImportsRootKey(t *testing.T) {
	cfg := &config.ClientConfig{Sync: config.ClientSync{RootKeyHex: "0a0b", RootKeyID: "0001"}}
	ta := newTestApp(t, cfg)

	ta.keys.EXPECT().Import(gomock.Any(), models.AppStateSyncKey{
		KeyID:     []byte{0x00, 0x01},
		KeyData:   []byte{0x0a, 0x0b},
		Timestamp: testNow,
	}).Return(nil)
	ta.expectOnline()
	ta.expectPush(t, func(t *testing.T, m models.PendingMutation) {})

	require.NoError(t, ta.app.Run(context.Background(), []string{"locale", "en_US"}))
}

func TestApp_ImportFails(t *testing.T) {
	cfg := &config.ClientConfig{Sync: config.ClientSync{RootKeyHex: "0a0b", RootKeyID: "01"}}
	ta := newTestApp(t, cfg)
	ta.keys.EXPECT().Import(gomock.Any(), gomock.Any()).Return(assert.AnError)

	err := ta.app.Run(context.Background(), []string{"pin", "123@s.whatsapp.net"})

	assert.ErrorIs(t, err, assert.AnError)
}

func TestApp_RegisterFails(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.auth.EXPECT().Register(gomock.Any()).Return(models.Token{}, assert.AnError)

	err := ta.app.Run(context.Background(), []string{"pin", "123@s.whatsapp.net"})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "register device")
}

func TestApp_PushCommands(t *testing.T) {
	const jid = "123@s.whatsapp.net"

	tests := []struct {
		name      string
		args      []string
		wantKind  models.ActionKind
		wantIndex models.MessageIndex
		check     func(t *testing.T, m models.PendingMutation)
	}{
		{
			name:      "pin",
			args:      []string{"pin", jid},
			wantKind:  models.KindPin,
			wantIndex: models.MessageIndex{"pin_v1", jid},
			check: func(t *testing.T, m models.PendingMutation) {
				assert.Equal(t, models.PinAction{Pinned: true}, m.Value.Payload)
			},
		},
		{
			name:      "unpin",
			args:      []string{"unpin", jid},
			wantKind:  models.KindPin,
			wantIndex: models.MessageIndex{"pin_v1", jid},
			check: func(t *testing.T, m models.PendingMutation) {
				assert.Equal(t, models.PinAction{Pinned: false}, m.Value.Payload)
			},
		},
		{
			name:      "archive",
			args:      []string{"archive", jid},
			wantKind:  models.KindArchive,
			wantIndex: models.MessageIndex{"archive", jid},
		},
		{
			name:      "mute for an hour",
			args:      []string{"mute", jid, "3600"},
			wantKind:  models.KindMute,
			wantIndex: models.MessageIndex{"mute", jid},
			check: func(t *testing.T, m models.PendingMutation) {
				action, ok := m.Value.Payload.(models.MuteAction)
				require.True(t, ok)
				assert.True(t, action.Muted)
			},
		},
		{
			name:      "unmute",
			args:      []string{"mute", jid, "0"},
			wantKind:  models.KindMute,
			wantIndex: models.MessageIndex{"mute", jid},
			check: func(t *testing.T, m models.PendingMutation) {
				action, ok := m.Value.Payload.(models.MuteAction)
				require.True(t, ok)
				assert.False(t, action.Muted)
			},
		},
		{
			name:     "push name",
			args:     []string{"push-name", "Rasul"},
			wantKind: models.KindPushNameSetting,
		},
		{
			name:     "locale",
			args:     []string{"locale", "ru_RU"},
			wantKind: models.KindLocaleSetting,
		},
		{
			name:     "star",
			args:     []string{"star", jid, "MSG1"},
			wantKind: models.KindStar,
			check: func(t *testing.T, m models.PendingMutation) {
				assert.Equal(t, jid, m.Index.TargetID())
				assert.Equal(t, "MSG1", m.Index.MessageID())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, nil)
			ta.expectOnline()
			ta.expectPush(t, func(t *testing.T, m models.PendingMutation) {
				assert.Equal(t, string(tt.wantKind), m.Index.Kind())
				assert.Equal(t, testNow.UnixMilli(), m.Value.Timestamp)
				if tt.wantIndex != nil {
					assert.Equal(t, tt.wantIndex, m.Index)
				}
				if tt.check != nil {
					tt.check(t, m)
				}
			})

			require.NoError(t, ta.app.Run(context.Background(), tt.args))
			assert.Contains(t, ta.out.String(), "pushed "+string(tt.wantKind))
		})
	}
}

func TestApp_MuteBadSeconds(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.expectOnline()

	err := ta.app.Run(context.Background(), []string{"mute", "123@s.whatsapp.net", "soon"})

	assert.ErrorIs(t, err, ErrInvalidArgs)
}

func TestApp_PushFails(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.expectOnline()
	ta.appState.EXPECT().PushActions(gomock.Any(), gomock.Any()).Return(assert.AnError)

	err := ta.app.Run(context.Background(), []string{"archive", "123@s.whatsapp.net"})

	assert.ErrorIs(t, err, assert.AnError)
}

func TestApp_PushQueuedWhileOffline(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.expectOnline()
	ta.appState.EXPECT().PushActions(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: %w", service.ErrPushQueued, adapter.ErrTransport))

	require.NoError(t, ta.app.Run(context.Background(), []string{"archive", "123@s.whatsapp.net"}))
	assert.Contains(t, ta.out.String(), "queued "+string(models.KindArchive))
}

func TestApp_SyncFlushesQueueFirst(t *testing.T) {
	ta := newTestApp(t, &config.ClientConfig{Workers: config.ClientWorkers{SyncInterval: time.Minute}})
	ta.expectOnline()
	gomock.InOrder(
		ta.appState.EXPECT().Flush(gomock.Any()).Return(adapter.ErrTransport),
		ta.appState.EXPECT().Pull(gomock.Any()).Return(nil),
	)
	ta.expectStates(models.AllCollections()...)

	ctx, cancel := context.WithCancel(context.Background())
	ta.syncJob.EXPECT().Start(gomock.Any(), time.Minute).Do(func(context.Context, time.Duration) { cancel() })
	ta.syncJob.EXPECT().Stop()

	require.NoError(t, ta.app.Run(ctx, nil))
	assert.Contains(t, ta.out.String(), "sync warning")
}

func TestApp_Pull(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.expectOnline()
	ta.appState.EXPECT().Pull(gomock.Any(), models.RegularHigh).Return(nil)
	ta.expectStates(models.RegularHigh)

	require.NoError(t, ta.app.Run(context.Background(), []string{"pull", "regular_high"}))

	assert.Contains(t, ta.out.String(), "regular_high")
	assert.Contains(t, ta.out.String(), "version=3")
}

func TestApp_PullAll(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.expectOnline()
	ta.appState.EXPECT().Pull(gomock.Any()).Return(nil)
	ta.expectStates(models.AllCollections()...)

	require.NoError(t, ta.app.Run(context.Background(), []string{"pull"}))
}

func TestApp_PullUnknownCollection(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.expectOnline()

	err := ta.app.Run(context.Background(), []string{"pull", "nope"})

	assert.ErrorIs(t, err, ErrInvalidArgs)
	assert.ErrorIs(t, err, models.ErrUnknownCollection)
}

func TestApp_SyncRunsUntilCancel(t *testing.T) {
	ta := newTestApp(t, &config.ClientConfig{Workers: config.ClientWorkers{SyncInterval: time.Minute}})
	ta.expectOnline()
	// неудачный первый pull не останавливает синхронизацию
	ta.appState.EXPECT().Flush(gomock.Any()).Return(nil)
	ta.appState.EXPECT().Pull(gomock.Any()).Return(assert.AnError)
	ta.expectStates(models.AllCollections()...)

	ctx, cancel := context.WithCancel(context.Background())
	ta.syncJob.EXPECT().Start(gomock.Any(), time.Minute).Do(func(context.Context, time.Duration) { cancel() })
	ta.syncJob.EXPECT().Stop()

	require.NoError(t, ta.app.Run(ctx, nil))
	assert.Contains(t, ta.out.String(), "sync warning")
}

func TestApp_Printer(t *testing.T) {
	ta := newTestApp(t, nil)
	l := ta.app.printer()

	l.OnAction(models.PinAction{Pinned: true}, models.MessageIndex{"pin_v1", "123@s.whatsapp.net"})
	l.OnSetting(models.LocaleSetting{Locale: "en"})
	l.OnInitialSync()

	out := ta.out.String()
	assert.Contains(t, out, "pin_v1")
	assert.Contains(t, out, "123@s.whatsapp.net")
	assert.Contains(t, out, "setting_locale")
	assert.Contains(t, out, "initial sync completed")
}

type fakeDashboard struct {
	watched bool
}

func (d *fakeDashboard) Watch(ctx context.Context) error {
	d.watched = true
	return nil
}

func TestApp_WatchStopsWorkersOnQuit(t *testing.T) {
	ta := newTestApp(t, &config.ClientConfig{Workers: config.ClientWorkers{SyncInterval: time.Minute}})
	dashboard := &fakeDashboard{}
	ta.app.dashboard = dashboard

	// у watch нет печати событий в stdout
	ta.auth.EXPECT().Register(gomock.Any()).Return(models.Token{}, nil)
	ta.syncJob.EXPECT().Start(gomock.Any(), time.Minute).AnyTimes()
	ta.syncJob.EXPECT().Stop().AnyTimes()

	require.NoError(t, ta.app.Run(context.Background(), []string{"watch"}))
	assert.True(t, dashboard.watched)
	assert.Empty(t, ta.out.String())
}
