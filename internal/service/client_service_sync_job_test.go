package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-app-state-sync/internal/adapter"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/models"
)

// countingAppState fails the first failures pulls with err.
type countingAppState struct {
	AppStateService
	pulls    atomic.Int32
	failures int32
	err      error

	flushes  atomic.Int32
	flushErr error
}

func (s *countingAppState) Pull(context.Context, ...models.Collection) error {
	n := s.pulls.Add(1)
	if n <= s.failures {
		return s.err
	}
	return nil
}

func (s *countingAppState) Flush(context.Context) error {
	s.flushes.Add(1)
	return s.flushErr
}

func TestClientSyncJob_PullsOnTicker(t *testing.T) {
	appState := &countingAppState{}
	job := NewClientSyncJob(appState, NewClientAuthService("phone-1", newStubServerAdapter(time.Hour)), 0, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	require.Eventually(t, func() bool { return appState.pulls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	job.Stop()

	stopped := appState.pulls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, appState.pulls.Load(), "no pulls after Stop")
}

func TestClientSyncJob_StopWithoutStart(t *testing.T) {
	job := NewClientSyncJob(&countingAppState{}, nil, 0, logger.Nop())
	assert.NotPanics(t, job.Stop)
}

func TestClientSyncJob_StopsOnContextCancel(t *testing.T) {
	appState := &countingAppState{}
	job := NewClientSyncJob(appState, nil, 0, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx, 10*time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after the context was cancelled")
	}
}

func TestClientSyncJob_SyncOnce_RetriesTransport(t *testing.T) {
	appState := &countingAppState{failures: 2, err: adapter.ErrTransport}
	job := NewClientSyncJob(appState, nil, 3, logger.Nop()).(*clientSyncJob)

	require.NoError(t, job.syncOnce(context.Background()))
	assert.Equal(t, int32(3), appState.pulls.Load())
}

func TestClientSyncJob_SyncOnce_DecodeFailureNotRetried(t *testing.T) {
	appState := &countingAppState{failures: 5, err: ErrDecodeFailure}
	job := NewClientSyncJob(appState, nil, 3, logger.Nop()).(*clientSyncJob)

	assert.ErrorIs(t, job.syncOnce(context.Background()), ErrDecodeFailure)
	assert.Equal(t, int32(1), appState.pulls.Load())
}

func TestClientSyncJob_SyncOnce_ReRegistersOnUnauthorized(t *testing.T) {
	serverAdapter := newStubServerAdapter(time.Hour)
	appState := &countingAppState{failures: 1, err: adapter.ErrUnauthorized}
	job := NewClientSyncJob(appState, NewClientAuthService("phone-1", serverAdapter), 2, logger.Nop()).(*clientSyncJob)

	require.NoError(t, job.syncOnce(context.Background()))

	// once for the missing token, once after the rejection
	assert.Equal(t, 2, serverAdapter.registrations())
	assert.Equal(t, int32(2), appState.pulls.Load())
}

func TestClientSyncJob_SyncOnce_FlushesBeforePull(t *testing.T) {
	appState := &countingAppState{flushErr: adapter.ErrTransport}
	job := NewClientSyncJob(appState, nil, 2, logger.Nop()).(*clientSyncJob)

	// relay stays down: every attempt stops at the flush
	assert.ErrorIs(t, job.syncOnce(context.Background()), adapter.ErrTransport)
	assert.Equal(t, int32(3), appState.flushes.Load())
	assert.Zero(t, appState.pulls.Load())
}
