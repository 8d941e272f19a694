package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-app-state-sync/internal/adapter"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
)

const (
	defaultSyncInterval = 30 * time.Second
	syncRetryBackoff    = 500 * time.Millisecond
)

type clientSyncJob struct {
	appState AppStateService
	auth     ClientAuthService
	retries  uint64

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewClientSyncJob creates a clientSyncJob that flushes queued pushes and
// pulls every collection on a ticker. Each tick retries transient transport failures up to retries
// times with exponential backoff. The job is idle until Start is called.
func NewClientSyncJob(appState AppStateService, auth ClientAuthService, retries uint64, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{appState: appState, auth: auth, retries: retries, logger: logger}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that pulls every interval. The goroutine
// exits when ctx is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.syncOnce(jobCtx); err != nil && jobCtx.Err() == nil {
					j.logger.Err(err).Str("func", "clientSyncJob.Start").Msg("background sync failed")
				}
			}
		}
	}()
}

func (j *clientSyncJob) syncOnce(ctx context.Context) error {
	backoff := retry.WithMaxRetries(j.retries, retry.NewExponential(syncRetryBackoff))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if j.auth != nil {
			if err := j.auth.EnsureToken(ctx); err != nil {
				return retryable(err)
			}
		}
		// queued pushes go first so the pull sees them on the relay
		err := j.appState.Flush(ctx)
		if err == nil {
			err = j.appState.Pull(ctx)
		}
		if errors.Is(err, adapter.ErrUnauthorized) && j.auth != nil {
			if _, regErr := j.auth.Register(ctx); regErr != nil {
				return regErr
			}
		}
		return retryable(err)
	})
}

// retryable marks errors worth another attempt within the same tick: the
// relay was unreachable, or the token was rejected and has been renewed.
func retryable(err error) error {
	if errors.Is(err, adapter.ErrTransport) || errors.Is(err, adapter.ErrUnauthorized) {
		return retry.RetryableError(err)
	}
	return err
}

// Stop implements ClientSyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
