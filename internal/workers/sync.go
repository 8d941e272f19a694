package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/service"
)

// syncWorker keeps the periodic pull job running for as long as ctx lives.
type syncWorker struct {
	job      service.ClientSyncJob
	interval time.Duration
	logger   *logger.Logger
}

func NewSyncWorker(job service.ClientSyncJob, interval time.Duration, logger *logger.Logger) Worker {
	return &syncWorker{job: job, interval: interval, logger: logger}
}

func (w *syncWorker) Run(ctx context.Context) error {
	w.logger.Info().Dur("interval", w.interval).Msg("background sync started")
	w.job.Start(ctx, w.interval)

	<-ctx.Done()

	w.job.Stop()
	w.logger.Info().Msg("background sync stopped")
	return nil
}
