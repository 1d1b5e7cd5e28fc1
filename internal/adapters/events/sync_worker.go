package events

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nde-labs/campusecho/internal/application"
)

// SyncWorker periodically pulls official announcements from the registered
// external providers through the application service.
type SyncWorker struct {
	logger   *slog.Logger
	service  *application.Service
	interval time.Duration
}

func NewSyncWorker(logger *slog.Logger, service *application.Service, interval time.Duration) *SyncWorker {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &SyncWorker{logger: logger, service: service, interval: interval}
}

func (w *SyncWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		result, err := w.service.SyncAllSources(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			w.logger.ErrorContext(ctx, "inbound sync failed",
				"module", "events.sync_worker",
				"layer", "adapter",
				"operation", "sync_all_sources",
				"outcome", "failure",
				"ingested", result.Ingested,
				"error", err,
			)
		} else {
			w.logger.InfoContext(ctx, "inbound sync finished",
				"module", "events.sync_worker",
				"layer", "adapter",
				"operation", "sync_all_sources",
				"outcome", "success",
				"ingested", result.Ingested,
				"skipped", result.Skipped,
			)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
