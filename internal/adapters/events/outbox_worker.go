package events

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nde-labs/campusecho/internal/ports"
)

// OutboxWorker drains the transactional outbox into the broker. Moderation
// and trust events are written to the outbox inside the same transaction as
// the state change they describe; this worker is the asynchronous half of
// that contract.
type OutboxWorker struct {
	logger    *slog.Logger
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
	interval  time.Duration
	batchSize int
}

func NewOutboxWorker(logger *slog.Logger, outbox ports.OutboxRepository, publisher ports.EventPublisher, interval time.Duration, batchSize int) *OutboxWorker {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &OutboxWorker{
		logger: logger, outbox: outbox, publisher: publisher, interval: interval, batchSize: batchSize,
	}
}

func (w *OutboxWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		if err := w.drainOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.ErrorContext(ctx, "outbox drain failed",
				"module", "events.outbox_worker",
				"layer", "adapter",
				"operation", "drain_once",
				"outcome", "failure",
				"error", err,
			)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *OutboxWorker) drainOnce(ctx context.Context) error {
	records, err := w.outbox.FetchUnpublished(ctx, w.batchSize)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	published := 0
	for _, rec := range records {
		if err := w.publisher.Publish(ctx, rec.EventType, rec.Payload, rec.PartitionKey); err != nil {
			// Record the failure and move on; the row stays unpublished and
			// the next drain retries it.
			_ = w.outbox.MarkFailed(ctx, rec.OutboxID, err.Error(), now)
			continue
		}
		_ = w.outbox.MarkPublished(ctx, rec.OutboxID, now)
		published++
	}
	if published > 0 {
		w.logger.DebugContext(ctx, "outbox drained",
			"module", "events.outbox_worker",
			"layer", "adapter",
			"operation", "drain_once",
			"outcome", "success",
			"published", published,
			"fetched", len(records),
		)
	}
	return nil
}
