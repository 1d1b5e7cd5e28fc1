package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nde-labs/campusecho/internal/ports"
)

// Event types drained from the outbox into the broker.
const (
	eventPostStatusChanged = "post.status_changed"
	eventPostQuarantined   = "post.quarantined"
	eventPostRemoved       = "post.removed"
	eventPostIngested      = "post.ingested"
	eventReportValidated   = "report.validated"
	eventReportRejected    = "report.rejected"
	eventTrustAdjusted     = "user.trust_adjusted"
)

func (s *Service) enqueueEvent(ctx context.Context, outbox ports.OutboxRepository, eventType, partitionKey string, payload any, at time.Time) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return outbox.Enqueue(ctx, ports.OutboxEvent{
		EventID:      uuid.New(),
		EventType:    eventType,
		PartitionKey: partitionKey,
		Payload:      raw,
		OccurredAt:   at,
	})
}

func (s *Service) invalidateFeedCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	// Best effort: a stale feed page self-heals at TTL expiry.
	_ = s.cache.Delete(ctx, feedCacheKey)
}

const feedCacheKey = "campusecho:feed:published"
