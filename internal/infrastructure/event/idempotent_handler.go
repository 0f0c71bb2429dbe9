package event

import (
	"context"
	"sync/atomic"

	"github.com/openmarket/econbridge/internal/domain/shared"
	"go.uber.org/zap"
)

// IdempotencyMetrics tracks idempotency-related statistics
type IdempotencyMetrics struct {
	// EventsProcessed is the total number of events processed (first time)
	EventsProcessed atomic.Int64

	// EventsDuplicate is the total number of duplicate events detected
	EventsDuplicate atomic.Int64

	// EventsFailed is the total number of events that failed to process
	EventsFailed atomic.Int64
}

// IdempotentHandler wraps an EventHandler with idempotency checking so each
// event is processed once even when delivered multiple times. Domain events
// from the local store arrive at-least-once; without this wrapper a
// replayed approval event would re-run a full retry pass for nothing.
type IdempotentHandler struct {
	handler shared.EventHandler
	store   shared.IdempotencyStore
	config  shared.IdempotencyConfig
	logger  *zap.Logger
	metrics *IdempotencyMetrics
}

// NewIdempotentHandler creates a new idempotent handler wrapper
func NewIdempotentHandler(
	handler shared.EventHandler,
	store shared.IdempotencyStore,
	logger *zap.Logger,
) *IdempotentHandler {
	return &IdempotentHandler{
		handler: handler,
		store:   store,
		config:  shared.DefaultIdempotencyConfig(),
		logger:  logger,
		metrics: &IdempotencyMetrics{},
	}
}

// WithConfig overrides the idempotency configuration
func (h *IdempotentHandler) WithConfig(config shared.IdempotencyConfig) *IdempotentHandler {
	h.config = config
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// idempotencyKey derives the deduplication key from the event's delivery
// identity rather than its event ID: a redelivered webhook constructs a
// fresh event with a fresh UUID, so the event ID never repeats. The sender's
// delivery ID wins when present; otherwise the event's logical identity
// (type plus aggregate) is stable across redeliveries because approvals and
// creations are single-shot per entity.
func idempotencyKey(event shared.DomainEvent) string {
	if id := event.DeliveryID(); id != "" {
		return "delivery:" + id
	}
	return event.EventType() + ":" + event.AggregateID()
}

// Handle processes the event with idempotency checking
func (h *IdempotentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if !h.config.Enabled {
		return h.handler.Handle(ctx, event)
	}

	key := idempotencyKey(event)

	isNew, err := h.store.MarkProcessed(ctx, key, h.config.TTL)
	if err != nil {
		// Better to risk duplicate processing than to drop events; the
		// reconciler tolerates duplicates anyway.
		h.logger.Warn("failed to check idempotency, processing anyway",
			zap.String("idempotency_key", key),
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	} else if !isNew {
		h.metrics.EventsDuplicate.Add(1)
		h.logger.Debug("duplicate event detected, skipping",
			zap.String("idempotency_key", key),
			zap.String("event_type", event.EventType()),
		)
		return nil
	}

	if err := h.handler.Handle(ctx, event); err != nil {
		h.metrics.EventsFailed.Add(1)
		// The idempotency key is kept on failure; it expires after TTL,
		// allowing retry after a cooldown instead of a tight replay loop.
		return err
	}

	h.metrics.EventsProcessed.Add(1)
	return nil
}

// Metrics returns the metrics for this handler
func (h *IdempotentHandler) Metrics() *IdempotencyMetrics {
	return h.metrics
}

// Ensure IdempotentHandler implements EventHandler
var _ shared.EventHandler = (*IdempotentHandler)(nil)
