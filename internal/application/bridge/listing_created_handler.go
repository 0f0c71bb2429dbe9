package bridge

import (
	"context"
	"fmt"

	"github.com/openmarket/econbridge/internal/domain/listing"
	"github.com/openmarket/econbridge/internal/domain/shared"
	"go.uber.org/zap"
)

// ListingCreatedHandler feeds request.created and offer.created events into
// the reconciliation engine
type ListingCreatedHandler struct {
	reconciler *Reconciler
	logger     *zap.Logger
}

// NewListingCreatedHandler creates a new handler for listing creation events
func NewListingCreatedHandler(reconciler *Reconciler, logger *zap.Logger) *ListingCreatedHandler {
	return &ListingCreatedHandler{
		reconciler: reconciler,
		logger:     logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ListingCreatedHandler) EventTypes() []string {
	return []string{
		listing.EventTypeRequestCreated,
		listing.EventTypeOfferCreated,
	}
}

// Handle processes a listing creation event
func (h *ListingCreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var snapshot listing.Listing
	switch e := event.(type) {
	case *listing.RequestCreatedEvent:
		snapshot = e.Listing
	case *listing.OfferCreatedEvent:
		snapshot = e.Listing
	default:
		h.logger.Error("unexpected event type",
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	if err := h.reconciler.OnListingCreated(ctx, snapshot); err != nil {
		h.logger.Error("listing mapping attempt failed",
			zap.String("event_type", event.EventType()),
			zap.String("local_id", snapshot.LocalID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Ensure ListingCreatedHandler implements shared.EventHandler
var _ shared.EventHandler = (*ListingCreatedHandler)(nil)
