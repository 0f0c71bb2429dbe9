package bridge

import (
	"context"
	"fmt"

	"github.com/openmarket/econbridge/internal/domain/bridge"
	"github.com/openmarket/econbridge/internal/domain/catalog"
	"github.com/openmarket/econbridge/internal/domain/directory"
	"github.com/openmarket/econbridge/internal/domain/shared"
	"go.uber.org/zap"
)

// PrerequisiteApprovedHandler feeds the four prerequisite approval events
// into the reconciliation engine, which mirrors the approved entity and
// replays both pending sets
type PrerequisiteApprovedHandler struct {
	reconciler *Reconciler
	logger     *zap.Logger
}

// NewPrerequisiteApprovedHandler creates a new handler for approval events
func NewPrerequisiteApprovedHandler(reconciler *Reconciler, logger *zap.Logger) *PrerequisiteApprovedHandler {
	return &PrerequisiteApprovedHandler{
		reconciler: reconciler,
		logger:     logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *PrerequisiteApprovedHandler) EventTypes() []string {
	return []string{
		directory.EventTypeUserApproved,
		directory.EventTypeOrganizationApproved,
		catalog.EventTypeServiceTypeApproved,
		catalog.EventTypeMediumOfExchangeApproved,
	}
}

// Handle processes a prerequisite approval event
func (h *PrerequisiteApprovedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var (
		kind    bridge.EntityKind
		localID string
		name    string
	)

	switch e := event.(type) {
	case *directory.UserApprovedEvent:
		kind, localID, name = bridge.EntityKindUser, e.UserID, e.Name
	case *directory.OrganizationApprovedEvent:
		kind, localID, name = bridge.EntityKindOrganization, e.OrganizationID, e.Name
	case *catalog.ServiceTypeApprovedEvent:
		kind, localID, name = bridge.EntityKindServiceType, e.ServiceTypeID, e.Name
	case *catalog.MediumOfExchangeApprovedEvent:
		kind, localID, name = bridge.EntityKindMediumOfExchange, e.MediumOfExchangeID, e.Name
	default:
		h.logger.Error("unexpected event type",
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	if err := h.reconciler.OnPrerequisiteApproved(ctx, kind, localID, name); err != nil {
		h.logger.Error("prerequisite mapping failed",
			zap.String("event_type", event.EventType()),
			zap.String("local_id", localID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Ensure PrerequisiteApprovedHandler implements shared.EventHandler
var _ shared.EventHandler = (*PrerequisiteApprovedHandler)(nil)
