package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/openmarket/econbridge/internal/domain/catalog"
	"github.com/openmarket/econbridge/internal/domain/directory"
	"github.com/openmarket/econbridge/internal/domain/listing"
	"github.com/openmarket/econbridge/internal/domain/shared"
	"github.com/openmarket/econbridge/internal/interfaces/http/dto"
	"github.com/openmarket/econbridge/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MarketplaceHandler receives webhook notifications from the local
// marketplace and translates them into domain events on the bus. The
// bridge's reconciliation logic runs as subscribers of those events.
type MarketplaceHandler struct {
	BaseHandler
	eventBus shared.EventBus
	logger   *zap.Logger
}

// NewMarketplaceHandler creates a new MarketplaceHandler
func NewMarketplaceHandler(eventBus shared.EventBus, logger *zap.Logger) *MarketplaceHandler {
	return &MarketplaceHandler{
		eventBus: eventBus,
		logger:   logger.Named("marketplace_handler"),
	}
}

// RegisterRoutes registers the webhook routes
func (h *MarketplaceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.POST("/users/:id/approved", h.UserApproved)
		events.POST("/organizations/:id/approved", h.OrganizationApproved)
		events.POST("/service-types/:id/approved", h.ServiceTypeApproved)
		events.POST("/mediums-of-exchange/:id/approved", h.MediumOfExchangeApproved)
		events.POST("/requests", h.RequestCreated)
		events.POST("/offers", h.OfferCreated)
	}
}

// UserApproved handles a user moderation approval notification
func (h *MarketplaceHandler) UserApproved(c *gin.Context) {
	var uri dto.LocalIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var req dto.ApproveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	user, err := directory.NewUser(uri.ID, req.Name)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	user.Nickname = req.Nickname
	user.Email = req.Email

	event, err := user.Approve()
	if err != nil {
		h.Conflict(c, err.Error())
		return
	}
	h.publish(c, event)
}

// OrganizationApproved handles an organization moderation approval
// notification
func (h *MarketplaceHandler) OrganizationApproved(c *gin.Context) {
	var uri dto.LocalIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var req dto.ApproveOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	org, err := directory.NewOrganization(uri.ID, req.Name)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	event, err := org.Approve()
	if err != nil {
		h.Conflict(c, err.Error())
		return
	}
	h.publish(c, event)
}

// ServiceTypeApproved handles a service type approval notification
func (h *MarketplaceHandler) ServiceTypeApproved(c *gin.Context) {
	var uri dto.LocalIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var req dto.ApproveServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	st, err := catalog.NewServiceType(uri.ID, req.Name)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	st.Description = req.Description
	st.Tags = req.Tags

	event, err := st.Approve()
	if err != nil {
		h.Conflict(c, err.Error())
		return
	}
	h.publish(c, event)
}

// MediumOfExchangeApproved handles a medium of exchange approval
// notification
func (h *MarketplaceHandler) MediumOfExchangeApproved(c *gin.Context) {
	var uri dto.LocalIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var req dto.ApproveMediumOfExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	medium, err := catalog.NewMediumOfExchange(uri.ID, req.Code, req.Name)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.Kind != "" {
		medium.Kind = catalog.ExchangeKind(req.Kind)
	}

	event, err := medium.Approve()
	if err != nil {
		h.Conflict(c, err.Error())
		return
	}
	h.publish(c, event)
}

// RequestCreated handles a request listing creation notification
func (h *MarketplaceHandler) RequestCreated(c *gin.Context) {
	h.listingCreated(c, listing.KindRequest)
}

// OfferCreated handles an offer listing creation notification
func (h *MarketplaceHandler) OfferCreated(c *gin.Context) {
	h.listingCreated(c, listing.KindOffer)
}

func (h *MarketplaceHandler) listingCreated(c *gin.Context, kind listing.Kind) {
	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	var l *listing.Listing
	var err error
	if kind == listing.KindRequest {
		l, err = listing.NewRequest(req.LocalID, req.Title, req.Description, req.CreatorID, req.ServiceTypeIDs, req.MediumOfExchangeID)
	} else {
		l, err = listing.NewOffer(req.LocalID, req.Title, req.Description, req.CreatorID, req.ServiceTypeIDs, req.MediumOfExchangeID)
	}
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if req.OrganizationID != "" {
		if err := l.AssignToOrganization(req.OrganizationID); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}
	if req.Quantity != "" {
		qty, err := decimal.NewFromString(req.Quantity)
		if err != nil {
			h.BadRequest(c, "quantity must be a decimal number")
			return
		}
		l.WithQuantity(qty, req.Unit)
	}

	h.publish(c, listing.NewCreatedEvent(l))
}

// webhookDeliveryID extracts the marketplace's delivery identity from the
// request, empty when the sender did not identify the delivery
func webhookDeliveryID(c *gin.Context) string {
	if id := c.GetHeader("X-Delivery-ID"); id != "" {
		return id
	}
	return c.GetHeader("Idempotency-Key")
}

// publish pushes the event onto the bus and reports acceptance. Handler
// failures surface as 500 so the marketplace retries its webhook delivery.
// The delivery ID is stamped on the event so a retried delivery
// deduplicates downstream instead of re-running a full replay pass.
func (h *MarketplaceHandler) publish(c *gin.Context, event shared.DomainEvent) {
	if id := webhookDeliveryID(c); id != "" {
		if tagged, ok := event.(shared.DeliveryTagged); ok {
			tagged.SetDeliveryID(id)
		}
	}
	if err := h.eventBus.Publish(c.Request.Context(), event); err != nil {
		h.logger.Error("event processing failed",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID()),
			zap.Error(err),
		)
		h.InternalError(c, "event processing failed")
		return
	}
	h.Accepted(c, gin.H{"event_id": event.EventID().String()})
}
