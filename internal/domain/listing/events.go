package listing

import "github.com/openmarket/econbridge/internal/domain/shared"

// Aggregate type constants
const (
	AggregateTypeRequest = "Request"
	AggregateTypeOffer   = "Offer"
)

// Event type constants
const (
	EventTypeRequestCreated = "request.created"
	EventTypeOfferCreated   = "offer.created"
)

// CreatedEvent carries the full listing snapshot so handlers never need to
// read the local store. RequestCreatedEvent and OfferCreatedEvent share it.
type CreatedEvent struct {
	shared.BaseDomainEvent
	Listing Listing `json:"listing"`
}

// RequestCreatedEvent is published when a request is created locally
type RequestCreatedEvent struct {
	CreatedEvent
}

// NewRequestCreatedEvent creates a new RequestCreatedEvent
func NewRequestCreatedEvent(l *Listing) *RequestCreatedEvent {
	return &RequestCreatedEvent{
		CreatedEvent: CreatedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequestCreated, AggregateTypeRequest, l.LocalID),
			Listing:         *l,
		},
	}
}

// OfferCreatedEvent is published when an offer is created locally
type OfferCreatedEvent struct {
	CreatedEvent
}

// NewOfferCreatedEvent creates a new OfferCreatedEvent
func NewOfferCreatedEvent(l *Listing) *OfferCreatedEvent {
	return &OfferCreatedEvent{
		CreatedEvent: CreatedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfferCreated, AggregateTypeOffer, l.LocalID),
			Listing:         *l,
		},
	}
}

// NewCreatedEvent creates the created event matching the listing's kind
func NewCreatedEvent(l *Listing) shared.DomainEvent {
	if l.Kind == KindOffer {
		return NewOfferCreatedEvent(l)
	}
	return NewRequestCreatedEvent(l)
}
