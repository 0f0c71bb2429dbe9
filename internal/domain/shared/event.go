package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents an event that occurred in the domain
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() string
	AggregateType() string
	// DeliveryID identifies the inbound delivery that produced this event,
	// when the transport provided one. Redeliveries of the same webhook
	// carry the same delivery ID while minting fresh event IDs; empty when
	// the sender did not identify the delivery.
	DeliveryID() string
}

// DeliveryTagged is implemented by events whose delivery identity can be
// stamped by the transport that received them
type DeliveryTagged interface {
	SetDeliveryID(id string)
}

// BaseDomainEvent provides common fields for all domain events.
// Aggregate IDs are opaque strings because local entities are identified by
// content-addressed hashes, not generated UUIDs.
type BaseDomainEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	AggID     string    `json:"aggregate_id"`
	AggType   string    `json:"aggregate_type"`
	Delivery  string    `json:"delivery_id,omitempty"`
}

// EventID returns the unique event identifier
func (e *BaseDomainEvent) EventID() uuid.UUID {
	return e.ID
}

// EventType returns the type of the event
func (e *BaseDomainEvent) EventType() string {
	return e.Type
}

// OccurredAt returns when the event occurred
func (e *BaseDomainEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID returns the ID of the aggregate that produced this event
func (e *BaseDomainEvent) AggregateID() string {
	return e.AggID
}

// AggregateType returns the type of the aggregate
func (e *BaseDomainEvent) AggregateType() string {
	return e.AggType
}

// DeliveryID returns the inbound delivery identifier, empty when unset
func (e *BaseDomainEvent) DeliveryID() string {
	return e.Delivery
}

// SetDeliveryID stamps the event with the identity of the delivery that
// produced it
func (e *BaseDomainEvent) SetDeliveryID(id string) {
	e.Delivery = id
}

// NewBaseDomainEvent creates a new base domain event
func NewBaseDomainEvent(eventType, aggType, aggID string) BaseDomainEvent {
	return BaseDomainEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now(),
		AggID:     aggID,
		AggType:   aggType,
	}
}
