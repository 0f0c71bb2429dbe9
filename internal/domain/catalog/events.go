package catalog

import "github.com/openmarket/econbridge/internal/domain/shared"

// Aggregate type constants
const (
	AggregateTypeServiceType      = "ServiceType"
	AggregateTypeMediumOfExchange = "MediumOfExchange"
)

// Event type constants
const (
	EventTypeServiceTypeApproved      = "serviceType.approved"
	EventTypeMediumOfExchangeApproved = "mediumOfExchange.approved"
)

// ServiceTypeApprovedEvent is published when a service type passes moderation
type ServiceTypeApprovedEvent struct {
	shared.BaseDomainEvent
	ServiceTypeID string `json:"service_type_id"`
	Name          string `json:"name"`
}

// NewServiceTypeApprovedEvent creates a new ServiceTypeApprovedEvent
func NewServiceTypeApprovedEvent(st *ServiceType) *ServiceTypeApprovedEvent {
	return &ServiceTypeApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServiceTypeApproved, AggregateTypeServiceType, st.LocalID),
		ServiceTypeID:   st.LocalID,
		Name:            st.Name,
	}
}

// MediumOfExchangeApprovedEvent is published when a medium of exchange passes
// moderation
type MediumOfExchangeApprovedEvent struct {
	shared.BaseDomainEvent
	MediumOfExchangeID string `json:"medium_of_exchange_id"`
	Code               string `json:"code"`
	Name               string `json:"name"`
}

// NewMediumOfExchangeApprovedEvent creates a new MediumOfExchangeApprovedEvent
func NewMediumOfExchangeApprovedEvent(m *MediumOfExchange) *MediumOfExchangeApprovedEvent {
	return &MediumOfExchangeApprovedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeMediumOfExchangeApproved, AggregateTypeMediumOfExchange, m.LocalID),
		MediumOfExchangeID: m.LocalID,
		Code:               m.Code,
		Name:               m.Name,
	}
}
