package catalog

import (
	"strings"
	"time"

	"github.com/openmarket/econbridge/internal/domain/shared"
	"github.com/openmarket/econbridge/internal/domain/shared/valueobject"
)

// Validation errors for catalog entities
var (
	ErrInvalidLocalID = shared.NewDomainError("INVALID_LOCAL_ID", "Local ID cannot be empty")
	ErrInvalidName    = shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	ErrInvalidCode    = shared.NewDomainError("INVALID_CODE", "Code cannot be empty")
)

// ServiceType categorizes the kind of work a listing asks for or offers.
// Service types are community-curated: anyone can suggest one, an
// administrator approves or rejects it. Approval mirrors the service type
// into the external graph as a ResourceSpecification.
type ServiceType struct {
	LocalID     string
	Name        string
	Description string
	Tags        []string
	Status      valueobject.ApprovalStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewServiceType creates a new service type in pending state
func NewServiceType(localID, name string) (*ServiceType, error) {
	if strings.TrimSpace(localID) == "" {
		return nil, ErrInvalidLocalID
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	now := time.Now()
	return &ServiceType{
		LocalID:   localID,
		Name:      name,
		Status:    valueobject.ApprovalStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Approve transitions the service type to approved state and returns the
// resulting domain event
func (s *ServiceType) Approve() (*ServiceTypeApprovedEvent, error) {
	if err := s.Status.CanTransition(); err != nil {
		return nil, err
	}
	s.Status = valueobject.ApprovalStatusApproved
	s.UpdatedAt = time.Now()
	return NewServiceTypeApprovedEvent(s), nil
}

// Reject transitions the service type to rejected state
func (s *ServiceType) Reject() error {
	if err := s.Status.CanTransition(); err != nil {
		return err
	}
	s.Status = valueobject.ApprovalStatusRejected
	s.UpdatedAt = time.Now()
	return nil
}
