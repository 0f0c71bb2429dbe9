package catalog

import (
	"strings"
	"time"

	"github.com/openmarket/econbridge/internal/domain/shared/valueobject"
)

// ExchangeKind distinguishes currencies from non-currency compensations
// (time banking hours, barter credits and the like)
type ExchangeKind string

const (
	ExchangeKindCurrency ExchangeKind = "currency"
	ExchangeKindOther    ExchangeKind = "other"
)

// MediumOfExchange is the payment side of a listing: the currency or other
// compensation a request is paid in, or an offer expects in return. Suggested
// by users, approved by administrators; approval mirrors it into the external
// graph as a ResourceSpecification.
type MediumOfExchange struct {
	LocalID   string
	Code      string
	Name      string
	Kind      ExchangeKind
	Status    valueobject.ApprovalStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMediumOfExchange creates a new medium of exchange in pending state
func NewMediumOfExchange(localID, code, name string) (*MediumOfExchange, error) {
	if strings.TrimSpace(localID) == "" {
		return nil, ErrInvalidLocalID
	}
	if strings.TrimSpace(code) == "" {
		return nil, ErrInvalidCode
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	now := time.Now()
	return &MediumOfExchange{
		LocalID:   localID,
		Code:      strings.ToUpper(code),
		Name:      name,
		Kind:      ExchangeKindCurrency,
		Status:    valueobject.ApprovalStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Approve transitions the medium of exchange to approved state and returns
// the resulting domain event
func (m *MediumOfExchange) Approve() (*MediumOfExchangeApprovedEvent, error) {
	if err := m.Status.CanTransition(); err != nil {
		return nil, err
	}
	m.Status = valueobject.ApprovalStatusApproved
	m.UpdatedAt = time.Now()
	return NewMediumOfExchangeApprovedEvent(m), nil
}

// Reject transitions the medium of exchange to rejected state
func (m *MediumOfExchange) Reject() error {
	if err := m.Status.CanTransition(); err != nil {
		return err
	}
	m.Status = valueobject.ApprovalStatusRejected
	m.UpdatedAt = time.Now()
	return nil
}
