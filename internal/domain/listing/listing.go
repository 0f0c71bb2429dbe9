package listing

import (
	"strings"
	"time"

	"github.com/openmarket/econbridge/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Kind distinguishes the two listing variants
type Kind string

const (
	KindRequest Kind = "request"
	KindOffer   Kind = "offer"
)

// IsValid reports whether the kind is request or offer
func (k Kind) IsValid() bool {
	return k == KindRequest || k == KindOffer
}

// OwnerKind selects which prerequisite agent a listing resolves against:
// the creating user or the owning organization
type OwnerKind string

const (
	OwnerKindUser         OwnerKind = "user"
	OwnerKindOrganization OwnerKind = "organization"
)

// Validation errors for listings
var (
	ErrInvalidLocalID      = shared.NewDomainError("INVALID_LOCAL_ID", "Local ID cannot be empty")
	ErrEmptyTitle          = shared.NewDomainError("EMPTY_TITLE", "Listing title cannot be empty")
	ErrEmptyDescription    = shared.NewDomainError("EMPTY_DESCRIPTION", "Listing description cannot be empty")
	ErrNoServiceTypes      = shared.NewDomainError("NO_SERVICE_TYPES", "Listing must reference at least one service type")
	ErrNoMediumOfExchange  = shared.NewDomainError("NO_MEDIUM_OF_EXCHANGE", "Listing must reference a medium of exchange")
	ErrMissingOrganization = shared.NewDomainError("MISSING_ORGANIZATION", "Organization-owned listing must reference an organization")
)

// Listing is an immutable snapshot of a request or offer as carried on
// domain events and in the pending set. LocalID is the content-addressed
// hash of the original entry; RevisionID points at the latest revision and
// may change without retriggering mapping.
type Listing struct {
	Kind               Kind
	LocalID            string
	RevisionID         string
	Title              string
	Description        string
	ServiceTypeIDs     []string
	MediumOfExchangeID string
	CreatorID          string
	OrganizationID     string
	OwnerKind          OwnerKind
	Quantity           *decimal.Decimal
	Unit               string
	CreatedAt          time.Time
}

// NewRequest creates a request listing snapshot owned by its creating user
func NewRequest(localID, title, description, creatorID string, serviceTypeIDs []string, mediumOfExchangeID string) (*Listing, error) {
	return newListing(KindRequest, localID, title, description, creatorID, serviceTypeIDs, mediumOfExchangeID)
}

// NewOffer creates an offer listing snapshot owned by its creating user
func NewOffer(localID, title, description, creatorID string, serviceTypeIDs []string, mediumOfExchangeID string) (*Listing, error) {
	return newListing(KindOffer, localID, title, description, creatorID, serviceTypeIDs, mediumOfExchangeID)
}

func newListing(kind Kind, localID, title, description, creatorID string, serviceTypeIDs []string, mediumOfExchangeID string) (*Listing, error) {
	l := &Listing{
		Kind:               kind,
		LocalID:            localID,
		RevisionID:         localID,
		Title:              title,
		Description:        description,
		ServiceTypeIDs:     serviceTypeIDs,
		MediumOfExchangeID: mediumOfExchangeID,
		CreatorID:          creatorID,
		OwnerKind:          OwnerKindUser,
		CreatedAt:          time.Now(),
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// AssignToOrganization marks the listing as owned by an organization, so
// prerequisite resolution targets the organization's agent instead of the
// creator's
func (l *Listing) AssignToOrganization(organizationID string) error {
	if strings.TrimSpace(organizationID) == "" {
		return ErrMissingOrganization
	}
	l.OrganizationID = organizationID
	l.OwnerKind = OwnerKindOrganization
	return nil
}

// WithQuantity sets an optional quantity for the exchanged service
func (l *Listing) WithQuantity(qty decimal.Decimal, unit string) *Listing {
	l.Quantity = &qty
	l.Unit = unit
	return l
}

// OwnerID returns the local ID the agent prerequisite resolves against
func (l *Listing) OwnerID() string {
	if l.OwnerKind == OwnerKindOrganization {
		return l.OrganizationID
	}
	return l.CreatorID
}

// Validate checks the snapshot against the same rules the local store
// enforces on entry creation
func (l *Listing) Validate() error {
	if !l.Kind.IsValid() {
		return shared.ErrInvalidInput
	}
	if strings.TrimSpace(l.LocalID) == "" {
		return ErrInvalidLocalID
	}
	if strings.TrimSpace(l.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(l.Description) == "" {
		return ErrEmptyDescription
	}
	if len(l.ServiceTypeIDs) == 0 {
		return ErrNoServiceTypes
	}
	if strings.TrimSpace(l.MediumOfExchangeID) == "" {
		return ErrNoMediumOfExchange
	}
	if l.OwnerKind == OwnerKindOrganization && strings.TrimSpace(l.OrganizationID) == "" {
		return ErrMissingOrganization
	}
	return nil
}
