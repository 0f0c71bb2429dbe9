package directory

import "github.com/openmarket/econbridge/internal/domain/shared"

// Aggregate type constants
const (
	AggregateTypeUser         = "User"
	AggregateTypeOrganization = "Organization"
)

// Event type constants
const (
	EventTypeUserApproved         = "user.approved"
	EventTypeOrganizationApproved = "organization.approved"
)

// UserApprovedEvent is published when a user profile passes moderation
type UserApprovedEvent struct {
	shared.BaseDomainEvent
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// NewUserApprovedEvent creates a new UserApprovedEvent
func NewUserApprovedEvent(user *User) *UserApprovedEvent {
	return &UserApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserApproved, AggregateTypeUser, user.LocalID),
		UserID:          user.LocalID,
		Name:            user.DisplayName(),
	}
}

// OrganizationApprovedEvent is published when an organization passes moderation
type OrganizationApprovedEvent struct {
	shared.BaseDomainEvent
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
}

// NewOrganizationApprovedEvent creates a new OrganizationApprovedEvent
func NewOrganizationApprovedEvent(org *Organization) *OrganizationApprovedEvent {
	return &OrganizationApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrganizationApproved, AggregateTypeOrganization, org.LocalID),
		OrganizationID:  org.LocalID,
		Name:            org.Name,
	}
}
