package directory

import (
	"strings"
	"time"

	"github.com/openmarket/econbridge/internal/domain/shared/valueobject"
)

// Organization represents a group of users acting as one economic agent.
// Like User it is a prerequisite source: approval mirrors it as an external
// Agent, and listings owned by the organization resolve against that agent
// rather than the creating user's.
type Organization struct {
	LocalID     string
	Name        string
	Description string
	Status      valueobject.ApprovalStatus
	MemberIDs   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrganization creates a new organization in pending state
func NewOrganization(localID, name string) (*Organization, error) {
	if strings.TrimSpace(localID) == "" {
		return nil, ErrInvalidLocalID
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	now := time.Now()
	return &Organization{
		LocalID:   localID,
		Name:      name,
		Status:    valueobject.ApprovalStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AddMember records a user as a member. Duplicates are ignored.
func (o *Organization) AddMember(userID string) {
	for _, id := range o.MemberIDs {
		if id == userID {
			return
		}
	}
	o.MemberIDs = append(o.MemberIDs, userID)
	o.UpdatedAt = time.Now()
}

// Approve transitions the organization to approved state and returns the
// resulting domain event
func (o *Organization) Approve() (*OrganizationApprovedEvent, error) {
	if err := o.Status.CanTransition(); err != nil {
		return nil, err
	}
	o.Status = valueobject.ApprovalStatusApproved
	o.UpdatedAt = time.Now()
	return NewOrganizationApprovedEvent(o), nil
}

// Reject transitions the organization to rejected state
func (o *Organization) Reject() error {
	if err := o.Status.CanTransition(); err != nil {
		return err
	}
	o.Status = valueobject.ApprovalStatusRejected
	o.UpdatedAt = time.Now()
	return nil
}
