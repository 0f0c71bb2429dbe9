package directory

import (
	"strings"
	"time"

	"github.com/openmarket/econbridge/internal/domain/shared/valueobject"
)

// User represents a community member profile. It is a prerequisite source:
// once approved it is mirrored into the external economic graph as an Agent.
// The local ID is the content-addressed hash of the profile entry and never
// changes across revisions.
type User struct {
	LocalID   string
	Name      string
	Nickname  string
	Email     string
	Status    valueobject.ApprovalStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a new user profile in pending state
func NewUser(localID, name string) (*User, error) {
	if strings.TrimSpace(localID) == "" {
		return nil, ErrInvalidLocalID
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	now := time.Now()
	return &User{
		LocalID:   localID,
		Name:      name,
		Status:    valueobject.ApprovalStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// DisplayName returns the name used for the external Agent mirror
func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Name
}

// Approve transitions the user to approved state and returns the resulting
// domain event. Only pending users can be approved.
func (u *User) Approve() (*UserApprovedEvent, error) {
	if err := u.Status.CanTransition(); err != nil {
		return nil, err
	}
	u.Status = valueobject.ApprovalStatusApproved
	u.UpdatedAt = time.Now()
	return NewUserApprovedEvent(u), nil
}

// Reject transitions the user to rejected state
func (u *User) Reject() error {
	if err := u.Status.CanTransition(); err != nil {
		return err
	}
	u.Status = valueobject.ApprovalStatusRejected
	u.UpdatedAt = time.Now()
	return nil
}
