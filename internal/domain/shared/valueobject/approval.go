package valueobject

import "github.com/openmarket/econbridge/internal/domain/shared"

// ApprovalStatus is the moderation state of a prerequisite source entity
// (user, organization, service type, medium of exchange). Only approved
// entities may be mirrored into the external economic graph.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// IsValid reports whether the status is one of the known states
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// IsApproved reports whether the entity passed moderation
func (s ApprovalStatus) IsApproved() bool {
	return s == ApprovalStatusApproved
}

// CanTransition guards Approve/Reject: both are single-shot transitions out
// of the pending state.
func (s ApprovalStatus) CanTransition() error {
	if s != ApprovalStatusPending {
		return shared.ErrInvalidState
	}
	return nil
}
