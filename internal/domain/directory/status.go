package directory

import "github.com/openmarket/econbridge/internal/domain/shared"

// Validation errors for directory entities
var (
	ErrInvalidLocalID = shared.NewDomainError("INVALID_LOCAL_ID", "Local ID cannot be empty")
	ErrInvalidName    = shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
)
