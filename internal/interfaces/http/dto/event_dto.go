package dto

// ApproveUserRequest is the payload announcing an approved user profile
type ApproveUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Nickname string `json:"nickname"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// ApproveOrganizationRequest is the payload announcing an approved
// organization
type ApproveOrganizationRequest struct {
	Name string `json:"name" binding:"required"`
}

// ApproveServiceTypeRequest is the payload announcing an approved service
// type
type ApproveServiceTypeRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// ApproveMediumOfExchangeRequest is the payload announcing an approved
// medium of exchange
type ApproveMediumOfExchangeRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind" binding:"omitempty,oneof=currency other"`
}

// CreateListingRequest is the payload announcing a newly created request or
// offer listing
type CreateListingRequest struct {
	LocalID            string   `json:"local_id" binding:"required"`
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description" binding:"required"`
	ServiceTypeIDs     []string `json:"service_type_ids" binding:"required,min=1"`
	MediumOfExchangeID string   `json:"medium_of_exchange_id" binding:"required"`
	CreatorID          string   `json:"creator_id" binding:"required"`
	OrganizationID     string   `json:"organization_id"`
	Quantity           string   `json:"quantity" binding:"omitempty,decimal"`
	Unit               string   `json:"unit"`
}

// LocalIDRequest represents a request with a local ID path parameter
type LocalIDRequest struct {
	ID string `uri:"id" binding:"required"`
}
