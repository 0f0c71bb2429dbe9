package bridge

import "github.com/openmarket/econbridge/internal/domain/listing"

// EntityKind identifies the kind of local entity behind a mapping or a
// reference annotation. The string values are part of the annotation wire
// format and must not change.
type EntityKind string

const (
	EntityKindUser             EntityKind = "user"
	EntityKindOrganization     EntityKind = "organization"
	EntityKindServiceType      EntityKind = "serviceType"
	EntityKindMediumOfExchange EntityKind = "mediumOfExchange"
	EntityKindProposal         EntityKind = "proposal"
)

// IsValid reports whether the kind is one of the known entity kinds
func (k EntityKind) IsValid() bool {
	switch k {
	case EntityKindUser, EntityKindOrganization, EntityKindServiceType,
		EntityKindMediumOfExchange, EntityKindProposal:
		return true
	}
	return false
}

// IsAgentSource reports whether approval of this kind creates an external Agent
func (k EntityKind) IsAgentSource() bool {
	return k == EntityKindUser || k == EntityKindOrganization
}

// IsResourceSpecSource reports whether approval of this kind creates an
// external ResourceSpecification
func (k EntityKind) IsResourceSpecSource() bool {
	return k == EntityKindServiceType || k == EntityKindMediumOfExchange
}

// AgentKindFor returns the entity kind a listing's agent prerequisite
// resolves against
func AgentKindFor(l *listing.Listing) EntityKind {
	if l.OwnerKind == listing.OwnerKindOrganization {
		return EntityKindOrganization
	}
	return EntityKindUser
}

// MissingCategory names a prerequisite category a listing is still waiting on
type MissingCategory string

const (
	MissingAgent            MissingCategory = "agent"
	MissingServiceType      MissingCategory = "serviceType"
	MissingMediumOfExchange MissingCategory = "mediumOfExchange"
)
