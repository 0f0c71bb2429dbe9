package bridge

import (
	"context"

	"github.com/openmarket/econbridge/internal/domain/listing"
)

// Resolved holds the external identifiers a listing's exchange graph is
// built from: the owner's agent, one resource specification per referenced
// service type, and the medium-of-exchange specification.
type Resolved struct {
	AgentID         string
	ResourceSpecIDs []string
	MediumSpecID    string
}

// Resolver looks up the external prerequisites of a listing in the mapping
// store. It performs no external calls and has no side effects.
type Resolver struct {
	mappings MappingStore
}

// NewResolver creates a resolver reading from the given mapping store
func NewResolver(mappings MappingStore) *Resolver {
	return &Resolver{mappings: mappings}
}

// Resolve returns the full prerequisite set for the listing, or an
// UnsatisfiedError naming every missing category so the caller can diagnose
// without re-resolving. Which agent is required (user vs. organization) is
// carried on the listing snapshot, not decided here.
func (r *Resolver) Resolve(ctx context.Context, l *listing.Listing) (*Resolved, error) {
	var missing []MissingCategory
	resolved := &Resolved{}

	agentID, ok, err := r.mappings.Get(ctx, AgentKindFor(l), l.OwnerID())
	if err != nil {
		return nil, err
	}
	if !ok {
		missing = append(missing, MissingAgent)
	} else {
		resolved.AgentID = agentID
	}

	specsMissing := false
	for _, stID := range l.ServiceTypeIDs {
		specID, ok, err := r.mappings.Get(ctx, EntityKindServiceType, stID)
		if err != nil {
			return nil, err
		}
		if !ok {
			specsMissing = true
			continue
		}
		resolved.ResourceSpecIDs = append(resolved.ResourceSpecIDs, specID)
	}
	// A single unmapped service type defers the whole listing: the exchange
	// graph must cover every referenced service type or none.
	if specsMissing {
		missing = append(missing, MissingServiceType)
	}

	mediumID, ok, err := r.mappings.Get(ctx, EntityKindMediumOfExchange, l.MediumOfExchangeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		missing = append(missing, MissingMediumOfExchange)
	} else {
		resolved.MediumSpecID = mediumID
	}

	if len(missing) > 0 {
		return nil, &UnsatisfiedError{Missing: missing}
	}
	return resolved, nil
}
