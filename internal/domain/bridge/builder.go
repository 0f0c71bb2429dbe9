package bridge

import (
	"fmt"
	"strings"

	"github.com/openmarket/econbridge/internal/domain/listing"
)

// ExchangeGraph is the object graph submitted to the external service for
// one listing: one proposal, one primary intent per service type, and
// exactly one reciprocal intent for the payment side.
type ExchangeGraph struct {
	Proposal         Proposal
	PrimaryIntents   []Intent
	ReciprocalIntent Intent
}

// BuildExchangeGraph constructs the external object graph for a listing and
// its resolved prerequisites. Pure and deterministic: no lookups, no side
// effects.
//
// Role assignment encodes the exchange semantics. For a request the owner
// receives the service and provides the payment; for an offer the owner
// provides the service and receives the payment. Swapping these produces a
// graph that type-checks but states the opposite economics.
func BuildExchangeGraph(l *listing.Listing, resolved *Resolved) (*ExchangeGraph, error) {
	if strings.TrimSpace(l.Title) == "" {
		return nil, fmt.Errorf("%w: empty title", ErrInvalidListing)
	}
	if len(resolved.ResourceSpecIDs) == 0 {
		return nil, fmt.Errorf("%w: no service-type resource specifications resolved", ErrInvalidListing)
	}

	note, err := EncodeRef(EntityKindProposal, l.LocalID)
	if err != nil {
		return nil, err
	}

	graph := &ExchangeGraph{
		Proposal: Proposal{
			Name: proposalName(l),
			Note: note,
		},
	}

	ownerProvides := l.Kind == listing.KindOffer

	for _, specID := range resolved.ResourceSpecIDs {
		intent := Intent{
			Action:         ActionTransfer,
			ResourceSpecID: specID,
			Quantity:       l.Quantity,
			Unit:           l.Unit,
			Note:           note,
		}
		if ownerProvides {
			intent.Provider = resolved.AgentID
		} else {
			intent.Receiver = resolved.AgentID
		}
		graph.PrimaryIntents = append(graph.PrimaryIntents, intent)
	}

	reciprocal := Intent{
		Action:         ActionTransfer,
		ResourceSpecID: resolved.MediumSpecID,
		Note:           note,
		Reciprocal:     true,
	}
	if ownerProvides {
		reciprocal.Receiver = resolved.AgentID
	} else {
		reciprocal.Provider = resolved.AgentID
	}
	graph.ReciprocalIntent = reciprocal

	return graph, nil
}

// proposalName renders the display name of the external proposal
func proposalName(l *listing.Listing) string {
	if l.Kind == listing.KindOffer {
		return "Offer: " + l.Title
	}
	return "Request: " + l.Title
}
