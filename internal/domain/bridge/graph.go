package bridge

import (
	"context"

	"github.com/shopspring/decimal"
)

// IntentAction is the economic action an intent describes in the external
// ontology
type IntentAction string

// ActionTransfer is the action used for both service and payment intents
const ActionTransfer IntentAction = "transfer"

// Agent mirrors an approved user or organization in the external graph
type Agent struct {
	ID   string
	Name string
	Note string
}

// ResourceSpecification mirrors an approved service type or medium of
// exchange in the external graph
type ResourceSpecification struct {
	ID   string
	Name string
	Note string
}

// Proposal is the container object representing a listing in the external
// graph. Its note carries the reference annotation of the listing.
type Proposal struct {
	ID   string
	Name string
	Note string
}

// Intent is one side of a proposal's exchange: the primary intent describes
// the service being exchanged, the reciprocal intent the payment. Provider
// and Receiver are mutually exclusive per intent.
type Intent struct {
	ID             string
	Action         IntentAction
	Provider       string
	Receiver       string
	ResourceSpecID string
	Quantity       *decimal.Decimal
	Unit           string
	Note           string
	Reciprocal     bool
}

// GraphClient is the port to the external economic-graph RPC service. All
// calls may block on network I/O and honor context cancellation.
//
// ListProposals and ListIntents are optional capabilities: a deployment
// that lacks the read endpoints yields ErrCapabilityUnavailable, which
// callers must degrade to an empty result, never treat as an engine fault.
type GraphClient interface {
	CreateAgent(ctx context.Context, name, note string) (string, error)
	CreateResourceSpecification(ctx context.Context, name, note string) (string, error)
	CreateProposal(ctx context.Context, name, note string) (string, error)
	CreateIntent(ctx context.Context, intent Intent) (string, error)
	LinkIntentToProposal(ctx context.Context, proposalID, intentID string, reciprocal bool) error

	ListProposals(ctx context.Context) ([]Proposal, error)
	ListIntents(ctx context.Context) ([]Intent, error)
}
