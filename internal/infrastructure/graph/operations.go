package graph

import (
	"context"

	"github.com/openmarket/econbridge/internal/domain/bridge"
	"github.com/shopspring/decimal"
)

const createAgentMutation = `
mutation CreateAgent($name: String!, $note: String) {
  createPerson(person: { name: $name, note: $note }) {
    agent { id }
  }
}`

const createResourceSpecificationMutation = `
mutation CreateResourceSpecification($name: String!, $note: String) {
  createResourceSpecification(resourceSpecification: { name: $name, note: $note }) {
    resourceSpecification { id }
  }
}`

const createProposalMutation = `
mutation CreateProposal($name: String!, $note: String) {
  createProposal(proposal: { name: $name, note: $note }) {
    proposal { id }
  }
}`

const createIntentMutation = `
mutation CreateIntent($intent: IntentCreateParams!) {
  createIntent(intent: $intent) {
    intent { id }
  }
}`

const proposeIntentMutation = `
mutation ProposeIntent($publishedIn: ID!, $publishes: ID!, $reciprocal: Boolean) {
  proposeIntent(publishedIn: $publishedIn, publishes: $publishes, reciprocal: $reciprocal) {
    proposedIntent { id }
  }
}`

const listProposalsQuery = `
query ListProposals {
  proposals {
    edges { node { id name note } }
  }
}`

const listIntentsQuery = `
query ListIntents {
  intents {
    edges { node { id action note } }
  }
}`

type idPayload struct {
	ID string `json:"id"`
}

// CreateAgent mirrors an approved user or organization as an external agent
func (c *Client) CreateAgent(ctx context.Context, name, note string) (string, error) {
	var result struct {
		CreatePerson struct {
			Agent idPayload `json:"agent"`
		} `json:"createPerson"`
	}
	err := c.execute(ctx, createAgentMutation, map[string]any{
		"name": name,
		"note": note,
	}, &result)
	if err != nil {
		return "", err
	}
	return result.CreatePerson.Agent.ID, nil
}

// CreateResourceSpecification mirrors an approved service type or medium of
// exchange
func (c *Client) CreateResourceSpecification(ctx context.Context, name, note string) (string, error) {
	var result struct {
		CreateResourceSpecification struct {
			ResourceSpecification idPayload `json:"resourceSpecification"`
		} `json:"createResourceSpecification"`
	}
	err := c.execute(ctx, createResourceSpecificationMutation, map[string]any{
		"name": name,
		"note": note,
	}, &result)
	if err != nil {
		return "", err
	}
	return result.CreateResourceSpecification.ResourceSpecification.ID, nil
}

// CreateProposal creates the container object for a listing
func (c *Client) CreateProposal(ctx context.Context, name, note string) (string, error) {
	var result struct {
		CreateProposal struct {
			Proposal idPayload `json:"proposal"`
		} `json:"createProposal"`
	}
	err := c.execute(ctx, createProposalMutation, map[string]any{
		"name": name,
		"note": note,
	}, &result)
	if err != nil {
		return "", err
	}
	return result.CreateProposal.Proposal.ID, nil
}

// CreateIntent creates one side of a proposal's exchange
func (c *Client) CreateIntent(ctx context.Context, intent bridge.Intent) (string, error) {
	params := map[string]any{
		"action":             string(intent.Action),
		"resourceConformsTo": intent.ResourceSpecID,
		"note":               intent.Note,
	}
	if intent.Provider != "" {
		params["provider"] = intent.Provider
	}
	if intent.Receiver != "" {
		params["receiver"] = intent.Receiver
	}
	if intent.Quantity != nil {
		params["resourceQuantity"] = quantityParams(*intent.Quantity, intent.Unit)
	}

	var result struct {
		CreateIntent struct {
			Intent idPayload `json:"intent"`
		} `json:"createIntent"`
	}
	err := c.execute(ctx, createIntentMutation, map[string]any{"intent": params}, &result)
	if err != nil {
		return "", err
	}
	return result.CreateIntent.Intent.ID, nil
}

// LinkIntentToProposal publishes an intent inside a proposal
func (c *Client) LinkIntentToProposal(ctx context.Context, proposalID, intentID string, reciprocal bool) error {
	return c.execute(ctx, proposeIntentMutation, map[string]any{
		"publishedIn": proposalID,
		"publishes":   intentID,
		"reciprocal":  reciprocal,
	}, nil)
}

// ListProposals returns all proposals the deployment exposes. The read
// endpoint is optional; its absence degrades to an empty result.
func (c *Client) ListProposals(ctx context.Context) ([]bridge.Proposal, error) {
	var result struct {
		Proposals struct {
			Edges []struct {
				Node struct {
					ID   string `json:"id"`
					Name string `json:"name"`
					Note string `json:"note"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"proposals"`
	}
	if err := c.execute(ctx, listProposalsQuery, nil, &result); err != nil {
		return nil, err
	}

	proposals := make([]bridge.Proposal, 0, len(result.Proposals.Edges))
	for _, e := range result.Proposals.Edges {
		proposals = append(proposals, bridge.Proposal{
			ID:   e.Node.ID,
			Name: e.Node.Name,
			Note: e.Node.Note,
		})
	}
	return proposals, nil
}

// ListIntents returns all intents the deployment exposes. Optional like
// ListProposals.
func (c *Client) ListIntents(ctx context.Context) ([]bridge.Intent, error) {
	var result struct {
		Intents struct {
			Edges []struct {
				Node struct {
					ID     string `json:"id"`
					Action string `json:"action"`
					Note   string `json:"note"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"intents"`
	}
	if err := c.execute(ctx, listIntentsQuery, nil, &result); err != nil {
		return nil, err
	}

	intents := make([]bridge.Intent, 0, len(result.Intents.Edges))
	for _, e := range result.Intents.Edges {
		intents = append(intents, bridge.Intent{
			ID:     e.Node.ID,
			Action: bridge.IntentAction(e.Node.Action),
			Note:   e.Node.Note,
		})
	}
	return intents, nil
}

// quantityParams renders a decimal quantity in the measure shape the graph
// schema expects
func quantityParams(qty decimal.Decimal, unit string) map[string]any {
	m := map[string]any{
		"hasNumericalValue": qty.InexactFloat64(),
	}
	if unit != "" {
		m["hasUnit"] = unit
	}
	return m
}

// Ensure Client implements GraphClient
var _ bridge.GraphClient = (*Client)(nil)
