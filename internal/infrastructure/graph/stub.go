package graph

import (
	"context"
	"fmt"
	"sync"

	"github.com/openmarket/econbridge/internal/domain/bridge"
)

// StubGraphClient is an in-memory implementation of bridge.GraphClient.
// It assigns sequential identifiers and records everything it creates.
// Use this for development until a real graph endpoint is configured,
// and in tests that need to inspect submitted objects.
type StubGraphClient struct {
	mu sync.Mutex

	nextID    int
	agents    map[string]bridge.Agent
	specs     map[string]bridge.ResourceSpecification
	proposals map[string]bridge.Proposal
	intents   map[string]bridge.Intent
	links     map[string][]string

	// ReadsAvailable controls whether the list queries are exposed.
	// When false they fail with bridge.ErrCapabilityUnavailable, which
	// matches deployments that only accept writes.
	ReadsAvailable bool
}

// NewStubGraphClient creates a StubGraphClient with read queries enabled
func NewStubGraphClient() *StubGraphClient {
	return &StubGraphClient{
		agents:         make(map[string]bridge.Agent),
		specs:          make(map[string]bridge.ResourceSpecification),
		proposals:      make(map[string]bridge.Proposal),
		intents:        make(map[string]bridge.Intent),
		links:          make(map[string][]string),
		ReadsAvailable: true,
	}
}

// Ensure StubGraphClient implements GraphClient
var _ bridge.GraphClient = (*StubGraphClient)(nil)

func (s *StubGraphClient) allocate(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *StubGraphClient) CreateAgent(ctx context.Context, name, note string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.allocate("agent")
	s.agents[id] = bridge.Agent{ID: id, Name: name, Note: note}
	return id, nil
}

func (s *StubGraphClient) CreateResourceSpecification(ctx context.Context, name, note string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.allocate("spec")
	s.specs[id] = bridge.ResourceSpecification{ID: id, Name: name, Note: note}
	return id, nil
}

func (s *StubGraphClient) CreateProposal(ctx context.Context, name, note string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.allocate("proposal")
	s.proposals[id] = bridge.Proposal{ID: id, Name: name, Note: note}
	return id, nil
}

func (s *StubGraphClient) CreateIntent(ctx context.Context, intent bridge.Intent) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.allocate("intent")
	intent.ID = id
	s.intents[id] = intent
	return id, nil
}

func (s *StubGraphClient) LinkIntentToProposal(ctx context.Context, proposalID, intentID string, reciprocal bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.proposals[proposalID]; !ok {
		return bridge.NewGraphError("proposeIntent", fmt.Errorf("unknown proposal %s", proposalID))
	}
	if _, ok := s.intents[intentID]; !ok {
		return bridge.NewGraphError("proposeIntent", fmt.Errorf("unknown intent %s", intentID))
	}
	s.links[proposalID] = append(s.links[proposalID], intentID)
	return nil
}

func (s *StubGraphClient) ListProposals(ctx context.Context) ([]bridge.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ReadsAvailable {
		return nil, bridge.ErrCapabilityUnavailable
	}
	out := make([]bridge.Proposal, 0, len(s.proposals))
	for _, p := range s.proposals {
		out = append(out, p)
	}
	return out, nil
}

func (s *StubGraphClient) ListIntents(ctx context.Context) ([]bridge.Intent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ReadsAvailable {
		return nil, bridge.ErrCapabilityUnavailable
	}
	out := make([]bridge.Intent, 0, len(s.intents))
	for _, i := range s.intents {
		out = append(out, i)
	}
	return out, nil
}

// LinkedIntents returns the intent identifiers published inside a proposal,
// in link order
func (s *StubGraphClient) LinkedIntents(proposalID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.links[proposalID]))
	copy(out, s.links[proposalID])
	return out
}
