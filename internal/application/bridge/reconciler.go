package bridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/openmarket/econbridge/internal/domain/bridge"
	"github.com/openmarket/econbridge/internal/domain/listing"
	"go.uber.org/zap"
)

// MappingState is the per-listing state of the reconciliation state machine
type MappingState string

const (
	// StateUnmapped: no proposal exists and the listing is not deferred
	StateUnmapped MappingState = "unmapped"
	// StatePending: mapping was attempted and deferred on missing prerequisites
	StatePending MappingState = "pending"
	// StateMapped: the external proposal exists; terminal
	StateMapped MappingState = "mapped"
)

// Reconciler orchestrates the prerequisite-gated mapping of local entities
// into the external graph: it reacts to listing-created and
// prerequisite-approved events, defers listings whose prerequisites are
// missing, and replays them when a prerequisite becomes available.
//
// All operations touching a single listing's mapping state run inside an
// exclusive per-(kind, local ID) critical section; unrelated listings
// proceed in parallel.
type Reconciler struct {
	mappings bridge.MappingStore
	pending  bridge.PendingSet
	resolver *bridge.Resolver
	client   bridge.GraphClient
	logger   *zap.Logger
	locks    *keyedMutex
}

// NewReconciler creates a reconciliation engine over the given stores and
// graph client
func NewReconciler(
	mappings bridge.MappingStore,
	pending bridge.PendingSet,
	client bridge.GraphClient,
	logger *zap.Logger,
) *Reconciler {
	return &Reconciler{
		mappings: mappings,
		pending:  pending,
		resolver: bridge.NewResolver(mappings),
		client:   client,
		logger:   logger,
		locks:    newKeyedMutex(),
	}
}

// listingKey builds the critical-section key for a listing
func listingKey(kind listing.Kind, localID string) string {
	return string(kind) + "/" + localID
}

// sourceKey builds the critical-section key for a prerequisite source entity
func sourceKey(kind bridge.EntityKind, localID string) string {
	return string(kind) + "/" + localID
}

// OnListingCreated attempts to mirror a listing into the external graph.
// If every prerequisite is mapped, it submits the exchange graph and records
// the proposal mapping; otherwise it enqueues the listing for retry.
//
// Unsatisfied prerequisites are expected steady state and return nil. A
// graph-service failure is returned to the caller and the listing is left
// unmapped, NOT enqueued: masking an integration failure as
// pending-prerequisite noise would hide it from operators.
func (r *Reconciler) OnListingCreated(ctx context.Context, snapshot listing.Listing) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	key := listingKey(snapshot.Kind, snapshot.LocalID)
	r.locks.Lock(key)
	defer r.locks.Unlock(key)

	// Duplicate event or concurrent retry already mapped it.
	if _, ok, err := r.mappings.Get(ctx, bridge.EntityKindProposal, snapshot.LocalID); err != nil {
		return err
	} else if ok {
		r.logger.Debug("listing already mapped, skipping",
			zap.String("kind", string(snapshot.Kind)),
			zap.String("local_id", snapshot.LocalID),
		)
		return r.pending.Dequeue(ctx, snapshot.Kind, snapshot.LocalID)
	}

	resolved, err := r.resolver.Resolve(ctx, &snapshot)
	if err != nil {
		var unsatisfied *bridge.UnsatisfiedError
		if errors.As(err, &unsatisfied) {
			r.logger.Debug("prerequisites unsatisfied, deferring listing",
				zap.String("kind", string(snapshot.Kind)),
				zap.String("local_id", snapshot.LocalID),
				zap.Any("missing", unsatisfied.Missing),
			)
			return r.pending.Enqueue(ctx, snapshot.Kind, snapshot.LocalID, snapshot)
		}
		return err
	}

	graph, err := bridge.BuildExchangeGraph(&snapshot, resolved)
	if err != nil {
		return err
	}

	proposalID, err := r.submit(ctx, graph)
	if err != nil {
		r.logger.Error("exchange graph submission failed",
			zap.String("kind", string(snapshot.Kind)),
			zap.String("local_id", snapshot.LocalID),
			zap.Error(err),
		)
		return err
	}

	if err := r.mappings.Put(ctx, bridge.EntityKindProposal, snapshot.LocalID, proposalID); err != nil {
		return err
	}
	if err := r.pending.Dequeue(ctx, snapshot.Kind, snapshot.LocalID); err != nil {
		return err
	}

	r.logger.Info("listing mapped to external proposal",
		zap.String("kind", string(snapshot.Kind)),
		zap.String("local_id", snapshot.LocalID),
		zap.String("proposal_id", proposalID),
	)
	return nil
}

// submit executes the ordered create/link sequence for one exchange graph.
// Any failure mid-sequence fails the whole attempt: no mapping is recorded,
// so a later retry re-runs the sequence from the start.
func (r *Reconciler) submit(ctx context.Context, graph *bridge.ExchangeGraph) (string, error) {
	proposalID, err := r.client.CreateProposal(ctx, graph.Proposal.Name, graph.Proposal.Note)
	if err != nil {
		return "", bridge.NewGraphError("createProposal", err)
	}

	intents := make([]bridge.Intent, 0, len(graph.PrimaryIntents)+1)
	intents = append(intents, graph.PrimaryIntents...)
	intents = append(intents, graph.ReciprocalIntent)

	intentIDs := make([]string, len(intents))
	for i, intent := range intents {
		id, err := r.client.CreateIntent(ctx, intent)
		if err != nil {
			return "", bridge.NewGraphError("createIntent", err)
		}
		intentIDs[i] = id
	}

	for i, intent := range intents {
		if err := r.client.LinkIntentToProposal(ctx, proposalID, intentIDs[i], intent.Reciprocal); err != nil {
			return "", bridge.NewGraphError("linkIntentToProposal", err)
		}
	}

	return proposalID, nil
}

// OnPrerequisiteApproved mirrors an approved prerequisite source entity as
// an external Agent or ResourceSpecification, records its mapping, and
// replays the pending sets of both listing kinds: a new prerequisite can
// unblock requests and offers alike.
//
// Duplicate approval events are tolerated: if the mapping already exists the
// create call is skipped and only the retry pass runs.
func (r *Reconciler) OnPrerequisiteApproved(ctx context.Context, kind bridge.EntityKind, localID, name string) error {
	if !kind.IsAgentSource() && !kind.IsResourceSpecSource() {
		return fmt.Errorf("%w: %q is not a prerequisite source", bridge.ErrInvalidEntityKind, kind)
	}
	if localID == "" {
		return bridge.ErrInvalidLocalID
	}

	if err := r.createPrerequisite(ctx, kind, localID, name); err != nil {
		return err
	}

	return errors.Join(
		r.DrainAndRetry(ctx, listing.KindRequest),
		r.DrainAndRetry(ctx, listing.KindOffer),
	)
}

// createPrerequisite creates the external mirror object under the source
// entity's critical section
func (r *Reconciler) createPrerequisite(ctx context.Context, kind bridge.EntityKind, localID, name string) error {
	key := sourceKey(kind, localID)
	r.locks.Lock(key)
	defer r.locks.Unlock(key)

	if _, ok, err := r.mappings.Get(ctx, kind, localID); err != nil {
		return err
	} else if ok {
		r.logger.Debug("prerequisite already mapped, skipping create",
			zap.String("kind", string(kind)),
			zap.String("local_id", localID),
		)
		return nil
	}

	note, err := bridge.EncodeRef(kind, localID)
	if err != nil {
		return err
	}

	var externalID string
	if kind.IsAgentSource() {
		externalID, err = r.client.CreateAgent(ctx, name, note)
		if err != nil {
			return bridge.NewGraphError("createAgent", err)
		}
	} else {
		externalID, err = r.client.CreateResourceSpecification(ctx, name, note)
		if err != nil {
			return bridge.NewGraphError("createResourceSpecification", err)
		}
	}

	if err := r.mappings.Put(ctx, kind, localID, externalID); err != nil {
		return err
	}

	r.logger.Info("prerequisite mapped",
		zap.String("kind", string(kind)),
		zap.String("local_id", localID),
		zap.String("external_id", externalID),
	)
	return nil
}

// DrainAndRetry re-attempts mapping for every listing deferred under the
// given kind. Listings whose prerequisites remain unsatisfied stay enqueued;
// that is expected steady state, not a failure. Graph-service failures are
// collected and returned so the caller can log them, never swallowed.
func (r *Reconciler) DrainAndRetry(ctx context.Context, kind listing.Kind) error {
	snapshots, err := r.pending.Drain(ctx, kind)
	if err != nil {
		return err
	}

	var errs []error
	for _, p := range snapshots {
		if err := r.OnListingCreated(ctx, p.Snapshot); err != nil {
			errs = append(errs, fmt.Errorf("retry %s/%s: %w", kind, p.LocalID, err))
		}
	}
	return errors.Join(errs...)
}

// State reports where a listing currently sits in the mapping state machine
func (r *Reconciler) State(ctx context.Context, kind listing.Kind, localID string) (MappingState, error) {
	if _, ok, err := r.mappings.Get(ctx, bridge.EntityKindProposal, localID); err != nil {
		return "", err
	} else if ok {
		return StateMapped, nil
	}

	pending, err := r.pending.Contains(ctx, kind, localID)
	if err != nil {
		return "", err
	}
	if pending {
		return StatePending, nil
	}
	return StateUnmapped, nil
}
