// Package bridge contains the Bridge bounded context: mirroring local
// marketplace entities into the external economic-ontology graph.
//
// Key concepts:
//   - EntityKind: the local entity kinds that get mirrored (user, organization,
//     serviceType, mediumOfExchange, proposal)
//   - Mapping / MappingStore: local ID to external ID associations, written
//     exactly once per local ID
//   - PendingSet: listings whose mapping is deferred until their prerequisites
//     exist in the external graph
//   - Reference: annotation string embedded in external objects so mappings
//     are recoverable without the mapping store
//   - Resolver: looks up the external prerequisites of a listing
//   - BuildExchangeGraph: constructs the proposal-plus-two-intents object
//     graph representing a listing's exchange semantics
//   - GraphClient: port interface for the external graph RPC service
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package bridge
