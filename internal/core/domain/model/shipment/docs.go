// Package shipment provides domain entities and business logic for tracking
// inbound freight shipments from order placement through warehouse storage.
// It implements the Shipment aggregate root with lifecycle management and a
// table-driven status state machine.
//
// The package includes:
//   - Shipment: The aggregate root that manages shipment identity, the
//     post-arrival sub-workflow fields, and rejection metadata
//   - Status: A state machine whose transition table is the single source of
//     truth for which status changes are legal
//   - InspectionResult: The closed set of inspection outcomes (pass/fail/hold)
//
// Key business rules:
//   - Status changes follow the transition table; illegal pairs fail with
//     ErrInvalidTransition naming both states
//   - The one modeled cycle is InspectionFailed -> Unloading (re-inspection);
//     all other returns go through Rejected
//   - Entering Stored requires a counted quantity and a warehouse with free
//     bin capacity; the transition carries a CapacityReserve effect
//   - Rejection requires a reason and records who rejected; rejection is
//     only reachable from InspectionFailed and ReceivingGoods
//   - Every mutation appends an attributable history entry
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package shipment
