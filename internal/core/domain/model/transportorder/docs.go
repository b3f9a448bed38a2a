// Package transportorder implements the TransportOrder aggregate: a request to
// move a transport unit from a source location to a target location or
// location group.
//
// The package includes:
//   - TransportOrder: the aggregate root with its assignment fields and timestamps
//   - State: the lifecycle states and the rules guarding transitions between them
//   - Priority: the ordered sort key used by schedulers
//   - InvalidStateError and IncompleteOrderError: the two ways a transition fails
//
// Key business rules:
//   - State never moves backwards under its natural order
//   - A CREATED order may only be INITIALIZED or CANCELED
//   - INITIALIZED requires a transport unit and a target location or location group
//   - FINISHED and CANCELED are terminal
//   - The start and end timestamps are written once, by the transitions into
//     STARTED and FINISHED
//
// Identity, version and the update timestamp are owned by the storage layer.
// The aggregate exposes them read-only and receives new values through
// MarkPersisted after a successful write.
package transportorder
