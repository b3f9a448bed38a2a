// Package services provides domain services that coordinate several
// TransportOrder aggregates.
//
// The package includes:
//   - TransportOrderStarter: picks and starts the next order of a transport unit
//
// A transport unit is moved by one order at a time, so the decision which order
// to start depends on all open orders of that unit, not on a single aggregate.
package services
