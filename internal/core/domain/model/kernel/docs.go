// Package kernel holds the value objects shared by the transport domain.
//
// The package includes:
//   - UUID: identity of persisted aggregates
//   - Barcode: reference to the transport unit being moved
//   - LocationID: address of a single warehouse location (AREA/AISLE/X/Y/Z)
//   - LocationGroupName: reference to a group of locations used as a target
//   - Problem: a recorded fault (message, number and time of occurrence)
//
// The transport units, locations and location groups themselves are owned by
// other services. This package only validates the references to them. Every
// value object has an invalid zero value and must be created through its
// constructor; Validate reports values that were not.
package kernel
