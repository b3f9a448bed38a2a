// Package errs provides standardized error types for the transport service.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired) matched with errors.Is
//   - a struct type carrying the details, matched with errors.As
//   - constructors with and without a cause
//   - Unwrap returning the sentinel
//
// VersionIsInvalidError is the optimistic-concurrency conflict raised by the
// storage layer when an update was based on a stale version.
package errs
