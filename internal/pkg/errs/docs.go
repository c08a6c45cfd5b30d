// Package errs provides standardized error types for the cafe order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used by the domain, the application use cases and the adapters.
//
// The package includes several error types grouped by how callers react to them:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: the input
//     was missing or malformed and the operation was not attempted
//   - ObjectNotFoundError: the referenced order does not exist
//   - InvalidStateError: the order status does not permit the requested change
//   - VersionConflictError: a concurrent writer changed the order first
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel so errors.Is classifies it
//
// Any error that unwraps to none of the sentinels is treated as a persistence
// failure by the transport layer.
package errs
