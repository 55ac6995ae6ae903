// Package errs provides standardized error types for the fablab ordering service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ObjectNotFoundError: an entity is absent or hidden by a soft-delete filter
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - StatusIsInvalidError: an operation attempted from a status that forbids it
//   - ConcurrencyConflictError: a compare-and-set update lost a race
//   - AccessDeniedError: the acting user lacks the required role
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Problems collects several named errors before returning, so validation
// reports every failing field at once. ProblemsError unwraps to all of its
// entries, which keeps errors.Is and errors.As working across the collection.
package errs
