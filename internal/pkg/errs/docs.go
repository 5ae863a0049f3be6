// Package errs provides the error taxonomy of the delivery tracking service.
//
// Each error kind follows the same shape:
//   - a sentinel variable (e.g. ErrObjectNotFound) usable with errors.Is
//   - a struct carrying the details of the failure
//   - constructors with and without an underlying cause
//   - Error() for a stable, single-line message
//   - Unwrap() returning the sentinel
//
// Kinds:
//   - ValueIsRequiredError, ValueIsInvalidError: input validation failures
//   - ObjectNotFoundError: an aggregate could not be loaded
//   - DomainInvariantViolationError: an aggregate rejected an operation
//   - GatewayTimeoutError: an upstream service did not answer in time
//   - BadGatewayError: an upstream service failed, was short-circuited or
//     broke its contract
//   - ConcurrentModificationError: another writer changed the aggregate first
//
// Transport layers translate these kinds into responses; the core never
// inspects transport-specific errors.
package errs
