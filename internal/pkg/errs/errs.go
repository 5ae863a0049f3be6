package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound           = errors.New("object not found")
	ErrValueIsInvalid           = errors.New("value is invalid")
	ErrValueIsRequired          = errors.New("value is required")
	ErrDomainInvariantViolation = errors.New("domain invariant violation")
	ErrGatewayTimeout           = errors.New("gateway timeout")
	ErrBadGateway               = errors.New("bad gateway")
	ErrConcurrentModification   = errors.New("concurrent modification")
)

// sanitize keeps error messages on a single line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, sanitize(cause.Error()))
}

// ObjectNotFoundError is returned when an aggregate does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return withCause(
			fmt.Sprintf("%s: param is: %s, ID is: %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID)),
			e.Cause,
		)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError is returned when a value fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError is returned when a mandatory value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// DomainInvariantViolationError is returned by aggregates when an operation
// would break one of their rules. The aggregate is left untouched.
type DomainInvariantViolationError struct {
	Rule  string
	Cause error
}

func NewDomainInvariantViolationError(rule string) *DomainInvariantViolationError {
	return &DomainInvariantViolationError{Rule: rule}
}

func NewDomainInvariantViolationErrorWithCause(rule string, cause error) *DomainInvariantViolationError {
	return &DomainInvariantViolationError{Rule: rule, Cause: cause}
}

func (e *DomainInvariantViolationError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrDomainInvariantViolation, e.Rule), e.Cause)
}

func (e *DomainInvariantViolationError) Unwrap() error {
	return ErrDomainInvariantViolation
}

// GatewayTimeoutError is returned when an upstream could not be reached or
// did not answer in time. Callers may retry the whole operation later.
type GatewayTimeoutError struct {
	Upstream string
	Cause    error
}

func NewGatewayTimeoutError(upstream string) *GatewayTimeoutError {
	return &GatewayTimeoutError{Upstream: upstream}
}

func NewGatewayTimeoutErrorWithCause(upstream string, cause error) *GatewayTimeoutError {
	return &GatewayTimeoutError{Upstream: upstream, Cause: cause}
}

func (e *GatewayTimeoutError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrGatewayTimeout, e.Upstream), e.Cause)
}

func (e *GatewayTimeoutError) Unwrap() error {
	return ErrGatewayTimeout
}

// BadGatewayError is returned when an upstream answered with a failure, was
// short-circuited by a breaker, or violated its contract.
type BadGatewayError struct {
	Upstream string
	Cause    error
}

func NewBadGatewayError(upstream string) *BadGatewayError {
	return &BadGatewayError{Upstream: upstream}
}

func NewBadGatewayErrorWithCause(upstream string, cause error) *BadGatewayError {
	return &BadGatewayError{Upstream: upstream, Cause: cause}
}

func (e *BadGatewayError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrBadGateway, e.Upstream), e.Cause)
}

func (e *BadGatewayError) Unwrap() error {
	return ErrBadGateway
}

// ConcurrentModificationError is returned when a save loses a race against
// another writer of the same aggregate.
type ConcurrentModificationError struct {
	ParamName string
	ID        any
}

func NewConcurrentModificationError(paramName string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrConcurrentModification, e.ParamName, sanitize(e.ID))
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}
