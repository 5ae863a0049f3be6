package delivery

import (
	"fmt"

	"deliverytracking/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery.
//
//	DRAFT --Place--> WAITING_FOR_COURIER --PickUp--> IN_TRANSIT --MarkAsDelivered--> DELIVERED
//
// The numeric order of the constants follows the lifecycle, so a later state
// always compares greater than an earlier one.
type Status int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown Status = iota
	StatusDraft
	StatusWaitingForCourier
	StatusInTransit
	StatusDelivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:           "UNKNOWN",
		StatusDraft:             "DRAFT",
		StatusWaitingForCourier: "WAITING_FOR_COURIER",
		StatusInTransit:         "IN_TRANSIT",
		StatusDelivered:         "DELIVERED",
	}
}

// StatusFromString parses the names produced by String. StatusUnknown is rejected.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if s < StatusDraft || s > StatusDelivered {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsAtLeast reports whether s is other or any state after it.
func (s Status) IsAtLeast(other Status) bool {
	return s >= other
}

// ValidateEditable allows item and preparation changes only while drafting.
func (s Status) ValidateEditable() error {
	if s != StatusDraft {
		return errs.NewDomainInvariantViolationErrorWithCause(
			"delivery can only be changed while in DRAFT",
			fmt.Errorf("%s is not an editable status", s),
		)
	}
	return nil
}

// Place transitions DRAFT to WAITING_FOR_COURIER.
func (s Status) Place() (Status, error) {
	return s.transition(StatusDraft, StatusWaitingForCourier, "place")
}

// PickUp transitions WAITING_FOR_COURIER to IN_TRANSIT.
func (s Status) PickUp() (Status, error) {
	return s.transition(StatusWaitingForCourier, StatusInTransit, "pick up")
}

// MarkAsDelivered transitions IN_TRANSIT to DELIVERED, the final state.
func (s Status) MarkAsDelivered() (Status, error) {
	return s.transition(StatusInTransit, StatusDelivered, "mark as delivered")
}

func (s Status) transition(from, to Status, action string) (Status, error) {
	if s != from {
		return StatusUnknown, errs.NewDomainInvariantViolationErrorWithCause(
			"status transition is not allowed",
			fmt.Errorf("cannot %s a delivery in %s, it must be %s", action, s, from),
		)
	}
	return to, nil
}
