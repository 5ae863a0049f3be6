package delivery

import (
	"errors"

	"deliverytracking/internal/pkg/errs"
	"deliverytracking/internal/pkg/guard"
)

var ErrContactPointIsNotConstructed = errs.NewValueIsRequiredError("contact point must be created via NewContactPoint")

// ContactPoint is the address and contact of a sender or recipient.
// Two contact points are equal when every field is equal.
type ContactPoint struct { //nolint:recvcheck //using for validation
	zipCode    string
	street     string
	number     string
	complement string
	name       string
	phone      string

	guard guard.ConstructorGuard
}

// NewContactPoint validates that every field except complement is present.
func NewContactPoint(zipCode, street, number, complement, name, phone string) (ContactPoint, error) {
	cp := ContactPoint{
		zipCode:    zipCode,
		street:     street,
		number:     number,
		complement: complement,
		name:       name,
		phone:      phone,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		required("zipCode", zipCode),
		required("street", street),
		required("number", number),
		required("name", name),
		required("phone", phone),
	); err != nil {
		return ContactPoint{}, err
	}

	return cp, nil
}

func required(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

func (c ContactPoint) Validate() error {
	return c.guard.Validate(ErrContactPointIsNotConstructed)
}

func (c ContactPoint) ZipCode() string    { return c.zipCode }
func (c ContactPoint) Street() string     { return c.street }
func (c ContactPoint) Number() string     { return c.number }
func (c ContactPoint) Complement() string { return c.complement }
func (c ContactPoint) Name() string       { return c.name }
func (c ContactPoint) Phone() string      { return c.phone }

// IsEqual compares the full field set.
func (c ContactPoint) IsEqual(other ContactPoint) bool {
	return c.zipCode == other.zipCode &&
		c.street == other.street &&
		c.number == other.number &&
		c.complement == other.complement &&
		c.name == other.name &&
		c.phone == other.phone
}
