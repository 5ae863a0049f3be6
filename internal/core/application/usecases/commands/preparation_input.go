package commands

import (
	"deliverytracking/internal/core/domain/model/delivery"
)

// ContactPointInput is the raw sender or recipient data of a preparation
// request. It is turned into a delivery.ContactPoint by the preparation
// service.
type ContactPointInput struct {
	ZipCode    string
	Street     string
	Number     string
	Complement string
	Name       string
	Phone      string
}

func (in ContactPointInput) toContactPoint() (delivery.ContactPoint, error) {
	return delivery.NewContactPoint(in.ZipCode, in.Street, in.Number, in.Complement, in.Name, in.Phone)
}

// ItemInput is one requested line item.
type ItemInput struct {
	Name     string
	Quantity int
}

// PreparationInput is shared by drafting and editing.
type PreparationInput struct {
	Sender    ContactPointInput
	Recipient ContactPointInput
	Items     []ItemInput
}
