package delivery

import "time"

// Event is a fact recorded by the aggregate on a successful checkpoint.
// Events are serialized as JSON when written to the outbox.
type Event interface {
	EventType() string
	OccurredOn() time.Time
}

type DeliveryPlacedEvent struct {
	DeliveryID string    `json:"deliveryId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (DeliveryPlacedEvent) EventType() string       { return "DeliveryPlacedEvent" }
func (e DeliveryPlacedEvent) OccurredOn() time.Time { return e.OccurredAt }

type DeliveryPickedUpEvent struct {
	DeliveryID string    `json:"deliveryId"`
	CourierID  string    `json:"courierId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (DeliveryPickedUpEvent) EventType() string       { return "DeliveryPickedUpEvent" }
func (e DeliveryPickedUpEvent) OccurredOn() time.Time { return e.OccurredAt }

type DeliveryFulfilledEvent struct {
	DeliveryID string    `json:"deliveryId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (DeliveryFulfilledEvent) EventType() string       { return "DeliveryFulfilledEvent" }
func (e DeliveryFulfilledEvent) OccurredOn() time.Time { return e.OccurredAt }
