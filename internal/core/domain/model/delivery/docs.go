// Package delivery provides the Delivery aggregate and its value objects.
//
// The package includes:
//   - Delivery: the aggregate root tracking a parcel from draft to delivered
//   - Status: the forward-only lifecycle state machine
//   - Item: a line item owned by the aggregate
//   - ContactPoint: the immutable sender/recipient address and contact
//   - PreparationDetails: the pricing and ETA snapshot required to place
//   - Event: domain events recorded by successful checkpoints
//
// Key business rules:
//   - Status moves DRAFT -> WAITING_FOR_COURIER -> IN_TRANSIT -> DELIVERED,
//     never backward and never skipping a state
//   - Items and preparation details can only change while DRAFT
//   - Placing requires preparation details and at least one item
//   - A rejected operation leaves the aggregate exactly as it was
package delivery
