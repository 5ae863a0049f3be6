package delivery

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery was not created
	// through Draft or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via Draft or RestoreDelivery")

	// ErrPreparationDetailsAreMissing is returned when placing a delivery that
	// has no preparation details.
	ErrPreparationDetailsAreMissing = errs.NewDomainInvariantViolationError("delivery cannot be placed without preparation details")

	// ErrItemsAreMissing is returned when placing a delivery without items.
	ErrItemsAreMissing = errs.NewDomainInvariantViolationError("delivery cannot be placed without items")
)

// Delivery is the aggregate root tracking one parcel through its lifecycle.
//
// Delivery follows these invariants:
//   - id never changes
//   - status only moves forward, one state at a time
//   - items and preparation details change only while DRAFT
//   - placedAt is set iff status is WAITING_FOR_COURIER or later
//   - courierID and assignedAt are set iff status is IN_TRANSIT or later
//   - fulfilledAt is set iff status is DELIVERED
//
// Every method either applies its change completely or returns an error and
// leaves the aggregate untouched.
type Delivery struct {
	id                 kernel.UUID
	status             Status
	items              []Item
	preparationDetails *PreparationDetails
	courierID          *kernel.UUID
	placedAt           *time.Time
	assignedAt         *time.Time
	fulfilledAt        *time.Time
	version            int

	events        []Event
	now           func() time.Time
	isConstructed bool
}

// Option configures a Delivery at construction.
type Option func(*Delivery)

// WithClock sets the time source used to stamp checkpoints.
func WithClock(now func() time.Time) Option {
	return func(d *Delivery) {
		if now != nil {
			d.now = now
		}
	}
}

func defaultClock() time.Time {
	return time.Now().UTC()
}

// Draft starts a new delivery in DRAFT with a fresh identity, no items and no
// preparation details.
//
// Example:
//
//	d := delivery.Draft()
//	_ = d.EditPreparationDetails(details)
//	_, _ = d.AddItem("Book", 1)
//	err := d.Place()
func Draft(opts ...Option) *Delivery {
	d := &Delivery{
		id:            kernel.NewUUID(),
		status:        StatusDraft,
		items:         make([]Item, 0),
		now:           defaultClock,
		isConstructed: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RestoreParams carries the persisted state of a delivery.
type RestoreParams struct {
	ID                 kernel.UUID
	Status             Status
	Items              []Item
	PreparationDetails *PreparationDetails
	CourierID          *kernel.UUID
	PlacedAt           *time.Time
	AssignedAt         *time.Time
	FulfilledAt        *time.Time
	Version            int
}

// RestoreDelivery rebuilds a delivery from persistence and checks that the
// stored state satisfies the aggregate invariants.
func RestoreDelivery(p RestoreParams, opts ...Option) (*Delivery, error) {
	if err := errors.Join(p.ID.Validate(), p.Status.Validate()); err != nil {
		return nil, err
	}
	if err := validateRestoredState(p); err != nil {
		return nil, err
	}

	d := &Delivery{
		id:                 p.ID,
		status:             p.Status,
		items:              slices.Clone(p.Items),
		preparationDetails: p.PreparationDetails,
		courierID:          p.CourierID,
		placedAt:           p.PlacedAt,
		assignedAt:         p.AssignedAt,
		fulfilledAt:        p.FulfilledAt,
		version:            p.Version,
		now:                defaultClock,
		isConstructed:      true,
	}
	if d.items == nil {
		d.items = make([]Item, 0)
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func validateRestoredState(p RestoreParams) error {
	var problems []error

	if p.Version < 0 {
		problems = append(problems, fmt.Errorf("version %d is negative", p.Version))
	}
	if p.PreparationDetails != nil {
		if err := p.PreparationDetails.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if (p.PlacedAt != nil) != p.Status.IsAtLeast(StatusWaitingForCourier) {
		problems = append(problems, fmt.Errorf("placedAt does not match status %s", p.Status))
	}
	if (p.AssignedAt != nil) != p.Status.IsAtLeast(StatusInTransit) {
		problems = append(problems, fmt.Errorf("assignedAt does not match status %s", p.Status))
	}
	if (p.CourierID != nil) != p.Status.IsAtLeast(StatusInTransit) {
		problems = append(problems, fmt.Errorf("courierId does not match status %s", p.Status))
	}
	if (p.FulfilledAt != nil) != p.Status.IsAtLeast(StatusDelivered) {
		problems = append(problems, fmt.Errorf("fulfilledAt does not match status %s", p.Status))
	}
	if p.Status.IsAtLeast(StatusWaitingForCourier) && (p.PreparationDetails == nil || len(p.Items) == 0) {
		problems = append(problems, fmt.Errorf("%s delivery must have preparation details and items", p.Status))
	}

	if len(problems) > 0 {
		return errs.NewDomainInvariantViolationErrorWithCause("stored delivery is inconsistent", errors.Join(problems...))
	}
	return nil
}

// Validate ensures the delivery was built by Draft or RestoreDelivery.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares deliveries by identity.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *Delivery) ID() kernel.UUID { return d.id }
func (d *Delivery) Status() Status  { return d.status }

// Version is the persisted revision the aggregate was loaded at. A drafted
// delivery has version 0.
func (d *Delivery) Version() int { return d.version }

// Items returns a copy of the items in insertion order.
func (d *Delivery) Items() []Item {
	return slices.Clone(d.items)
}

// TotalItems is the sum of all item quantities.
func (d *Delivery) TotalItems() int {
	total := 0
	for _, item := range d.items {
		total += item.quantity
	}
	return total
}

// PreparationDetails returns the details and whether they are set.
func (d *Delivery) PreparationDetails() (PreparationDetails, bool) {
	if d.preparationDetails == nil {
		return PreparationDetails{}, false
	}
	return *d.preparationDetails, true
}

// CourierID returns the courier that picked the delivery up, or nil.
func (d *Delivery) CourierID() *kernel.UUID { return copyPtr(d.courierID) }
func (d *Delivery) PlacedAt() *time.Time    { return copyPtr(d.placedAt) }
func (d *Delivery) AssignedAt() *time.Time  { return copyPtr(d.assignedAt) }
func (d *Delivery) FulfilledAt() *time.Time { return copyPtr(d.fulfilledAt) }

// EditPreparationDetails replaces the preparation details wholesale.
// Items are not touched; callers re-preparing a delivery call RemoveItems.
func (d *Delivery) EditPreparationDetails(details PreparationDetails) error {
	if err := d.status.ValidateEditable(); err != nil {
		return err
	}
	if err := details.Validate(); err != nil {
		return err
	}
	d.preparationDetails = &details
	return nil
}

// AddItem appends an item and returns its id.
func (d *Delivery) AddItem(name string, quantity int) (kernel.UUID, error) {
	if err := d.status.ValidateEditable(); err != nil {
		return kernel.UUID{}, err
	}
	item, err := newItem(name, quantity)
	if err != nil {
		return kernel.UUID{}, err
	}
	d.items = append(d.items, item)
	return item.id, nil
}

// ChangeItemQuantity sets the quantity of an existing item.
func (d *Delivery) ChangeItemQuantity(itemID kernel.UUID, quantity int) error {
	if err := d.status.ValidateEditable(); err != nil {
		return err
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	idx, err := d.indexOfItem(itemID)
	if err != nil {
		return err
	}
	d.items[idx].quantity = quantity
	return nil
}

// RemoveItem deletes a single item.
func (d *Delivery) RemoveItem(itemID kernel.UUID) error {
	if err := d.status.ValidateEditable(); err != nil {
		return err
	}
	idx, err := d.indexOfItem(itemID)
	if err != nil {
		return err
	}
	d.items = slices.Delete(d.items, idx, idx+1)
	return nil
}

// RemoveItems clears every item.
func (d *Delivery) RemoveItems() error {
	if err := d.status.ValidateEditable(); err != nil {
		return err
	}
	d.items = make([]Item, 0)
	return nil
}

// Place moves a fully prepared DRAFT delivery to WAITING_FOR_COURIER.
func (d *Delivery) Place() error {
	newStatus, err := d.status.Place()
	if err != nil {
		return err
	}
	if d.preparationDetails == nil {
		return ErrPreparationDetailsAreMissing
	}
	if len(d.items) == 0 {
		return ErrItemsAreMissing
	}

	now := d.now()
	d.status = newStatus
	d.placedAt = &now
	d.record(DeliveryPlacedEvent{DeliveryID: d.id.String(), OccurredAt: now})
	return nil
}

// PickUp assigns the courier and moves the delivery to IN_TRANSIT.
func (d *Delivery) PickUp(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	newStatus, err := d.status.PickUp()
	if err != nil {
		return err
	}

	now := d.now()
	d.status = newStatus
	d.courierID = &courierID
	d.assignedAt = &now
	d.record(DeliveryPickedUpEvent{
		DeliveryID: d.id.String(),
		CourierID:  courierID.String(),
		OccurredAt: now,
	})
	return nil
}

// MarkAsDelivered moves an IN_TRANSIT delivery to DELIVERED.
func (d *Delivery) MarkAsDelivered() error {
	newStatus, err := d.status.MarkAsDelivered()
	if err != nil {
		return err
	}

	now := d.now()
	d.status = newStatus
	d.fulfilledAt = &now
	d.record(DeliveryFulfilledEvent{DeliveryID: d.id.String(), OccurredAt: now})
	return nil
}

// PullEvents returns the events recorded since the last call and forgets
// them.
func (d *Delivery) PullEvents() []Event {
	events := d.events
	d.events = nil
	return events
}

func (d *Delivery) record(e Event) {
	d.events = append(d.events, e)
}

func (d *Delivery) indexOfItem(itemID kernel.UUID) (int, error) {
	idx := slices.IndexFunc(d.items, func(i Item) bool { return i.id.IsEqual(itemID) })
	if idx < 0 {
		return -1, errs.NewObjectNotFoundError("item", itemID.String())
	}
	return idx, nil
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
