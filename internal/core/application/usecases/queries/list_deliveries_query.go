package queries

import (
	"errors"
	"fmt"
	"time"

	"deliverytracking/internal/core/domain/model/delivery"
	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/pkg/errs"
	"deliverytracking/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrListDeliveriesQueryIsNotConstructed = errors.New(
	"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
)

// ListDeliveriesQuery pages through deliveries, newest first, optionally
// filtered by status. Pages start at 0.
type ListDeliveriesQuery struct { //nolint:recvcheck //using for validation
	page   int
	size   int
	status *delivery.Status

	guard guard.ConstructorGuard
}

// NewListDeliveriesQuery uses DefaultPageSize when size is 0.
func NewListDeliveriesQuery(page, size int, status *delivery.Status) (ListDeliveriesQuery, error) {
	if size == 0 {
		size = DefaultPageSize
	}

	var problems []error
	if page < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("page", fmt.Errorf("%d is negative", page)))
	}
	if size < 1 || size > MaxPageSize {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"size", fmt.Errorf("%d is not between 1 and %d", size, MaxPageSize)))
	}
	if status != nil {
		problems = append(problems, status.Validate())
	}
	if err := errors.Join(problems...); err != nil {
		return ListDeliveriesQuery{}, err
	}

	return ListDeliveriesQuery{page: page, size: size, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

func (q ListDeliveriesQuery) Page() int                { return q.page }
func (q ListDeliveriesQuery) Size() int                { return q.size }
func (q ListDeliveriesQuery) Status() *delivery.Status { return q.status }

// DeliverySummary is one row of the listing.
type DeliverySummary struct {
	ID            kernel.UUID
	Status        string
	TotalItems    int
	RecipientName string
	DistanceFee   decimal.Decimal
	CourierID     *kernel.UUID
	PlacedAt      *time.Time
}

type ListDeliveriesQueryResponse struct {
	Items         []DeliverySummary
	Page          int
	Size          int
	TotalElements int64
}
