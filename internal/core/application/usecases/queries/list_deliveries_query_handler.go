package queries

import (
	"context"
	"time"

	"deliverytracking/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewListDeliveriesQueryHandler(db *gorm.DB) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{db: db}
}

type summaryRow struct {
	ID            uuid.UUID
	Status        string
	TotalItems    int
	RecipientName string
	DistanceFee   decimal.Decimal
	CourierID     *uuid.UUID
	PlacedAt      *time.Time
}

func (h ListDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveriesQuery,
) (ListDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListDeliveriesQueryResponse{}, err
	}

	base := h.db.WithContext(ctx).Table("deliveries")
	if status := query.Status(); status != nil {
		base = base.Where("status = ?", status.String())
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return ListDeliveriesQueryResponse{}, err
	}

	var rows []summaryRow
	err := base.Session(&gorm.Session{}).
		Select("id, status, total_items, recipient_name, distance_fee, courier_id, placed_at").
		Order("created_at DESC, id").
		Offset(query.Page() * query.Size()).
		Limit(query.Size()).
		Scan(&rows).Error
	if err != nil {
		return ListDeliveriesQueryResponse{}, err
	}

	resp := ListDeliveriesQueryResponse{
		Items:         make([]DeliverySummary, 0, len(rows)),
		Page:          query.Page(),
		Size:          query.Size(),
		TotalElements: total,
	}

	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return ListDeliveriesQueryResponse{}, err
		}

		summary := DeliverySummary{
			ID:            id,
			Status:        row.Status,
			TotalItems:    row.TotalItems,
			RecipientName: row.RecipientName,
			DistanceFee:   row.DistanceFee,
			PlacedAt:      utc(row.PlacedAt),
		}
		if row.CourierID != nil {
			courierID, courierErr := kernel.UUIDFromBytes(row.CourierID[:])
			if courierErr != nil {
				return ListDeliveriesQueryResponse{}, courierErr
			}
			summary.CourierID = &courierID
		}

		resp.Items = append(resp.Items, summary)
	}

	return resp, nil
}
