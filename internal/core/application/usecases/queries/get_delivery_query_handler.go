package queries

import (
	"context"
	"time"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetDeliveryQueryHandler reads a single delivery.
//
// Example:
//
//	query, _ := NewGetDeliveryQuery(id)
//	view, err := NewGetDeliveryQueryHandler(db).Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

type deliveryRow struct {
	ID                    uuid.UUID
	Status                string
	TotalItems            int
	CourierID             *uuid.UUID
	PlacedAt              *time.Time
	AssignedAt            *time.Time
	FulfilledAt           *time.Time
	HasPreparationDetails bool
	SenderZipCode         string
	SenderStreet          string
	SenderNumber          string
	SenderComplement      string
	SenderName            string
	SenderPhone           string
	RecipientZipCode      string
	RecipientStreet       string
	RecipientNumber       string
	RecipientComplement   string
	RecipientName         string
	RecipientPhone        string
	ExpectedDeliveryTime  int64
	CourierPayout         decimal.Decimal
	DistanceFee           decimal.Decimal
}

type itemRow struct {
	ID       uuid.UUID
	Name     string
	Quantity int
}

// Handle returns errs.ErrObjectNotFound when the delivery does not exist.
func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (GetDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var rows []deliveryRow
	err := db.Raw(`
		SELECT
			id, status, total_items, courier_id, placed_at, assigned_at, fulfilled_at,
			has_preparation_details,
			sender_zip_code, sender_street, sender_number, sender_complement, sender_name, sender_phone,
			recipient_zip_code, recipient_street, recipient_number, recipient_complement, recipient_name, recipient_phone,
			expected_delivery_time, courier_payout, distance_fee
		FROM deliveries
		WHERE id = ?
	`, query.DeliveryID().Bytes()).Scan(&rows).Error
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if len(rows) == 0 {
		return GetDeliveryQueryResponse{}, errs.NewObjectNotFoundError("delivery", query.DeliveryID().String())
	}
	row := rows[0]

	var items []itemRow
	err = db.Raw(`
		SELECT id, name, quantity
		FROM delivery_items
		WHERE delivery_id = ?
		ORDER BY position
	`, row.ID).Scan(&items).Error
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	return toResponse(row, items)
}

func toResponse(row deliveryRow, items []itemRow) (GetDeliveryQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	resp := GetDeliveryQueryResponse{
		ID:          id,
		Status:      row.Status,
		TotalItems:  row.TotalItems,
		Items:       make([]ItemView, 0, len(items)),
		PlacedAt:    utc(row.PlacedAt),
		AssignedAt:  utc(row.AssignedAt),
		FulfilledAt: utc(row.FulfilledAt),
	}

	if row.CourierID != nil {
		courierID, courierErr := kernel.UUIDFromBytes(row.CourierID[:])
		if courierErr != nil {
			return GetDeliveryQueryResponse{}, courierErr
		}
		resp.CourierID = &courierID
	}

	if row.HasPreparationDetails {
		resp.PreparationDetails = &PreparationDetailsView{
			Sender: ContactPointView{
				ZipCode: row.SenderZipCode, Street: row.SenderStreet, Number: row.SenderNumber,
				Complement: row.SenderComplement, Name: row.SenderName, Phone: row.SenderPhone,
			},
			Recipient: ContactPointView{
				ZipCode: row.RecipientZipCode, Street: row.RecipientStreet, Number: row.RecipientNumber,
				Complement: row.RecipientComplement, Name: row.RecipientName, Phone: row.RecipientPhone,
			},
			ExpectedDeliveryTime: time.Duration(row.ExpectedDeliveryTime),
			CourierPayout:        row.CourierPayout,
			DistanceFee:          row.DistanceFee,
		}
	}

	for _, item := range items {
		itemID, itemErr := kernel.UUIDFromBytes(item.ID[:])
		if itemErr != nil {
			return GetDeliveryQueryResponse{}, itemErr
		}
		resp.Items = append(resp.Items, ItemView{ID: itemID, Name: item.Name, Quantity: item.Quantity})
	}

	return resp, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
