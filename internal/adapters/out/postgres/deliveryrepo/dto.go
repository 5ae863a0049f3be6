// Package deliveryrepo maps Delivery aggregates to the deliveries and
// delivery_items tables.
package deliveryrepo

import (
	"time"

	"deliverytracking/internal/core/domain/model/delivery"
	"deliverytracking/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryDTO is one row of the deliveries table. Preparation details are
// flattened into sender_*, recipient_* and pricing columns and are only
// meaningful when HasPreparationDetails is true.
type DeliveryDTO struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Status                string          `gorm:"type:varchar(32);not null;index"`
	Version               int             `gorm:"type:int;not null;default:0"`
	CourierID             *uuid.UUID      `gorm:"type:uuid;index"`
	PlacedAt              *time.Time      `gorm:"type:timestamptz"`
	AssignedAt            *time.Time      `gorm:"type:timestamptz"`
	FulfilledAt           *time.Time      `gorm:"type:timestamptz"`
	TotalItems            int             `gorm:"type:int;not null;default:0"`
	HasPreparationDetails bool            `gorm:"not null;default:false"`
	Sender                ContactPointDTO `gorm:"embedded;embeddedPrefix:sender_"`
	Recipient             ContactPointDTO `gorm:"embedded;embeddedPrefix:recipient_"`
	ExpectedDeliveryTime  int64           `gorm:"type:bigint;not null;default:0"`
	CourierPayout         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	DistanceFee           decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt             time.Time       `gorm:"autoCreateTime;index"`
	Items                 []ItemDTO       `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// ContactPointDTO is embedded twice in DeliveryDTO.
type ContactPointDTO struct {
	ZipCode    string `gorm:"type:varchar(32)"`
	Street     string `gorm:"type:varchar(255)"`
	Number     string `gorm:"type:varchar(32)"`
	Complement string `gorm:"type:varchar(255)"`
	Name       string `gorm:"type:varchar(255)"`
	Phone      string `gorm:"type:varchar(64)"`
}

// ItemDTO is one row of delivery_items. Position keeps insertion order.
type ItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position   int       `gorm:"type:int;not null"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Quantity   int       `gorm:"type:int;not null"`
}

func (ItemDTO) TableName() string {
	return "delivery_items"
}

func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	dto := DeliveryDTO{
		ID:          aggregate.ID().Bytes(),
		Status:      aggregate.Status().String(),
		Version:     aggregate.Version(),
		PlacedAt:    aggregate.PlacedAt(),
		AssignedAt:  aggregate.AssignedAt(),
		FulfilledAt: aggregate.FulfilledAt(),
		TotalItems:  aggregate.TotalItems(),
	}

	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		dto.CourierID = &raw
	}

	if details, ok := aggregate.PreparationDetails(); ok {
		dto.HasPreparationDetails = true
		dto.Sender = contactPointFromDomain(details.Sender())
		dto.Recipient = contactPointFromDomain(details.Recipient())
		dto.ExpectedDeliveryTime = int64(details.ExpectedDeliveryTime())
		dto.CourierPayout = details.CourierPayout().Amount()
		dto.DistanceFee = details.DistanceFee().Amount()
	}

	items := aggregate.Items()
	dto.Items = make([]ItemDTO, 0, len(items))
	for i, item := range items {
		dto.Items = append(dto.Items, ItemDTO{
			ID:         item.ID().Bytes(),
			DeliveryID: dto.ID,
			Position:   i,
			Name:       item.Name(),
			Quantity:   item.Quantity(),
		})
	}

	return dto
}

func contactPointFromDomain(cp delivery.ContactPoint) ContactPointDTO {
	return ContactPointDTO{
		ZipCode:    cp.ZipCode(),
		Street:     cp.Street(),
		Number:     cp.Number(),
		Complement: cp.Complement(),
		Name:       cp.Name(),
		Phone:      cp.Phone(),
	}
}

// toDomain expects dto.Items ordered by position.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	var details *delivery.PreparationDetails
	if dto.HasPreparationDetails {
		d, detailsErr := preparationDetailsToDomain(dto)
		if detailsErr != nil {
			return nil, detailsErr
		}
		details = &d
	}

	items := make([]delivery.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := delivery.RestoreItem(itemID, itemDTO.Name, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return delivery.RestoreDelivery(delivery.RestoreParams{
		ID:                 id,
		Status:             status,
		Items:              items,
		PreparationDetails: details,
		CourierID:          courierID,
		PlacedAt:           utc(dto.PlacedAt),
		AssignedAt:         utc(dto.AssignedAt),
		FulfilledAt:        utc(dto.FulfilledAt),
		Version:            dto.Version,
	})
}

func preparationDetailsToDomain(dto DeliveryDTO) (delivery.PreparationDetails, error) {
	sender, err := contactPointToDomain(dto.Sender)
	if err != nil {
		return delivery.PreparationDetails{}, err
	}
	recipient, err := contactPointToDomain(dto.Recipient)
	if err != nil {
		return delivery.PreparationDetails{}, err
	}
	payout, err := kernel.NewMoney(dto.CourierPayout)
	if err != nil {
		return delivery.PreparationDetails{}, err
	}
	fee, err := kernel.NewMoney(dto.DistanceFee)
	if err != nil {
		return delivery.PreparationDetails{}, err
	}

	return delivery.NewPreparationDetails(
		sender,
		recipient,
		time.Duration(dto.ExpectedDeliveryTime),
		payout,
		fee,
	)
}

func contactPointToDomain(dto ContactPointDTO) (delivery.ContactPoint, error) {
	return delivery.NewContactPoint(dto.ZipCode, dto.Street, dto.Number, dto.Complement, dto.Name, dto.Phone)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
