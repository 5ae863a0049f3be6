package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// DeliveryStatus is the lifecycle state as exposed over HTTP.
type DeliveryStatus string

const (
	DeliveryStatusDRAFT             DeliveryStatus = "DRAFT"
	DeliveryStatusWAITINGFORCOURIER DeliveryStatus = "WAITING_FOR_COURIER"
	DeliveryStatusINTRANSIT         DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusDELIVERED         DeliveryStatus = "DELIVERED"
)

type ContactPoint struct {
	ZipCode    string  `json:"zipCode"`
	Street     string  `json:"street"`
	Number     string  `json:"number"`
	Complement *string `json:"complement,omitempty"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
}

type NewItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type PreparationRequest struct {
	Sender    ContactPoint `json:"sender"`
	Recipient ContactPoint `json:"recipient"`
	Items     []NewItem    `json:"items"`
}

type PickUpRequest struct {
	CourierId openapi_types.UUID `json:"courierId"`
}

type Item struct {
	Id       openapi_types.UUID `json:"id"`
	Name     string             `json:"name"`
	Quantity int                `json:"quantity"`
}

type PreparationDetails struct {
	Sender                        ContactPoint `json:"sender"`
	Recipient                     ContactPoint `json:"recipient"`
	ExpectedDeliveryTimeInSeconds int64        `json:"expectedDeliveryTimeInSeconds"`
	CourierPayout                 string       `json:"courierPayout"`
	DistanceFee                   string       `json:"distanceFee"`
}

type Delivery struct {
	Id                 openapi_types.UUID  `json:"id"`
	Status             DeliveryStatus      `json:"status"`
	Items              []Item              `json:"items"`
	TotalItems         int                 `json:"totalItems"`
	PreparationDetails *PreparationDetails `json:"preparationDetails,omitempty"`
	CourierId          *openapi_types.UUID `json:"courierId,omitempty"`
	PlacedAt           *time.Time          `json:"placedAt,omitempty"`
	AssignedAt         *time.Time          `json:"assignedAt,omitempty"`
	FulfilledAt        *time.Time          `json:"fulfilledAt,omitempty"`
}

type DeliverySummary struct {
	Id            openapi_types.UUID  `json:"id"`
	Status        DeliveryStatus      `json:"status"`
	TotalItems    int                 `json:"totalItems"`
	RecipientName *string             `json:"recipientName,omitempty"`
	DistanceFee   *string             `json:"distanceFee,omitempty"`
	CourierId     *openapi_types.UUID `json:"courierId,omitempty"`
	PlacedAt      *time.Time          `json:"placedAt,omitempty"`
}

type DeliveryPage struct {
	Items         []DeliverySummary `json:"items"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int64             `json:"totalElements"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ListDeliveriesParams are the query parameters of GET /api/v1/deliveries.
type ListDeliveriesParams struct {
	Page   *int            `form:"page,omitempty" json:"page,omitempty"`
	Size   *int            `form:"size,omitempty" json:"size,omitempty"`
	Status *DeliveryStatus `form:"status,omitempty" json:"status,omitempty"`
}

// DeliveryId is the path parameter naming a delivery.
type DeliveryId = openapi_types.UUID
