package http

import (
	"time"

	"deliverytracking/internal/core/application/usecases/commands"
	"deliverytracking/internal/core/application/usecases/queries"
	"deliverytracking/internal/core/domain/model/delivery"
	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

func toPreparationInput(req servers.PreparationRequest) commands.PreparationInput {
	items := make([]commands.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.ItemInput{Name: item.Name, Quantity: item.Quantity})
	}

	return commands.PreparationInput{
		Sender:    toContactPointInput(req.Sender),
		Recipient: toContactPointInput(req.Recipient),
		Items:     items,
	}
}

func toContactPointInput(cp servers.ContactPoint) commands.ContactPointInput {
	return commands.ContactPointInput{
		ZipCode:    cp.ZipCode,
		Street:     cp.Street,
		Number:     cp.Number,
		Complement: valueOr(cp.Complement, ""),
		Name:       cp.Name,
		Phone:      cp.Phone,
	}
}

func toDelivery(d *delivery.Delivery) servers.Delivery {
	items := make([]servers.Item, 0, len(d.Items()))
	for _, item := range d.Items() {
		items = append(items, servers.Item{
			Id:       item.ID().Bytes(),
			Name:     item.Name(),
			Quantity: item.Quantity(),
		})
	}

	resp := servers.Delivery{
		Id:          d.ID().Bytes(),
		Status:      servers.DeliveryStatus(d.Status().String()),
		Items:       items,
		TotalItems:  d.TotalItems(),
		CourierId:   toAPIID(d.CourierID()),
		PlacedAt:    d.PlacedAt(),
		AssignedAt:  d.AssignedAt(),
		FulfilledAt: d.FulfilledAt(),
	}

	if details, ok := d.PreparationDetails(); ok {
		resp.PreparationDetails = &servers.PreparationDetails{
			Sender:                        fromContactPoint(details.Sender()),
			Recipient:                     fromContactPoint(details.Recipient()),
			ExpectedDeliveryTimeInSeconds: int64(details.ExpectedDeliveryTime() / time.Second),
			CourierPayout:                 details.CourierPayout().String(),
			DistanceFee:                   details.DistanceFee().String(),
		}
	}

	return resp
}

func fromContactPoint(cp delivery.ContactPoint) servers.ContactPoint {
	return servers.ContactPoint{
		ZipCode:    cp.ZipCode(),
		Street:     cp.Street(),
		Number:     cp.Number(),
		Complement: optional(cp.Complement()),
		Name:       cp.Name(),
		Phone:      cp.Phone(),
	}
}

func fromDeliveryView(v queries.GetDeliveryQueryResponse) servers.Delivery {
	items := make([]servers.Item, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, servers.Item{
			Id:       item.ID.Bytes(),
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}

	resp := servers.Delivery{
		Id:          v.ID.Bytes(),
		Status:      servers.DeliveryStatus(v.Status),
		Items:       items,
		TotalItems:  v.TotalItems,
		CourierId:   toAPIID(v.CourierID),
		PlacedAt:    v.PlacedAt,
		AssignedAt:  v.AssignedAt,
		FulfilledAt: v.FulfilledAt,
	}

	if p := v.PreparationDetails; p != nil {
		resp.PreparationDetails = &servers.PreparationDetails{
			Sender:                        fromContactPointView(p.Sender),
			Recipient:                     fromContactPointView(p.Recipient),
			ExpectedDeliveryTimeInSeconds: int64(p.ExpectedDeliveryTime / time.Second),
			CourierPayout:                 formatMoney(p.CourierPayout),
			DistanceFee:                   formatMoney(p.DistanceFee),
		}
	}

	return resp
}

func fromContactPointView(cp queries.ContactPointView) servers.ContactPoint {
	return servers.ContactPoint{
		ZipCode:    cp.ZipCode,
		Street:     cp.Street,
		Number:     cp.Number,
		Complement: optional(cp.Complement),
		Name:       cp.Name,
		Phone:      cp.Phone,
	}
}

func toDeliveryPage(page queries.ListDeliveriesQueryResponse) servers.DeliveryPage {
	items := make([]servers.DeliverySummary, 0, len(page.Items))
	for _, s := range page.Items {
		summary := servers.DeliverySummary{
			Id:            s.ID.Bytes(),
			Status:        servers.DeliveryStatus(s.Status),
			TotalItems:    s.TotalItems,
			RecipientName: optional(s.RecipientName),
			CourierId:     toAPIID(s.CourierID),
			PlacedAt:      s.PlacedAt,
		}
		// recipient name and fee are stored together with the preparation details
		if s.RecipientName != "" {
			fee := formatMoney(s.DistanceFee)
			summary.DistanceFee = &fee
		}
		items = append(items, summary)
	}

	return servers.DeliveryPage{
		Items:         items,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
	}
}

func toAPIID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	v := id.Bytes()
	return &v
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(kernel.MoneyScale)
}
