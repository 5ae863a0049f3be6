package http

import (
	"context"

	"deliverytracking/internal/core/application/usecases/commands"
	"deliverytracking/internal/core/application/usecases/queries"
	"deliverytracking/internal/core/domain/model/delivery"

	"github.com/stretchr/testify/mock"
)

type MockPreparationService struct {
	mock.Mock
}

func (m *MockPreparationService) Draft(ctx context.Context, cmd commands.DraftDeliveryCommand) (*delivery.Delivery, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockPreparationService) Edit(ctx context.Context, cmd commands.EditDeliveryCommand) (*delivery.Delivery, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

type MockCheckpointService struct {
	mock.Mock
}

func (m *MockCheckpointService) Place(ctx context.Context, cmd commands.PlaceDeliveryCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockCheckpointService) PickUp(ctx context.Context, cmd commands.PickUpDeliveryCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockCheckpointService) Complete(ctx context.Context, cmd commands.CompleteDeliveryCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockGetDeliveryHandler struct {
	mock.Mock
}

func (m *MockGetDeliveryHandler) Handle(
	ctx context.Context,
	query queries.GetDeliveryQuery,
) (queries.GetDeliveryQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetDeliveryQueryResponse), args.Error(1)
}

type MockListDeliveriesHandler struct {
	mock.Mock
}

func (m *MockListDeliveriesHandler) Handle(
	ctx context.Context,
	query queries.ListDeliveriesQuery,
) (queries.ListDeliveriesQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.ListDeliveriesQueryResponse), args.Error(1)
}
