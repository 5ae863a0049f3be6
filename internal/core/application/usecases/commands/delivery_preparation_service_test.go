package commands_test

import (
	"testing"
	"time"

	"deliverytracking/internal/core/application/usecases/commands"
	"deliverytracking/internal/core/domain/model/delivery"
	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/ports"
	"deliverytracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validInput() commands.PreparationInput {
	return commands.PreparationInput{
		Sender: commands.ContactPointInput{
			ZipCode: "01310-100", Street: "Av. Paulista", Number: "1000",
			Complement: "apt 12", Name: "Alice", Phone: "+55 11 99999-0000",
		},
		Recipient: commands.ContactPointInput{
			ZipCode: "20040-002", Street: "Rua do Ouvidor", Number: "50",
			Name: "Bob", Phone: "+55 21 98888-0000",
		},
		Items: []commands.ItemInput{{Name: "Book", Quantity: 1}},
	}
}

var defaultEstimate = ports.DeliveryEstimate{EstimatedTime: 3 * time.Hour, DistanceInKm: 3.1}

type preparationFixture struct {
	repo       *MockDeliveryRepository
	uow        *MockDeliveryUoW
	factory    *MockDeliveryUoWFactory
	estimation *MockEstimationService
	payout     *MockPayoutService
	service    commands.DeliveryPreparationService
}

func newPreparationFixture() *preparationFixture {
	f := &preparationFixture{
		repo:       new(MockDeliveryRepository),
		uow:        new(MockDeliveryUoW),
		factory:    new(MockDeliveryUoWFactory),
		estimation: new(MockEstimationService),
		payout:     new(MockPayoutService),
	}
	f.service = commands.NewDeliveryPreparationService(f.factory, f.estimation, f.payout)
	return f
}

func (f *preparationFixture) assertExpectations(t *testing.T) {
	f.repo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
	f.estimation.AssertExpectations(t)
	f.payout.AssertExpectations(t)
}

func TestDeliveryPreparationService_Draft_Success(t *testing.T) {
	ctx := t.Context()
	f := newPreparationFixture()
	payout, _ := kernel.MoneyFromString("15.00")

	f.estimation.On("Estimate", ctx, mock.Anything, mock.Anything).Return(defaultEstimate, nil).Once()
	f.payout.On("CalculatePayout", ctx, 3.1).Return(payout, nil).Once()
	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("DeliveryRepository").Return(f.repo).Once(),
		f.repo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	d, err := f.service.Draft(ctx, commands.NewDraftDeliveryCommand(validInput()))

	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, delivery.StatusDraft, d.Status())

	details, ok := d.PreparationDetails()
	require.True(t, ok)
	assert.Equal(t, "9.30", details.DistanceFee().String())
	assert.Equal(t, "15.00", details.CourierPayout().String())
	assert.Equal(t, 3*time.Hour, details.ExpectedDeliveryTime())
	assert.Equal(t, "Alice", details.Sender().Name())
	assert.Equal(t, "Bob", details.Recipient().Name())

	items := d.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Book", items[0].Name())
	assert.Equal(t, 1, items[0].Quantity())

	f.assertExpectations(t)
}

func TestDeliveryPreparationService_Draft_PayoutTimeout(t *testing.T) {
	ctx := t.Context()
	f := newPreparationFixture()

	f.estimation.On("Estimate", ctx, mock.Anything, mock.Anything).Return(defaultEstimate, nil).Once()
	f.payout.On("CalculatePayout", ctx, 3.1).
		Return(kernel.Money{}, errs.NewGatewayTimeoutError("courier payout")).Once()

	d, err := f.service.Draft(ctx, commands.NewDraftDeliveryCommand(validInput()))

	require.ErrorIs(t, err, errs.ErrGatewayTimeout)
	assert.Nil(t, d)
	f.factory.AssertNotCalled(t, "Create")
	f.repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestDeliveryPreparationService_Draft_CircuitOpen(t *testing.T) {
	ctx := t.Context()
	f := newPreparationFixture()

	f.estimation.On("Estimate", ctx, mock.Anything, mock.Anything).Return(defaultEstimate, nil).Once()
	f.payout.On("CalculatePayout", ctx, 3.1).
		Return(kernel.Money{}, errs.NewBadGatewayError("courier payout")).Once()

	d, err := f.service.Draft(ctx, commands.NewDraftDeliveryCommand(validInput()))

	require.ErrorIs(t, err, errs.ErrBadGateway)
	assert.Nil(t, d)
	f.repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestDeliveryPreparationService_Draft_EstimationFails(t *testing.T) {
	ctx := t.Context()
	f := newPreparationFixture()

	f.estimation.On("Estimate", ctx, mock.Anything, mock.Anything).
		Return(ports.DeliveryEstimate{}, errs.NewGatewayTimeoutError("delivery estimation")).Once()

	_, err := f.service.Draft(ctx, commands.NewDraftDeliveryCommand(validInput()))

	require.ErrorIs(t, err, errs.ErrGatewayTimeout)
	f.payout.AssertNotCalled(t, "CalculatePayout", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestDeliveryPreparationService_Draft_InvalidContactPoint(t *testing.T) {
	ctx := t.Context()
	f := newPreparationFixture()
	input := validInput()
	input.Recipient.Phone = ""

	_, err := f.service.Draft(ctx, commands.NewDraftDeliveryCommand(input))

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "recipient")
	f.estimation.AssertNotCalled(t, "Estimate", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestDeliveryPreparationService_Draft_InvalidItem(t *testing.T) {
	ctx := t.Context()
	f := newPreparationFixture()
	input := validInput()
	input.Items = append(input.Items, commands.ItemInput{Name: "Lamp", Quantity: 0})
	payout, _ := kernel.MoneyFromString("15.00")

	f.estimation.On("Estimate", ctx, mock.Anything, mock.Anything).Return(defaultEstimate, nil).Once()
	f.payout.On("CalculatePayout", ctx, 3.1).Return(payout, nil).Once()

	_, err := f.service.Draft(ctx, commands.NewDraftDeliveryCommand(input))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "item 1")
	f.factory.AssertNotCalled(t, "Create")
	f.assertExpectations(t)
}

func TestDeliveryPreparationService_Draft_AddFails(t *testing.T) {
	ctx := t.Context()
	f := newPreparationFixture()
	payout, _ := kernel.MoneyFromString("15.00")
	dbErr := assert.AnError

	f.estimation.On("Estimate", ctx, mock.Anything, mock.Anything).Return(defaultEstimate, nil).Once()
	f.payout.On("CalculatePayout", ctx, 3.1).Return(payout, nil).Once()
	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("DeliveryRepository").Return(f.repo).Once(),
		f.repo.On("Add", ctx, mock.Anything).Return(dbErr).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	d, err := f.service.Draft(ctx, commands.NewDraftDeliveryCommand(validInput()))

	require.ErrorIs(t, err, dbErr)
	assert.Nil(t, d)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assertExpectations(t)
}

func TestDeliveryPreparationService_Draft_NotConstructedCommand(t *testing.T) {
	f := newPreparationFixture()

	_, err := f.service.Draft(t.Context(), commands.DraftDeliveryCommand{})

	require.ErrorIs(t, err, commands.ErrDraftDeliveryCommandIsNotConstructed)
	f.assertExpectations(t)
}

func TestDeliveryPreparationService_Edit_Success(t *testing.T) {
	ctx := t.Context()
	f := newPreparationFixture()
	payout, _ := kernel.MoneyFromString("20.00")

	existing := delivery.Draft()
	_, err := existing.AddItem("Old", 7)
	require.NoError(t, err)

	input := validInput()
	input.Items = []commands.ItemInput{{Name: "Lamp", Quantity: 2}, {Name: "Pen", Quantity: 3}}
	cmd, err := commands.NewEditDeliveryCommand(existing.ID(), input)
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("DeliveryRepository").Return(f.repo).Once(),
		f.repo.On("Get", ctx, existing.ID()).Return(existing, nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
		f.estimation.On("Estimate", ctx, mock.Anything, mock.Anything).Return(defaultEstimate, nil).Once(),
		f.payout.On("CalculatePayout", ctx, 3.1).Return(payout, nil).Once(),
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("DeliveryRepository").Return(f.repo).Once(),
		f.repo.On("Get", ctx, existing.ID()).Return(existing, nil).Once(),
		f.repo.On("Update", ctx, existing).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	d, err := f.service.Edit(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, d.ID().IsEqual(existing.ID()))
	items := d.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Lamp", items[0].Name())
	assert.Equal(t, 5, d.TotalItems())
	details, ok := d.PreparationDetails()
	require.True(t, ok)
	assert.Equal(t, "20.00", details.CourierPayout().String())
	f.assertExpectations(t)
}

func TestDeliveryPreparationService_Edit_NotFoundWinsOverUpstreamFailure(t *testing.T) {
	ctx := t.Context()
	f := newPreparationFixture()
	id := kernel.NewUUID()
	cmd, err := commands.NewEditDeliveryCommand(id, validInput())
	require.NoError(t, err)

	f.estimation.On("Estimate", ctx, mock.Anything, mock.Anything).Return(defaultEstimate, nil).Maybe()
	f.payout.On("CalculatePayout", ctx, mock.Anything).
		Return(kernel.Money{}, errs.NewBadGatewayError("courier payout")).Maybe()
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("DeliveryRepository").Return(f.repo).Once()
	f.repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("delivery", id.String())).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	d, err := f.service.Edit(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.NotErrorIs(t, err, errs.ErrBadGateway)
	assert.Nil(t, d)
	f.estimation.AssertNotCalled(t, "Estimate", mock.Anything, mock.Anything, mock.Anything)
	f.payout.AssertNotCalled(t, "CalculatePayout", mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assertExpectations(t)
}

func TestDeliveryPreparationService_Edit_PlacedDelivery(t *testing.T) {
	ctx := t.Context()
	f := newPreparationFixture()
	payout, _ := kernel.MoneyFromString("20.00")

	placed := delivery.Draft()
	details, err := delivery.NewPreparationDetails(
		mustContactPoint(t), mustContactPoint(t), time.Hour, payout, payout)
	require.NoError(t, err)
	require.NoError(t, placed.EditPreparationDetails(details))
	_, err = placed.AddItem("Book", 1)
	require.NoError(t, err)
	require.NoError(t, placed.Place())

	cmd, err := commands.NewEditDeliveryCommand(placed.ID(), validInput())
	require.NoError(t, err)

	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("DeliveryRepository").Return(f.repo).Once()
	f.repo.On("Get", ctx, placed.ID()).Return(placed, nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	_, err = f.service.Edit(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrDomainInvariantViolation)
	assert.Equal(t, delivery.StatusWaitingForCourier, placed.Status())
	assert.Len(t, placed.Items(), 1)
	f.estimation.AssertNotCalled(t, "Estimate", mock.Anything, mock.Anything, mock.Anything)
	f.payout.AssertNotCalled(t, "CalculatePayout", mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestDeliveryPreparationService_Edit_PlacedWhileUpstreamsAnswered(t *testing.T) {
	ctx := t.Context()
	f := newPreparationFixture()
	payout, _ := kernel.MoneyFromString("20.00")

	draft := delivery.Draft()
	placed := delivery.Draft()
	details, err := delivery.NewPreparationDetails(
		mustContactPoint(t), mustContactPoint(t), time.Hour, payout, payout)
	require.NoError(t, err)
	require.NoError(t, placed.EditPreparationDetails(details))
	_, err = placed.AddItem("Book", 1)
	require.NoError(t, err)
	require.NoError(t, placed.Place())

	cmd, err := commands.NewEditDeliveryCommand(draft.ID(), validInput())
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("DeliveryRepository").Return(f.repo).Once(),
		f.repo.On("Get", ctx, draft.ID()).Return(draft, nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
		f.estimation.On("Estimate", ctx, mock.Anything, mock.Anything).Return(defaultEstimate, nil).Once(),
		f.payout.On("CalculatePayout", ctx, 3.1).Return(payout, nil).Once(),
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("DeliveryRepository").Return(f.repo).Once(),
		f.repo.On("Get", ctx, draft.ID()).Return(placed, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = f.service.Edit(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrDomainInvariantViolation)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func mustContactPoint(t *testing.T) delivery.ContactPoint {
	t.Helper()
	cp, err := delivery.NewContactPoint("01310-100", "Av. Paulista", "1000", "", "Alice", "555")
	require.NoError(t, err)
	return cp
}
