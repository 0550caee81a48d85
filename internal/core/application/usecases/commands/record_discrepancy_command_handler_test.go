package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordDiscrepancyCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	shipmentID := kernel.NewUUID()
	actor, err := kernel.NewActor("m.visser", kernel.RoleOperator)
	require.NoError(t, err)

	cmd, err := commands.NewRecordDiscrepancyCommand(shipmentID, 480, "two cartons water damaged", actor)
	require.NoError(t, err)

	testShipment := restoredShipment(t, shipmentID, shipment.ReceivingGoods)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetForUpdate", ctx, shipmentID).Return(testShipment, nil).Once(),
		shipmentRepo.On("Update", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecordDiscrepancyCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)

	// Status is unchanged; the counted quantity and discrepancy flag are recorded.
	assert.Equal(t, shipment.ReceivingGoods, testShipment.Status())
	require.NotNil(t, testShipment.ReceivedQuantity())
	assert.Equal(t, 480, *testShipment.ReceivedQuantity())
	assert.True(t, testShipment.HasDiscrepancy())
}

func TestRecordDiscrepancyCommandHandler_Handle_WrongStatus(t *testing.T) {
	ctx := t.Context()
	shipmentID := kernel.NewUUID()
	actor, err := kernel.NewActor("m.visser", kernel.RoleOperator)
	require.NoError(t, err)

	cmd, err := commands.NewRecordDiscrepancyCommand(shipmentID, 480, "two cartons water damaged", actor)
	require.NoError(t, err)

	testShipment := restoredShipment(t, shipmentID, shipment.InWarehouse)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetForUpdate", ctx, shipmentID).Return(testShipment, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecordDiscrepancyCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, shipment.ErrDiscrepancyOutsideReceiving)
	shipmentRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestRecordDiscrepancyCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RecordDiscrepancyCommand{} // not constructed properly

	factory := new(MockShipmentUoWFactory)
	handler := commands.NewRecordDiscrepancyCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrRecordDiscrepancyCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
