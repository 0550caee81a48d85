package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/warehouse"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdjustCapacityCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	admin, err := kernel.NewActor("r.bakker", kernel.RoleAdmin)
	require.NoError(t, err)

	cmd, err := commands.NewAdjustCapacityCommand("KLM", 312, "stock count week 12", admin)
	require.NoError(t, err)

	testWarehouse, err := warehouse.RestoreWarehouse("KLM", 400, 300)
	require.NoError(t, err)

	warehouseRepo := new(MockWarehouseRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WarehouseRepository").Return(warehouseRepo).Once(),
		warehouseRepo.On("GetForUpdate", ctx, "KLM").Return(testWarehouse, nil).Once(),
		warehouseRepo.On("Update", ctx, mock.AnythingOfType("*warehouse.Warehouse")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockWarehouseUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdjustCapacityCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	warehouseRepo.AssertExpectations(t)
	uow.AssertExpectations(t)

	assert.Equal(t, 312, testWarehouse.BinsUsed())
	changes := testWarehouse.UncommittedChanges()
	require.Len(t, changes, 1)
	assert.Equal(t, 12, changes[0].Delta)
	assert.Equal(t, "stock count week 12", changes[0].Reason)
}

func TestAdjustCapacityCommandHandler_Handle_RoleDenied(t *testing.T) {
	ctx := t.Context()
	operator, err := kernel.NewActor("j.deboer", kernel.RoleOperator)
	require.NoError(t, err)

	cmd, err := commands.NewAdjustCapacityCommand("KLM", 312, "stock count week 12", operator)
	require.NoError(t, err)

	testWarehouse, err := warehouse.RestoreWarehouse("KLM", 400, 300)
	require.NoError(t, err)

	warehouseRepo := new(MockWarehouseRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WarehouseRepository").Return(warehouseRepo).Once(),
		warehouseRepo.On("GetForUpdate", ctx, "KLM").Return(testWarehouse, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockWarehouseUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdjustCapacityCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, kernel.ErrRoleNotPermitted)
	assert.Equal(t, 300, testWarehouse.BinsUsed())
	warehouseRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestAdjustCapacityCommandHandler_Handle_AboveCapacity(t *testing.T) {
	ctx := t.Context()
	admin, err := kernel.NewActor("r.bakker", kernel.RoleAdmin)
	require.NoError(t, err)

	cmd, err := commands.NewAdjustCapacityCommand("KLM", 500, "stock count week 12", admin)
	require.NoError(t, err)

	testWarehouse, err := warehouse.RestoreWarehouse("KLM", 400, 300)
	require.NoError(t, err)

	warehouseRepo := new(MockWarehouseRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WarehouseRepository").Return(warehouseRepo).Once(),
		warehouseRepo.On("GetForUpdate", ctx, "KLM").Return(testWarehouse, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockWarehouseUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdjustCapacityCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Equal(t, 300, testWarehouse.BinsUsed())
}

func TestAdjustCapacityCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AdjustCapacityCommand{} // not constructed properly

	factory := new(MockWarehouseUoWFactory)
	handler := commands.NewAdjustCapacityCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAdjustCapacityCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
