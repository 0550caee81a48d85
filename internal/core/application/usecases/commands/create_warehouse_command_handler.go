package commands

import (
	"context"

	"freight/internal/core/domain/model/warehouse"
)

// CreateWarehouseCommandHandler handles the business logic for warehouse registration.
// New warehouses start with zero bins occupied.
type CreateWarehouseCommandHandler struct {
	uowFactory WarehouseUoWFactory
}

// NewCreateWarehouseCommandHandler creates a handler for warehouse registration.
// Requires a WarehouseUoWFactory for transactional persistence.
func NewCreateWarehouseCommandHandler(uowFactory WarehouseUoWFactory) CreateWarehouseCommandHandler {
	return CreateWarehouseCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the warehouse registration command.
// Uses transaction to ensure the warehouse is properly persisted or rolled back on error.
func (h *CreateWarehouseCommandHandler) Handle(ctx context.Context, cmd CreateWarehouseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := warehouse.NewWarehouse(cmd.Name(), cmd.TotalCapacity())
	if err != nil {
		return err
	}

	if err = uow.WarehouseRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
