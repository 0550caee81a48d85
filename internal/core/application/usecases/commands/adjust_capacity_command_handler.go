package commands

import (
	"context"
)

// AdjustCapacityCommandHandler handles administrative occupancy overrides.
// The warehouse row stays locked while the override is applied, so manual
// corrections never interleave with shipment-driven reservations.
type AdjustCapacityCommandHandler struct {
	uowFactory WarehouseUoWFactory
}

// NewAdjustCapacityCommandHandler creates a handler for capacity overrides.
// Requires a WarehouseUoWFactory for transactional persistence.
func NewAdjustCapacityCommandHandler(uowFactory WarehouseUoWFactory) AdjustCapacityCommandHandler {
	return AdjustCapacityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the capacity override command.
func (h *AdjustCapacityCommandHandler) Handle(ctx context.Context, cmd AdjustCapacityCommand) error {
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

	warehouseRepo := uow.WarehouseRepository()
	aggregate, err := warehouseRepo.GetForUpdate(ctx, cmd.WarehouseName())
	if err != nil {
		return err
	}

	if err = aggregate.AdjustTo(cmd.BinsUsed(), cmd.Actor(), cmd.Reason()); err != nil {
		return err
	}

	if err = warehouseRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
