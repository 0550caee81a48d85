package commands

import (
	"context"
)

// RecordDiscrepancyCommandHandler handles receiving discrepancy reports.
// The aggregate only accepts a discrepancy while goods are being received,
// so reports against shipments in any other status fail without writes.
type RecordDiscrepancyCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewRecordDiscrepancyCommandHandler creates a handler for discrepancy reports.
// Requires a ShipmentUoWFactory for transactional persistence.
func NewRecordDiscrepancyCommandHandler(uowFactory ShipmentUoWFactory) RecordDiscrepancyCommandHandler {
	return RecordDiscrepancyCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the discrepancy command.
func (h *RecordDiscrepancyCommandHandler) Handle(ctx context.Context, cmd RecordDiscrepancyCommand) error {
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

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = aggregate.RecordDiscrepancy(cmd.ReceivedQuantity(), cmd.Note(), cmd.Actor()); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
