package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"
)

// RejectShipmentCommandHandler handles shipment rejection.
// Rejection is only legal from the statuses the lifecycle allows it from;
// the aggregate enforces that. When the command asks for auto-archival the
// handler chains the archive transition inside the same transaction, so a
// rejected-but-not-archived state is never persisted for such requests.
type RejectShipmentCommandHandler struct {
	uowFactory UoWFactory
}

// NewRejectShipmentCommandHandler creates a handler for shipment rejection.
// Requires a UoWFactory spanning shipment and warehouse repositories since a
// rejection can release previously reserved bins.
func NewRejectShipmentCommandHandler(uowFactory UoWFactory) RejectShipmentCommandHandler {
	return RejectShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rejection command.
func (h *RejectShipmentCommandHandler) Handle(ctx context.Context, cmd RejectShipmentCommand) error {
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

	effect, err := aggregate.Reject(cmd.Reason(), cmd.Actor())
	if err != nil {
		return err
	}

	if err = h.applyCapacityEffect(ctx, uow, aggregate, effect, cmd); err != nil {
		return err
	}

	if cmd.AutoArchive() {
		details := shipment.TransitionDetails{Note: "archived together with rejection"}
		if _, err = aggregate.TransitionTo(shipment.Archived, cmd.Actor(), details); err != nil {
			return err
		}
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func (h *RejectShipmentCommandHandler) applyCapacityEffect(
	ctx context.Context,
	uow UoW,
	aggregate *shipment.Shipment,
	effect shipment.CapacityEffect,
	cmd RejectShipmentCommand,
) error {
	if effect == shipment.CapacityNone {
		return nil
	}

	warehouseName := aggregate.ReceivingWarehouse()
	if warehouseName == nil {
		return errs.NewValueIsRequiredError("warehouse")
	}

	warehouseRepo := uow.WarehouseRepository()
	target, err := warehouseRepo.GetForUpdate(ctx, *warehouseName)
	if err != nil {
		return err
	}

	reason := fmt.Sprintf("shipment %s rejected", aggregate.ID())
	if err = target.Release(binsPerShipment, cmd.Actor(), reason); err != nil {
		return err
	}

	return warehouseRepo.Update(ctx, target)
}
