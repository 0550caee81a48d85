package commands

import (
	"context"

	"freight/internal/core/domain/model/shipment"
)

// CreateShipmentCommandHandler handles the business logic for shipment registration.
// Verifies the referenced supplier exists, then creates the shipment in intake status.
//
// Example:
//
//	handler := NewCreateShipmentCommandHandler(uowFactory)
//	cmd, _ := NewCreateShipmentCommand(shipmentID, supplierID, "PO-2024-0042", 12, 500)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("shipment registration failed: %w", err)
//	}
//	// Shipment is now in intake, awaiting transport planning
type CreateShipmentCommandHandler struct {
	uowFactory IntakeUoWFactory
}

// NewCreateShipmentCommandHandler creates a handler for shipment registration.
// Requires an IntakeUoWFactory so the supplier lookup and the shipment write
// share one transaction.
func NewCreateShipmentCommandHandler(uowFactory IntakeUoWFactory) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the shipment registration command.
// Fails with an object-not-found error when the supplier reference is unknown.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
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

	if _, err := uow.SupplierRepository().Get(ctx, cmd.SupplierID()); err != nil {
		return err
	}

	aggregate, err := shipment.NewShipment(
		cmd.ShipmentID(),
		cmd.SupplierID(),
		cmd.OrderReference(),
		cmd.WeekNumber(),
		cmd.ExpectedQuantity(),
	)
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
