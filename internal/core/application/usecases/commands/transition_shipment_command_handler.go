package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/warehouse"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
)

// binsPerShipment is the storage footprint of one shipment line.
const binsPerShipment = 1

// TransitionResult reports the outcome of a committed transition. Capacity is
// nil when the transition did not touch a warehouse.
type TransitionResult struct {
	NewStatus shipment.Status
	Capacity  *warehouse.CapacitySnapshot
}

// TransitionShipmentCommandHandler orchestrates shipment status transitions.
// It loads the shipment under a row lock, lets the aggregate validate and
// apply the transition, and, when the transition stores or evicts goods,
// updates the receiving warehouse's occupancy in the same transaction. A
// capacity failure rolls back everything, leaving the shipment status
// unchanged.
//
// Example:
//
//	policy := services.NewReinspectionPolicy(3)
//	handler := NewTransitionShipmentCommandHandler(uowFactory, policy)
//
//	details := shipment.TransitionDetails{Warehouse: "KLM", ReceivedQuantity: &qty}
//	cmd, _ := NewTransitionShipmentCommand(shipmentID, shipment.Stored, actor, details)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
//	fmt.Println(result.NewStatus)
type TransitionShipmentCommandHandler struct {
	uowFactory         UoWFactory
	reinspectionPolicy services.ReinspectionPolicy
}

// NewTransitionShipmentCommandHandler creates the transition orchestrator.
// Requires a UoWFactory spanning shipment and warehouse repositories and the
// re-inspection policy applied to failed-inspection retries.
func NewTransitionShipmentCommandHandler(
	uowFactory UoWFactory,
	reinspectionPolicy services.ReinspectionPolicy,
) TransitionShipmentCommandHandler {
	return TransitionShipmentCommandHandler{
		uowFactory:         uowFactory,
		reinspectionPolicy: reinspectionPolicy,
	}
}

// Handle processes the transition command.
//
// The shipment row is locked for the duration of the transaction, so
// concurrent transitions of the same shipment serialize. Warehouse occupancy
// changes go through the warehouse row lock as well, which makes the
// capacity check race-free: two shipments competing for the last bin are
// decided strictly one after the other.
func (h *TransitionShipmentCommandHandler) Handle(ctx context.Context, cmd TransitionShipmentCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return TransitionResult{}, err
	}

	if err = h.reinspectionPolicy.AuthorizeTransition(aggregate, cmd.Target()); err != nil {
		return TransitionResult{}, err
	}

	effect, err := aggregate.TransitionTo(cmd.Target(), cmd.Actor(), cmd.Details())
	if err != nil {
		return TransitionResult{}, err
	}

	capacity, err := h.applyCapacityEffect(ctx, uow, aggregate, effect, cmd)
	if err != nil {
		return TransitionResult{}, err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	return TransitionResult{NewStatus: aggregate.Status(), Capacity: capacity}, nil
}

func (h *TransitionShipmentCommandHandler) applyCapacityEffect(
	ctx context.Context,
	uow UoW,
	aggregate *shipment.Shipment,
	effect shipment.CapacityEffect,
	cmd TransitionShipmentCommand,
) (*warehouse.CapacitySnapshot, error) {
	if effect == shipment.CapacityNone {
		return nil, nil
	}

	// The aggregate resolves the warehouse name while applying stage fields,
	// so by this point it is set for both reserve and release effects.
	warehouseName := aggregate.ReceivingWarehouse()
	if warehouseName == nil {
		return nil, errs.NewValueIsRequiredError("warehouse")
	}

	warehouseRepo := uow.WarehouseRepository()
	target, err := warehouseRepo.GetForUpdate(ctx, *warehouseName)
	if err != nil {
		return nil, err
	}

	reason := fmt.Sprintf("shipment %s -> %s", aggregate.ID(), cmd.Target())
	switch effect {
	case shipment.CapacityReserve:
		err = target.Reserve(binsPerShipment, cmd.Actor(), reason)
	case shipment.CapacityRelease:
		err = target.Release(binsPerShipment, cmd.Actor(), reason)
	}
	if err != nil {
		return nil, err
	}

	if err = warehouseRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	snapshot := target.Snapshot()
	return &snapshot, nil
}
