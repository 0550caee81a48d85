package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/guard"
)

var ErrTransitionShipmentCommandIsNotConstructed = errors.New(
	"TransitionShipmentCommand must be created via NewTransitionShipmentCommand constructor",
)

// TransitionShipmentCommand represents a request to advance a shipment to a
// new lifecycle status. Stage-specific details (inspection outcome, received
// quantity, receiving warehouse, rejection reason) travel alongside the
// target status and are validated by the shipment aggregate.
//
// Example:
//
//	actor, _ := kernel.NewActor("j.deboer", kernel.RoleOperator)
//	cmd, err := NewTransitionShipmentCommand(shipmentID, shipment.Unloading, actor, shipment.TransitionDetails{})
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//
//	handler := NewTransitionShipmentCommandHandler(uowFactory, policy)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
//	fmt.Println(result.NewStatus)
type TransitionShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	target     shipment.Status
	actor      kernel.Actor
	details    shipment.TransitionDetails

	guard guard.ConstructorGuard
}

// NewTransitionShipmentCommand creates a command to advance a shipment's status.
// Validates the shipment ID, the target status, and the acting user.
// Stage detail requirements are enforced by the aggregate during handling.
func NewTransitionShipmentCommand(
	shipmentID kernel.UUID,
	target shipment.Status,
	actor kernel.Actor,
	details shipment.TransitionDetails,
) (TransitionShipmentCommand, error) {
	transitionCommand := TransitionShipmentCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setShipmentID(shipmentID),
		transitionCommand.setTarget(target),
		transitionCommand.setActor(actor),
	); err != nil {
		return TransitionShipmentCommand{}, err
	}

	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionShipmentCommandIsNotConstructed if validation fails.
func (c TransitionShipmentCommand) Validate() error {
	return c.guard.Validate(ErrTransitionShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to transition.
func (c TransitionShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Target returns the requested destination status.
func (c TransitionShipmentCommand) Target() shipment.Status {
	return c.target
}

// Actor returns the user requesting the transition.
func (c TransitionShipmentCommand) Actor() kernel.Actor {
	return c.actor
}

// Details returns the stage-specific payload for the transition.
func (c TransitionShipmentCommand) Details() shipment.TransitionDetails {
	return c.details
}

func (c *TransitionShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *TransitionShipmentCommand) setTarget(target shipment.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionShipmentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if !actor.Role().CanMutateShipments() {
		return kernel.ErrRoleNotPermitted
	}

	c.actor = actor
	return nil
}
