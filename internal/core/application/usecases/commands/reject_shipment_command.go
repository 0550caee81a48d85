package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrRejectShipmentCommandIsNotConstructed = errors.New(
	"RejectShipmentCommand must be created via NewRejectShipmentCommand constructor",
)

// RejectShipmentCommand represents a request to reject a shipment with a
// mandatory reason. Optionally archives the shipment in the same operation,
// which closes it out in a single call instead of two.
//
// Example:
//
//	actor, _ := kernel.NewActor("j.deboer", kernel.RoleOperator)
//	cmd, err := NewRejectShipmentCommand(shipmentID, "damaged packaging on 14 pallets", actor, true)
//	if err != nil {
//	    return fmt.Errorf("invalid rejection request: %w", err)
//	}
//
//	handler := NewRejectShipmentCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("rejection failed: %w", err)
//	}
type RejectShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	reason      string
	actor       kernel.Actor
	autoArchive bool

	guard guard.ConstructorGuard
}

// NewRejectShipmentCommand creates a command to reject a shipment.
// Validates the shipment ID and the acting user and requires a non-empty
// reason. Set autoArchive to move the shipment straight to archived after
// the rejection is applied.
func NewRejectShipmentCommand(
	shipmentID kernel.UUID,
	reason string,
	actor kernel.Actor,
	autoArchive bool,
) (RejectShipmentCommand, error) {
	rejectCommand := RejectShipmentCommand{
		autoArchive: autoArchive,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rejectCommand.setShipmentID(shipmentID),
		rejectCommand.setReason(reason),
		rejectCommand.setActor(actor),
	); err != nil {
		return RejectShipmentCommand{}, err
	}

	return rejectCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRejectShipmentCommandIsNotConstructed if validation fails.
func (c RejectShipmentCommand) Validate() error {
	return c.guard.Validate(ErrRejectShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to reject.
func (c RejectShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Reason returns the rejection reason.
func (c RejectShipmentCommand) Reason() string {
	return c.reason
}

// Actor returns the user requesting the rejection.
func (c RejectShipmentCommand) Actor() kernel.Actor {
	return c.actor
}

// AutoArchive reports whether the shipment should be archived immediately
// after rejection.
func (c RejectShipmentCommand) AutoArchive() bool {
	return c.autoArchive
}

func (c *RejectShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *RejectShipmentCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}

func (c *RejectShipmentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if !actor.Role().CanMutateShipments() {
		return kernel.ErrRoleNotPermitted
	}

	c.actor = actor
	return nil
}
