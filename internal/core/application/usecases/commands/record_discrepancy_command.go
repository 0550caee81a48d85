package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrRecordDiscrepancyCommandIsNotConstructed = errors.New(
	"RecordDiscrepancyCommand must be created via NewRecordDiscrepancyCommand constructor",
)

// RecordDiscrepancyCommand represents a request to record a quantity
// discrepancy found while receiving goods. Recording a discrepancy does not
// change the shipment's status; it captures the counted quantity and a note
// for the audit trail.
//
// Example:
//
//	actor, _ := kernel.NewActor("m.visser", kernel.RoleOperator)
//	cmd, err := NewRecordDiscrepancyCommand(shipmentID, 480, "two cartons water damaged", actor)
//	if err != nil {
//	    return fmt.Errorf("invalid discrepancy report: %w", err)
//	}
//
//	handler := NewRecordDiscrepancyCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to record discrepancy: %w", err)
//	}
type RecordDiscrepancyCommand struct { //nolint:recvcheck //using for validation
	shipmentID       kernel.UUID
	receivedQuantity int
	note             string
	actor            kernel.Actor

	guard guard.ConstructorGuard
}

// NewRecordDiscrepancyCommand creates a command to record a receiving
// discrepancy. The counted quantity must be non-negative and a note is
// required so the audit trail explains the difference.
func NewRecordDiscrepancyCommand(
	shipmentID kernel.UUID,
	receivedQuantity int,
	note string,
	actor kernel.Actor,
) (RecordDiscrepancyCommand, error) {
	discrepancyCommand := RecordDiscrepancyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		discrepancyCommand.setShipmentID(shipmentID),
		discrepancyCommand.setReceivedQuantity(receivedQuantity),
		discrepancyCommand.setNote(note),
		discrepancyCommand.setActor(actor),
	); err != nil {
		return RecordDiscrepancyCommand{}, err
	}

	return discrepancyCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecordDiscrepancyCommandIsNotConstructed if validation fails.
func (c RecordDiscrepancyCommand) Validate() error {
	return c.guard.Validate(ErrRecordDiscrepancyCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment being received.
func (c RecordDiscrepancyCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ReceivedQuantity returns the counted quantity.
func (c RecordDiscrepancyCommand) ReceivedQuantity() int {
	return c.receivedQuantity
}

// Note returns the explanation accompanying the discrepancy.
func (c RecordDiscrepancyCommand) Note() string {
	return c.note
}

// Actor returns the user reporting the discrepancy.
func (c RecordDiscrepancyCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *RecordDiscrepancyCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *RecordDiscrepancyCommand) setReceivedQuantity(receivedQuantity int) error {
	if receivedQuantity < 0 {
		return errs.NewValueIsInvalidError("receivedQuantity")
	}

	c.receivedQuantity = receivedQuantity
	return nil
}

func (c *RecordDiscrepancyCommand) setNote(note string) error {
	if note == "" {
		return errs.NewValueIsRequiredError("note")
	}

	c.note = note
	return nil
}

func (c *RecordDiscrepancyCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if !actor.Role().CanMutateShipments() {
		return kernel.ErrRoleNotPermitted
	}

	c.actor = actor
	return nil
}
