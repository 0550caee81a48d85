package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

const (
	minWeekNumber = 1
	maxWeekNumber = 53
)

// CreateShipmentCommand represents a request to register a new inbound
// shipment line in intake status. The supplier must already exist.
//
// Example:
//
//	shipmentID := kernel.NewUUID()
//	cmd, err := NewCreateShipmentCommand(shipmentID, supplierID, "PO-2024-0042", 12, 500)
//	if err != nil {
//	    return fmt.Errorf("invalid shipment data: %w", err)
//	}
//
//	handler := NewCreateShipmentCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create shipment: %w", err)
//	}
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID       kernel.UUID
	supplierID       kernel.UUID
	orderReference   string
	weekNumber       int
	expectedQuantity int

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to register a new shipment line.
// Validates identifiers, requires an order reference, and bounds the week
// number to the 1-53 planning range. Returns an error if any validation fails.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	supplierID kernel.UUID,
	orderReference string,
	weekNumber int,
	expectedQuantity int,
) (CreateShipmentCommand, error) {
	shipmentCommand := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipmentCommand.setShipmentID(shipmentID),
		shipmentCommand.setSupplierID(supplierID),
		shipmentCommand.setOrderReference(orderReference),
		shipmentCommand.setWeekNumber(weekNumber),
		shipmentCommand.setExpectedQuantity(expectedQuantity),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return shipmentCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateShipmentCommandIsNotConstructed if validation fails.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the unique identifier for the shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// SupplierID returns the identifier of the supplying party.
func (c CreateShipmentCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// OrderReference returns the purchase order line this shipment fulfils.
func (c CreateShipmentCommand) OrderReference() string {
	return c.orderReference
}

// WeekNumber returns the scheduling target week.
func (c CreateShipmentCommand) WeekNumber() int {
	return c.weekNumber
}

// ExpectedQuantity returns the ordered quantity.
func (c CreateShipmentCommand) ExpectedQuantity() int {
	return c.expectedQuantity
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	c.supplierID = supplierID
	return nil
}

func (c *CreateShipmentCommand) setOrderReference(orderReference string) error {
	if orderReference == "" {
		return errs.NewValueIsRequiredError("orderReference")
	}

	c.orderReference = orderReference
	return nil
}

func (c *CreateShipmentCommand) setWeekNumber(weekNumber int) error {
	if weekNumber < minWeekNumber || weekNumber > maxWeekNumber {
		return errs.NewValueIsOutOfRangeError("weekNumber", weekNumber, minWeekNumber, maxWeekNumber)
	}

	c.weekNumber = weekNumber
	return nil
}

func (c *CreateShipmentCommand) setExpectedQuantity(expectedQuantity int) error {
	if expectedQuantity <= 0 {
		return errs.NewValueIsInvalidError("expectedQuantity")
	}

	c.expectedQuantity = expectedQuantity
	return nil
}
