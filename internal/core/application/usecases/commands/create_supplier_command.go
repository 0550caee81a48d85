package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrCreateSupplierCommandIsNotConstructed = errors.New(
		"CreateSupplierCommand must be created via NewCreateSupplierCommand constructor",
	)
	ErrSupplierNameIsRequired = errors.New("supplier name is required")
)

// CreateSupplierCommand represents a request to register a new supplier.
// Shipments reference suppliers by identifier, so a supplier must exist
// before any of its shipments can be registered.
//
// Example:
//
//	supplierID := kernel.NewUUID()
//	cmd, err := NewCreateSupplierCommand(supplierID, "Acme Electronics Ltd")
//	if err != nil {
//	    return fmt.Errorf("invalid supplier data: %w", err)
//	}
//
//	handler := NewCreateSupplierCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create supplier: %w", err)
//	}
type CreateSupplierCommand struct { //nolint:recvcheck //using for validation
	supplierID kernel.UUID
	name       string

	guard guard.ConstructorGuard
}

// NewCreateSupplierCommand creates a command to register a new supplier.
// Validates that the supplier ID is valid and the name is not empty.
// Returns an error if any validation fails.
func NewCreateSupplierCommand(supplierID kernel.UUID, name string) (CreateSupplierCommand, error) {
	supplierCommand := CreateSupplierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		supplierCommand.setSupplierID(supplierID),
		supplierCommand.setName(name),
	); err != nil {
		return CreateSupplierCommand{}, err
	}

	return supplierCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateSupplierCommandIsNotConstructed if validation fails.
func (c CreateSupplierCommand) Validate() error {
	return c.guard.Validate(ErrCreateSupplierCommandIsNotConstructed)
}

// SupplierID returns the unique identifier for the supplier.
func (c CreateSupplierCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// Name returns the supplier's display name.
func (c CreateSupplierCommand) Name() string {
	return c.name
}

func (c *CreateSupplierCommand) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	c.supplierID = supplierID
	return nil
}

func (c *CreateSupplierCommand) setName(name string) error {
	if name == "" {
		return ErrSupplierNameIsRequired
	}

	c.name = name
	return nil
}
