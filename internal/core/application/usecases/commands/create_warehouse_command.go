package commands

import (
	"errors"

	"freight/internal/pkg/guard"
)

var (
	ErrCreateWarehouseCommandIsNotConstructed = errors.New(
		"CreateWarehouseCommand must be created via NewCreateWarehouseCommand constructor",
	)
	ErrWarehouseNameIsRequired = errors.New("warehouse name is required")
	ErrTotalCapacityIsInvalid  = errors.New("total capacity must be greater than 0")
)

// CreateWarehouseCommand represents a request to register a new warehouse
// with a fixed bin capacity. Occupancy starts at zero.
//
// Example:
//
//	cmd, err := NewCreateWarehouseCommand("KLM", 400)
//	if err != nil {
//	    return fmt.Errorf("invalid warehouse data: %w", err)
//	}
//
//	handler := NewCreateWarehouseCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create warehouse: %w", err)
//	}
type CreateWarehouseCommand struct { //nolint:recvcheck //using for validation
	name          string
	totalCapacity int

	guard guard.ConstructorGuard
}

// NewCreateWarehouseCommand creates a command to register a new warehouse.
// Validates that the name is not empty and the capacity is positive.
// Returns an error if any validation fails.
func NewCreateWarehouseCommand(name string, totalCapacity int) (CreateWarehouseCommand, error) {
	warehouseCommand := CreateWarehouseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		warehouseCommand.setName(name),
		warehouseCommand.setTotalCapacity(totalCapacity),
	); err != nil {
		return CreateWarehouseCommand{}, err
	}

	return warehouseCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateWarehouseCommandIsNotConstructed if validation fails.
func (c CreateWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrCreateWarehouseCommandIsNotConstructed)
}

// Name returns the unique warehouse name.
func (c CreateWarehouseCommand) Name() string {
	return c.name
}

// TotalCapacity returns the warehouse's bin capacity.
func (c CreateWarehouseCommand) TotalCapacity() int {
	return c.totalCapacity
}

func (c *CreateWarehouseCommand) setName(name string) error {
	if name == "" {
		return ErrWarehouseNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateWarehouseCommand) setTotalCapacity(totalCapacity int) error {
	if totalCapacity <= 0 {
		return ErrTotalCapacityIsInvalid
	}

	c.totalCapacity = totalCapacity
	return nil
}
