package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrAdjustCapacityCommandIsNotConstructed = errors.New(
	"AdjustCapacityCommand must be created via NewAdjustCapacityCommand constructor",
)

// AdjustCapacityCommand represents an administrative override of a
// warehouse's occupancy, used to correct drift after physical stock counts.
// Only administrators may apply it, and a reason is mandatory because the
// override bypasses the normal reserve/release bookkeeping.
//
// Example:
//
//	admin, _ := kernel.NewActor("r.bakker", kernel.RoleAdmin)
//	cmd, err := NewAdjustCapacityCommand("KLM", 312, "stock count week 12", admin)
//	if err != nil {
//	    return fmt.Errorf("invalid adjustment: %w", err)
//	}
//
//	handler := NewAdjustCapacityCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("adjustment failed: %w", err)
//	}
type AdjustCapacityCommand struct { //nolint:recvcheck //using for validation
	warehouseName string
	binsUsed      int
	reason        string
	actor         kernel.Actor

	guard guard.ConstructorGuard
}

// NewAdjustCapacityCommand creates a command to override warehouse occupancy.
// Validates the warehouse name, requires a non-negative bin count and a
// reason, and validates the acting user. Role enforcement happens in the
// aggregate.
func NewAdjustCapacityCommand(
	warehouseName string,
	binsUsed int,
	reason string,
	actor kernel.Actor,
) (AdjustCapacityCommand, error) {
	adjustCommand := AdjustCapacityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		adjustCommand.setWarehouseName(warehouseName),
		adjustCommand.setBinsUsed(binsUsed),
		adjustCommand.setReason(reason),
		adjustCommand.setActor(actor),
	); err != nil {
		return AdjustCapacityCommand{}, err
	}

	return adjustCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdjustCapacityCommandIsNotConstructed if validation fails.
func (c AdjustCapacityCommand) Validate() error {
	return c.guard.Validate(ErrAdjustCapacityCommandIsNotConstructed)
}

// WarehouseName returns the name of the warehouse to adjust.
func (c AdjustCapacityCommand) WarehouseName() string {
	return c.warehouseName
}

// BinsUsed returns the corrected occupancy.
func (c AdjustCapacityCommand) BinsUsed() int {
	return c.binsUsed
}

// Reason returns the justification for the override.
func (c AdjustCapacityCommand) Reason() string {
	return c.reason
}

// Actor returns the administrator applying the override.
func (c AdjustCapacityCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *AdjustCapacityCommand) setWarehouseName(warehouseName string) error {
	if warehouseName == "" {
		return ErrWarehouseNameIsRequired
	}

	c.warehouseName = warehouseName
	return nil
}

func (c *AdjustCapacityCommand) setBinsUsed(binsUsed int) error {
	if binsUsed < 0 {
		return errs.NewValueIsInvalidError("binsUsed")
	}

	c.binsUsed = binsUsed
	return nil
}

func (c *AdjustCapacityCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}

func (c *AdjustCapacityCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
