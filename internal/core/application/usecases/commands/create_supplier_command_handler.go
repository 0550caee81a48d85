package commands

import (
	"context"

	"freight/internal/core/domain/model/supplier"
)

// CreateSupplierCommandHandler handles the business logic for supplier registration.
//
// Example:
//
//	handler := NewCreateSupplierCommandHandler(uowFactory)
//	cmd, _ := NewCreateSupplierCommand(kernel.NewUUID(), "Acme Electronics Ltd")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("supplier registration failed: %w", err)
//	}
type CreateSupplierCommandHandler struct {
	uowFactory SupplierUoWFactory
}

// NewCreateSupplierCommandHandler creates a handler for supplier registration.
// Requires a SupplierUoWFactory for transactional persistence.
func NewCreateSupplierCommandHandler(uowFactory SupplierUoWFactory) CreateSupplierCommandHandler {
	return CreateSupplierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the supplier registration command.
// Uses transaction to ensure the supplier is properly persisted or rolled back on error.
func (h *CreateSupplierCommandHandler) Handle(ctx context.Context, cmd CreateSupplierCommand) error {
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

	entity, err := supplier.NewSupplier(cmd.SupplierID(), cmd.Name())
	if err != nil {
		return err
	}

	if err = uow.SupplierRepository().Add(ctx, entity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
