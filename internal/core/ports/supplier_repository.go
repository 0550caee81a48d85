package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/supplier"
)

// SupplierRepository defines the persistence contract for supplier entities.
type SupplierRepository interface {
	// Add persists a new supplier to storage.
	Add(ctx context.Context, entity *supplier.Supplier) error

	// Get retrieves a supplier by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*supplier.Supplier, error)
}
