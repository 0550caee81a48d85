package ports

import (
	"context"

	"freight/internal/core/domain/model/warehouse"
)

// WarehouseRepository defines the persistence contract for warehouse
// capacity aggregates.
type WarehouseRepository interface {
	// Add persists a new warehouse aggregate to storage.
	Add(ctx context.Context, aggregate *warehouse.Warehouse) error

	// Update persists the current occupancy of an existing warehouse together
	// with its uncommitted capacity change records.
	Update(ctx context.Context, aggregate *warehouse.Warehouse) error

	// Get retrieves a warehouse aggregate by its unique name.
	Get(ctx context.Context, name string) (*warehouse.Warehouse, error)

	// GetForUpdate retrieves a warehouse while holding an exclusive row lock
	// for the remainder of the transaction. Every occupancy mutation goes
	// through this method so that concurrent reservations against the same
	// warehouse are serialized. Fails with ErrRowLockTimeout when the lock
	// cannot be acquired within the configured bound.
	GetForUpdate(ctx context.Context, name string) (*warehouse.Warehouse, error)

	// GetAll retrieves every warehouse aggregate.
	GetAll(ctx context.Context) ([]*warehouse.Warehouse, error)
}
