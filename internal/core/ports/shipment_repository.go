// Package ports defines repository interfaces for the freight domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
)

// ErrRowLockTimeout indicates that a row lock could not be acquired within
// the configured wait bound. The operation was rolled back and callers decide
// whether to retry. The core never retries internally, since a blind retry
// of a transition could double-apply side effects.
var ErrRowLockTimeout = errors.New("row lock wait timed out")

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate together with
	// its uncommitted history entries. The write carries an optimistic version
	// check: if the persisted row's version no longer matches the version the
	// aggregate was loaded with, Update fails with errs.ErrVersionIsInvalid
	// and nothing is written.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetForUpdate retrieves a shipment while holding an exclusive row lock
	// for the remainder of the transaction, serializing concurrent transitions
	// of the same shipment. Fails with ErrRowLockTimeout when the lock cannot
	// be acquired within the configured bound.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetAllActive retrieves shipments that have not reached a terminal state.
	GetAllActive(ctx context.Context) ([]*shipment.Shipment, error)
}
