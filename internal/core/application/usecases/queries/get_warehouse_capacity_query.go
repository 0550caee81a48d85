// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrGetWarehouseCapacityQueryIsNotConstructed = errors.New(
	"GetWarehouseCapacityQuery must be created via NewGetWarehouseCapacityQuery constructor",
)

// GetWarehouseCapacityQuery retrieves the current capacity figures of one
// warehouse: bins used, bins available, and utilization.
//
// Example:
//
//	query, err := NewGetWarehouseCapacityQuery("KLM")
//	if err != nil {
//	    return fmt.Errorf("invalid capacity query: %w", err)
//	}
//
//	handler := NewGetWarehouseCapacityQueryHandler(db)
//	snapshot, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to read capacity: %w", err)
//	}
//	fmt.Printf("%s: %d/%d bins used\n", snapshot.WarehouseName, snapshot.BinsUsed, snapshot.TotalCapacity)
type GetWarehouseCapacityQuery struct {
	warehouseName string

	guard guard.ConstructorGuard
}

// NewGetWarehouseCapacityQuery creates a capacity query for the named warehouse.
func NewGetWarehouseCapacityQuery(warehouseName string) (GetWarehouseCapacityQuery, error) {
	if warehouseName == "" {
		return GetWarehouseCapacityQuery{}, errs.NewValueIsRequiredError("warehouseName")
	}

	return GetWarehouseCapacityQuery{
		warehouseName: warehouseName,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetWarehouseCapacityQueryIsNotConstructed if validation fails.
func (q GetWarehouseCapacityQuery) Validate() error {
	return q.guard.Validate(ErrGetWarehouseCapacityQueryIsNotConstructed)
}

// WarehouseName returns the name of the warehouse being queried.
func (q GetWarehouseCapacityQuery) WarehouseName() string {
	return q.warehouseName
}

// GetWarehouseCapacityQueryResponse is the capacity read model for one warehouse.
type GetWarehouseCapacityQueryResponse struct {
	WarehouseName      string
	TotalCapacity      int
	BinsUsed           int
	AvailableBins      int
	UtilizationPercent float64
}
