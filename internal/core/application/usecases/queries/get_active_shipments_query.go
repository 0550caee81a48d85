package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetActiveShipmentsQueryIsNotConstructed = errors.New(
	"GetActiveShipmentsQuery must be created via NewGetActiveShipmentsQuery constructor",
)

// GetActiveShipmentsQuery retrieves every shipment still moving through the
// inbound workflow, meaning shipments in a non-terminal status. Stored,
// rejected, and archived shipments are excluded.
//
// Example:
//
//	query := NewGetActiveShipmentsQuery()
//	handler := NewGetActiveShipmentsQueryHandler(db)
//
//	shipments, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve shipments: %w", err)
//	}
//
//	for _, s := range shipments {
//	    fmt.Printf("%s %s week %d: %s\n", s.SupplierName, s.OrderReference, s.WeekNumber, s.Status)
//	}
type GetActiveShipmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveShipmentsQuery creates a query to retrieve all active shipments.
// This is a parameterless query that fetches the complete active workload.
func NewGetActiveShipmentsQuery() GetActiveShipmentsQuery {
	return GetActiveShipmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveShipmentsQueryIsNotConstructed if validation fails.
func (q GetActiveShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveShipmentsQueryIsNotConstructed)
}

// GetActiveShipmentsQueryResponse represents one active shipment in the read
// model, with the supplier's display name already resolved by join.
type GetActiveShipmentsQueryResponse struct {
	ID                kernel.UUID
	SupplierName      string
	OrderReference    string
	WeekNumber        int
	Status            string
	ReinspectionCount int
}
