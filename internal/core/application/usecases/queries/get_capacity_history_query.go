package queries

import (
	"errors"
	"time"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrGetCapacityHistoryQueryIsNotConstructed = errors.New(
	"GetCapacityHistoryQuery must be created via NewGetCapacityHistoryQuery constructor",
)

// GetCapacityHistoryQuery retrieves the append-only capacity change ledger of
// one warehouse, newest first. Every reserve, release, and administrative
// override appears as one line, so the history fully explains the current
// occupancy figure.
type GetCapacityHistoryQuery struct {
	warehouseName string
	limit         int

	guard guard.ConstructorGuard
}

// NewGetCapacityHistoryQuery creates a history query for the named warehouse.
// A non-positive limit returns the full ledger.
func NewGetCapacityHistoryQuery(warehouseName string, limit int) (GetCapacityHistoryQuery, error) {
	if warehouseName == "" {
		return GetCapacityHistoryQuery{}, errs.NewValueIsRequiredError("warehouseName")
	}
	if limit < 0 {
		limit = 0
	}

	return GetCapacityHistoryQuery{
		warehouseName: warehouseName,
		limit:         limit,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCapacityHistoryQueryIsNotConstructed if validation fails.
func (q GetCapacityHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetCapacityHistoryQueryIsNotConstructed)
}

// WarehouseName returns the name of the warehouse being queried.
func (q GetCapacityHistoryQuery) WarehouseName() string {
	return q.warehouseName
}

// Limit returns the maximum number of ledger lines to return; 0 means all.
func (q GetCapacityHistoryQuery) Limit() int {
	return q.limit
}

// GetCapacityHistoryQueryResponse is one line of the capacity change ledger.
type GetCapacityHistoryQueryResponse struct {
	WarehouseName string
	PreviousUsed  int
	NewUsed       int
	Delta         int
	Actor         string
	Reason        string
	ChangedAt     time.Time
}
