package queries

import (
	"errors"

	"freight/internal/pkg/guard"
)

var ErrGetCapacityDriftQueryIsNotConstructed = errors.New(
	"GetCapacityDriftQuery must be created via NewGetCapacityDriftQuery constructor",
)

// GetCapacityDriftQuery compares every warehouse's occupancy counter against
// the sum of its capacity ledger deltas. The two are written in the same
// transaction and should never diverge; a non-zero drift indicates a
// bookkeeping bug or manual database edits and is worth an alert.
type GetCapacityDriftQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCapacityDriftQuery creates a query to detect occupancy/ledger drift.
func NewGetCapacityDriftQuery() GetCapacityDriftQuery {
	return GetCapacityDriftQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCapacityDriftQueryIsNotConstructed if validation fails.
func (q GetCapacityDriftQuery) Validate() error {
	return q.guard.Validate(ErrGetCapacityDriftQueryIsNotConstructed)
}

// GetCapacityDriftQueryResponse reports one warehouse's occupancy counter
// next to its ledger sum. Drift is BinsUsed minus LedgerSum; zero when the
// books balance.
type GetCapacityDriftQueryResponse struct {
	WarehouseName string
	BinsUsed      int
	LedgerSum     int
	Drift         int
}
