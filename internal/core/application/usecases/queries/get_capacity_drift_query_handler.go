package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetCapacityDriftQueryHandler runs the reconciliation read used by the
// periodic capacity check. One aggregate query covers every warehouse, so the
// job stays cheap regardless of ledger size.
type GetCapacityDriftQueryHandler struct {
	db *gorm.DB
}

// NewGetCapacityDriftQueryHandler creates a handler for drift detection.
// Requires a GORM database connection for query execution.
func NewGetCapacityDriftQueryHandler(db *gorm.DB) GetCapacityDriftQueryHandler {
	return GetCapacityDriftQueryHandler{db: db}
}

// Handle compares each warehouse's occupancy counter with the sum of its
// ledger deltas. Warehouses with no ledger lines yet compare against zero.
func (h GetCapacityDriftQueryHandler) Handle(
	ctx context.Context,
	query GetCapacityDriftQuery,
) ([]GetCapacityDriftQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	results := make([]GetCapacityDriftQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			w.name,
			w.bins_used,
			COALESCE(SUM(h.delta), 0) AS ledger_sum
		FROM warehouses w
		LEFT JOIN warehouse_capacity_history h ON h.warehouse_name = w.name
		GROUP BY w.name, w.bins_used
		ORDER BY w.name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var result GetCapacityDriftQueryResponse
		err = rows.Scan(&result.WarehouseName, &result.BinsUsed, &result.LedgerSum)
		if err != nil {
			return nil, err
		}

		result.Drift = result.BinsUsed - result.LedgerSum
		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
