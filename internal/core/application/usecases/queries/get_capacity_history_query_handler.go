package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetCapacityHistoryQueryHandler reads the capacity change ledger from the
// database. Uses direct SQL queries for optimal read performance in the CQRS
// pattern.
type GetCapacityHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetCapacityHistoryQueryHandler creates a handler for ledger queries.
// Requires a GORM database connection for query execution.
func NewGetCapacityHistoryQueryHandler(db *gorm.DB) GetCapacityHistoryQueryHandler {
	return GetCapacityHistoryQueryHandler{db: db}
}

// Handle executes the ledger query for one warehouse, newest change first.
// An unknown warehouse yields an empty slice rather than an error; the
// capacity endpoint is the place that distinguishes missing warehouses.
func (h GetCapacityHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetCapacityHistoryQuery,
) ([]GetCapacityHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetCapacityHistoryQueryResponse, 0)

	sql := `
		SELECT
			warehouse_name,
			previous_used,
			new_used,
			delta,
			actor,
			reason,
			changed_at
		FROM warehouse_capacity_history
		WHERE warehouse_name = ?
		ORDER BY changed_at DESC, id DESC
	`
	args := []any{query.WarehouseName()}
	if query.Limit() > 0 {
		sql += " LIMIT ?"
		args = append(args, query.Limit())
	}

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetCapacityHistoryQueryResponse
		err = rows.Scan(
			&entry.WarehouseName,
			&entry.PreviousUsed,
			&entry.NewUsed,
			&entry.Delta,
			&entry.Actor,
			&entry.Reason,
			&entry.ChangedAt,
		)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
