package queries

import (
	"context"
	"database/sql"
	"errors"

	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetWarehouseCapacityQueryHandler reads warehouse capacity directly from the
// database. Uses direct SQL queries for optimal read performance in the CQRS
// pattern; no row lock is taken, so the figures are a consistent snapshot but
// may be stale by the time the caller acts on them.
type GetWarehouseCapacityQueryHandler struct {
	db *gorm.DB
}

// NewGetWarehouseCapacityQueryHandler creates a handler for capacity queries.
// Requires a GORM database connection for query execution.
func NewGetWarehouseCapacityQueryHandler(db *gorm.DB) GetWarehouseCapacityQueryHandler {
	return GetWarehouseCapacityQueryHandler{db: db}
}

// Handle executes the capacity query for one warehouse.
// Returns an object-not-found error when the warehouse does not exist.
func (h GetWarehouseCapacityQueryHandler) Handle(
	ctx context.Context,
	query GetWarehouseCapacityQuery,
) (GetWarehouseCapacityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWarehouseCapacityQueryResponse{}, err
	}

	var response GetWarehouseCapacityQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			name,
			total_capacity,
			bins_used
		FROM warehouses
		WHERE name = ?
	`, query.WarehouseName()).Row()

	err := row.Scan(&response.WarehouseName, &response.TotalCapacity, &response.BinsUsed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetWarehouseCapacityQueryResponse{},
				errs.NewObjectNotFoundError("warehouseName", query.WarehouseName())
		}
		return GetWarehouseCapacityQueryResponse{}, err
	}

	response.AvailableBins = response.TotalCapacity - response.BinsUsed
	if response.TotalCapacity > 0 {
		response.UtilizationPercent = float64(response.BinsUsed) / float64(response.TotalCapacity) * 100
	}

	return response, nil
}
