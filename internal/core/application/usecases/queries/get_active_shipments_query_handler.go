package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveShipmentsQueryHandler retrieves the active inbound workload from
// the database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
type GetActiveShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveShipmentsQueryHandler creates a handler for active shipment queries.
// Requires a GORM database connection for query execution.
func NewGetActiveShipmentsQueryHandler(db *gorm.DB) GetActiveShipmentsQueryHandler {
	return GetActiveShipmentsQueryHandler{db: db}
}

// Handle executes the query to retrieve all non-terminal shipments.
// Results are sorted by week number, then order reference, for stable output.
func (h GetActiveShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveShipmentsQuery,
) ([]GetActiveShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments := make([]GetActiveShipmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			sup.name,
			s.order_reference,
			s.week_number,
			s.status,
			s.reinspection_count
		FROM shipments s
		JOIN suppliers sup ON sup.id = s.supplier_id
		WHERE s.status NOT IN (?, ?, ?)
		ORDER BY s.week_number, s.order_reference
	`, shipment.Stored.String(), shipment.Rejected.String(), shipment.Archived.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetActiveShipmentsQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&response.SupplierName,
			&response.OrderReference,
			&response.WeekNumber,
			&response.Status,
			&response.ReinspectionCount,
		)
		if err != nil {
			return nil, err
		}

		shipmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = shipmentID
		shipments = append(shipments, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
