// Package warehouserepo provides data transfer objects and mapping functions for
// warehouse capacity persistence. Alongside the warehouse row itself the package
// persists the append-only capacity change ledger, which the reconciliation job
// cross-checks against the stored occupancy counter.
package warehouserepo

import (
	"time"

	"freight/internal/core/domain/model/warehouse"
)

// WarehouseDTO represents the database structure for persisting warehouse aggregates.
// Warehouses are keyed by their operational name (e.g. "KLM", "PTA").
type WarehouseDTO struct {
	Name          string `gorm:"primaryKey"`
	TotalCapacity int
	BinsUsed      int
}

// TableName specifies the database table name for warehouse entities.
func (WarehouseDTO) TableName() string {
	return "warehouses"
}

// CapacityHistoryDTO represents one persisted capacity change record.
// Rows are append-only; for any warehouse the deltas must sum to its current
// bins_used, which is what the reconciliation job verifies.
type CapacityHistoryDTO struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	WarehouseName string `gorm:"index"`
	PreviousUsed  int
	NewUsed       int
	Delta         int
	Actor         string
	Reason        string
	ChangedAt     time.Time `gorm:"index"`
}

// TableName specifies the database table name for capacity change records.
func (CapacityHistoryDTO) TableName() string {
	return "warehouse_capacity_history"
}

// fromDomain converts a warehouse domain aggregate to its database representation.
func fromDomain(aggregate *warehouse.Warehouse) WarehouseDTO {
	return WarehouseDTO{
		Name:          aggregate.Name(),
		TotalCapacity: aggregate.TotalCapacity(),
		BinsUsed:      aggregate.BinsUsed(),
	}
}

// historyFromDomain converts the aggregate's uncommitted capacity changes to
// their database representation.
func historyFromDomain(aggregate *warehouse.Warehouse) []CapacityHistoryDTO {
	changes := aggregate.UncommittedChanges()
	dtos := make([]CapacityHistoryDTO, 0, len(changes))
	for _, change := range changes {
		dtos = append(dtos, CapacityHistoryDTO{
			WarehouseName: change.WarehouseName,
			PreviousUsed:  change.PreviousUsed,
			NewUsed:       change.NewUsed,
			Delta:         change.Delta,
			Actor:         change.Actor,
			Reason:        change.Reason,
			ChangedAt:     change.ChangedAt,
		})
	}

	return dtos
}

// toDomain converts a database DTO to a warehouse domain aggregate.
func toDomain(dto WarehouseDTO) (*warehouse.Warehouse, error) {
	return warehouse.RestoreWarehouse(dto.Name, dto.TotalCapacity, dto.BinsUsed)
}
