package warehouse

import "time"

// CapacityChange is one append-only audit record of a bin-occupancy change.
// Records are never updated or deleted after insertion; for any warehouse the
// sum of all deltas since creation equals its current BinsUsed, which the
// reconciliation job verifies periodically.
type CapacityChange struct {
	// WarehouseName identifies the warehouse the change applies to.
	WarehouseName string

	// PreviousUsed and NewUsed are the bin counts before and after the change.
	PreviousUsed int
	NewUsed      int

	// Delta is NewUsed - PreviousUsed: positive for reservations, negative
	// for releases, either sign for administrative adjustments.
	Delta int

	// Actor is who caused the change.
	Actor string

	// Reason is free text, e.g. "shipment ORD-123 stored".
	Reason string

	// ChangedAt is when the change was recorded.
	ChangedAt time.Time
}

// CapacitySnapshot is the read-only view of a warehouse's occupancy.
type CapacitySnapshot struct {
	WarehouseName      string
	TotalCapacity      int
	BinsUsed           int
	AvailableBins      int
	UtilizationPercent float64
}
