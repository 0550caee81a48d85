// Package shipmentrepo provides data transfer objects and mapping functions for
// shipment persistence. This package implements the repository pattern for the
// shipment domain aggregate, handling the conversion between domain entities
// and database representations, including the append-only status history table.
package shipmentrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment aggregates.
// Maps shipment domain entities to relational database tables with proper indexing
// for efficient querying by status and supplier.
type ShipmentDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	SupplierID           uuid.UUID `gorm:"type:uuid;index"`
	OrderReference       string    `gorm:"index"`
	WeekNumber           int       `gorm:"type:smallint"`
	Status               string    `gorm:"index"`
	ReceivingWarehouse   *string
	UnloadingStartedAt   *time.Time
	UnloadingCompletedAt *time.Time
	InspectionActor      string
	InspectionResult     string
	InspectionNotes      string
	ReinspectionCount    int
	ReceivingActor       string
	ReceivedQuantity     *int
	ExpectedQuantity     int
	RejectionReason      *string
	RejectionActor       string
	Version              int
}

// TableName specifies the database table name for shipment entities.
// Overrides GORM's default naming convention to use "shipments".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// ShipmentHistoryDTO represents one persisted line of a shipment's audit trail.
// History rows are append-only; they are inserted in the same transaction as
// the aggregate update they describe and never modified afterwards.
type ShipmentHistoryDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	ShipmentID uuid.UUID `gorm:"type:uuid;index"`
	FromStatus string
	ToStatus   string
	Actor      string
	Note       string
	ChangedAt  time.Time `gorm:"index"`
}

// TableName specifies the database table name for shipment history entries.
func (ShipmentHistoryDTO) TableName() string {
	return "shipment_history"
}

// fromDomain converts a shipment domain aggregate to its database representation.
// The status and inspection result are persisted as their string forms so the
// rows stay readable in ad-hoc queries. An absent inspection result is stored
// as the empty string, mirroring the guard in toDomain.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	inspectionResult := ""
	if aggregate.InspectionResult() != shipment.InspectionResultUnknown {
		inspectionResult = aggregate.InspectionResult().String()
	}

	return ShipmentDTO{
		ID:                   aggregate.ID().Bytes(),
		SupplierID:           aggregate.SupplierID().Bytes(),
		OrderReference:       aggregate.OrderReference(),
		WeekNumber:           aggregate.WeekNumber(),
		Status:               aggregate.Status().String(),
		ReceivingWarehouse:   aggregate.ReceivingWarehouse(),
		UnloadingStartedAt:   aggregate.UnloadingStartedAt(),
		UnloadingCompletedAt: aggregate.UnloadingCompletedAt(),
		InspectionActor:      aggregate.InspectionActor(),
		InspectionResult:     inspectionResult,
		InspectionNotes:      aggregate.InspectionNotes(),
		ReinspectionCount:    aggregate.ReinspectionCount(),
		ReceivingActor:       aggregate.ReceivingActor(),
		ReceivedQuantity:     aggregate.ReceivedQuantity(),
		ExpectedQuantity:     aggregate.ExpectedQuantity(),
		RejectionReason:      aggregate.RejectionReason(),
		RejectionActor:       aggregate.RejectionActor(),
		Version:              aggregate.Version(),
	}
}

// historyFromDomain converts the aggregate's uncommitted history entries to
// their database representation.
func historyFromDomain(aggregate *shipment.Shipment) []ShipmentHistoryDTO {
	entries := aggregate.UncommittedHistory()
	dtos := make([]ShipmentHistoryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, ShipmentHistoryDTO{
			ShipmentID: aggregate.ID().Bytes(),
			FromStatus: entry.FromStatus.String(),
			ToStatus:   entry.ToStatus.String(),
			Actor:      entry.Actor,
			Note:       entry.Note,
			ChangedAt:  entry.ChangedAt,
		})
	}

	return dtos
}

// toDomain converts a database DTO to a shipment domain aggregate.
// Reconstructs the complete aggregate including post-arrival fields using RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}

	status, err := shipment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	result := shipment.InspectionResultUnknown
	if dto.InspectionResult != "" {
		result, err = shipment.InspectionResultFromString(dto.InspectionResult)
		if err != nil {
			return nil, err
		}
	}

	return shipment.RestoreShipment(shipment.RestoreShipmentParams{
		ID:                   id,
		SupplierID:           supplierID,
		OrderReference:       dto.OrderReference,
		WeekNumber:           dto.WeekNumber,
		Status:               status,
		ReceivingWarehouse:   dto.ReceivingWarehouse,
		UnloadingStartedAt:   dto.UnloadingStartedAt,
		UnloadingCompletedAt: dto.UnloadingCompletedAt,
		InspectionActor:      dto.InspectionActor,
		InspectionResult:     result,
		InspectionNotes:      dto.InspectionNotes,
		ReinspectionCount:    dto.ReinspectionCount,
		ReceivingActor:       dto.ReceivingActor,
		ReceivedQuantity:     dto.ReceivedQuantity,
		ExpectedQuantity:     dto.ExpectedQuantity,
		RejectionReason:      dto.RejectionReason,
		RejectionActor:       dto.RejectionActor,
		Version:              dto.Version,
	})
}
