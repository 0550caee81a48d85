// Package supplierrepo provides data transfer objects and mapping functions
// for supplier persistence.
package supplierrepo

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/supplier"

	"github.com/google/uuid"
)

// SupplierDTO represents the database structure for persisting suppliers.
type SupplierDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

// TableName specifies the database table name for supplier entities.
func (SupplierDTO) TableName() string {
	return "suppliers"
}

// fromDomain converts a supplier domain entity to its database representation.
func fromDomain(entity *supplier.Supplier) SupplierDTO {
	return SupplierDTO{
		ID:   entity.ID().Bytes(),
		Name: entity.Name(),
	}
}

// toDomain converts a database DTO to a supplier domain entity.
func toDomain(dto SupplierDTO) (*supplier.Supplier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return supplier.RestoreSupplier(id, dto.Name)
}
