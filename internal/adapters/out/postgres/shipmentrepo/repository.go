package shipmentrepo

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockNotAvailable is the PostgreSQL SQLSTATE reported when a row lock could
// not be acquired within lock_timeout.
const lockNotAvailable = "55P03"

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates. The ID is
// untyped because aggregates in this system are keyed by UUID or by natural
// key depending on the table.
type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment to the database together with the history entries
// recorded during construction.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.appendHistory(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment to the database. The write carries an
// optimistic version check: the row is updated only while its persisted
// version still matches the version the aggregate was loaded with, and the
// version advances by one in the same statement. A zero-row update means the
// shipment changed underneath the caller and fails with a version error.
//
// The mutable columns are selected explicitly because a re-inspection resets
// unloading_completed_at to NULL and a struct update would skip the zero value.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select(
			"status", "receiving_warehouse",
			"unloading_started_at", "unloading_completed_at",
			"inspection_actor", "inspection_result", "inspection_notes",
			"reinspection_count", "receiving_actor", "received_quantity",
			"rejection_reason", "rejection_actor", "version",
		).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause(
			"shipment version",
			fmt.Errorf("shipment %s was modified concurrently", aggregate.ID()),
		)
	}

	if err := r.appendHistory(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves a shipment while holding an exclusive row lock for
// the remainder of the transaction. Concurrent transitions of the same
// shipment serialize on this lock; a lock wait beyond the transaction's
// lock_timeout fails with ports.ErrRowLockTimeout.
func (r *GormShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == lockNotAvailable {
			return nil, ports.ErrRowLockTimeout
		}

		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves all shipments that have not reached a terminal state.
func (r *GormShipmentRepository) GetAllActive(ctx context.Context) ([]*shipment.Shipment, error) {
	terminal := []string{
		shipment.Stored.String(),
		shipment.Rejected.String(),
		shipment.Archived.String(),
	}

	var dtos []ShipmentDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "status NOT IN ?", terminal).Error; err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}

// appendHistory inserts the aggregate's uncommitted audit lines. History rows
// land in the same transaction as the aggregate write when the repository
// runs inside a unit of work.
func (r *GormShipmentRepository) appendHistory(ctx context.Context, aggregate *shipment.Shipment) error {
	dtos := historyFromDomain(aggregate)
	if len(dtos) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}
