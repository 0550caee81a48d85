package warehouserepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/warehouse"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockNotAvailable is the PostgreSQL SQLSTATE reported when a row lock could
// not be acquired within lock_timeout.
const lockNotAvailable = "55P03"

// GormWarehouseRepository implements WarehouseRepository using GORM.
type GormWarehouseRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

// NewGormWarehouseRepository creates a new GORM warehouse repository.
func NewGormWarehouseRepository(db *gorm.DB, tracker aggregateTracker) *GormWarehouseRepository {
	return &GormWarehouseRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new warehouse to the database.
func (r *GormWarehouseRepository) Add(ctx context.Context, aggregate *warehouse.Warehouse) error {
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

	r.tracker.TrackAggregate(aggregate.Name(), aggregate)
	return nil
}

// Update persists the warehouse's current occupancy together with the
// capacity change records accumulated during the unit of work. The columns
// are selected explicitly because bins_used legitimately reaches zero, which
// a struct update would silently skip.
func (r *GormWarehouseRepository) Update(ctx context.Context, aggregate *warehouse.Warehouse) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&WarehouseDTO{}).
		Where("name = ?", dto.Name).
		Select("total_capacity", "bins_used").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.appendHistory(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.Name(), aggregate)
	return nil
}

// Get retrieves a warehouse by name.
func (r *GormWarehouseRepository) Get(ctx context.Context, name string) (*warehouse.Warehouse, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	var dto WarehouseDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("warehouse", name)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves a warehouse while holding an exclusive row lock for
// the remainder of the transaction. Every occupancy mutation loads the
// warehouse through this method, so concurrent reservations against the same
// warehouse serialize on the row lock and check-then-reserve stays atomic.
func (r *GormWarehouseRepository) GetForUpdate(ctx context.Context, name string) (*warehouse.Warehouse, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	var dto WarehouseDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("warehouse", name)
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == lockNotAvailable {
			return nil, ports.ErrRowLockTimeout
		}

		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every warehouse.
func (r *GormWarehouseRepository) GetAll(ctx context.Context) ([]*warehouse.Warehouse, error) {
	var dtos []WarehouseDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	warehouses := make([]*warehouse.Warehouse, 0, len(dtos))
	for _, dto := range dtos {
		w, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		warehouses = append(warehouses, w)
	}

	return warehouses, nil
}

// appendHistory inserts the aggregate's uncommitted capacity change records.
func (r *GormWarehouseRepository) appendHistory(ctx context.Context, aggregate *warehouse.Warehouse) error {
	dtos := historyFromDomain(aggregate)
	if len(dtos) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}
