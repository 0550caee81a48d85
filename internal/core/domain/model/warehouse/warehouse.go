package warehouse

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	// ErrCapacityExceeded indicates that a reservation would push bin usage
	// beyond the warehouse's total capacity. The reservation performs no
	// mutation when it fails.
	ErrCapacityExceeded = errors.New("warehouse capacity exceeded")

	// ErrCapacityUnderflow indicates that a release would push bin usage below
	// zero. This is a caller bug (double release); it is surfaced rather than
	// silently clamped.
	ErrCapacityUnderflow = errors.New("warehouse capacity underflow")

	// ErrWarehouseIsNotConstructed is returned when a Warehouse instance was
	// not created through NewWarehouse or RestoreWarehouse.
	ErrWarehouseIsNotConstructed = errors.New("Warehouse must be created via NewWarehouse or RestoreWarehouse")
)

// CapacityExceededError reports a reservation that would overflow the warehouse.
type CapacityExceededError struct {
	WarehouseName string
	Requested     int
	Available     int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("warehouse capacity exceeded: %s has %d bins available, %d requested",
		e.WarehouseName, e.Available, e.Requested)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// CapacityUnderflowError reports a release that would take bin usage negative.
type CapacityUnderflowError struct {
	WarehouseName string
	Requested     int
	BinsUsed      int
}

func (e *CapacityUnderflowError) Error() string {
	return fmt.Sprintf("warehouse capacity underflow: %s has %d bins used, release of %d requested",
		e.WarehouseName, e.BinsUsed, e.Requested)
}

func (e *CapacityUnderflowError) Unwrap() error {
	return ErrCapacityUnderflow
}

// Warehouse is the capacity ledger aggregate for one named physical warehouse.
// It owns the {totalCapacity, binsUsed} pair and produces an append-only
// CapacityChange record for every mutation.
//
// Invariant: 0 <= binsUsed <= totalCapacity after every committed operation.
// Reserve and Release enforce the bounds before mutating; AdjustTo is the
// administrative override for physical recounts and still records the full
// delta.
//
// The aggregate holds no locks itself: callers serialize concurrent access
// per warehouse with a row lock at the persistence layer, so the in-memory
// check-then-act here is safe under that lock.
type Warehouse struct {
	name          string
	totalCapacity int
	binsUsed      int

	// changes holds audit records produced since the aggregate was loaded.
	changes []CapacityChange

	guard guard.ConstructorGuard
}

// NewWarehouse creates an empty warehouse capacity record.
//
// Parameters:
//   - name: unique warehouse name (e.g. "PRETORIA")
//   - totalCapacity: fixed number of bins (must be greater than 0)
func NewWarehouse(name string, totalCapacity int) (*Warehouse, error) {
	w := &Warehouse{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(w.setName(name), w.setTotalCapacity(totalCapacity)); err != nil {
		return nil, err
	}

	return w, nil
}

// RestoreWarehouse reconstructs a warehouse capacity record from persistent
// storage, including its current occupancy.
func RestoreWarehouse(name string, totalCapacity, binsUsed int) (*Warehouse, error) {
	w := &Warehouse{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(w.setName(name), w.setTotalCapacity(totalCapacity)); err != nil {
		return nil, err
	}

	if binsUsed < 0 || binsUsed > totalCapacity {
		return nil, errs.NewValueIsOutOfRangeError("binsUsed", binsUsed, 0, totalCapacity)
	}
	w.binsUsed = binsUsed

	return w, nil
}

// Validate ensures the Warehouse was constructed through NewWarehouse or
// RestoreWarehouse.
func (w *Warehouse) Validate() error {
	if w == nil {
		return ErrWarehouseIsNotConstructed
	}
	return w.guard.Validate(ErrWarehouseIsNotConstructed)
}

// Name returns the unique warehouse name.
func (w *Warehouse) Name() string {
	return w.name
}

// TotalCapacity returns the fixed number of bins.
func (w *Warehouse) TotalCapacity() int {
	return w.totalCapacity
}

// BinsUsed returns the current occupancy.
func (w *Warehouse) BinsUsed() int {
	return w.binsUsed
}

// AvailableBins returns totalCapacity - binsUsed.
func (w *Warehouse) AvailableBins() int {
	return w.totalCapacity - w.binsUsed
}

// UtilizationPercent returns occupancy as a percentage of total capacity.
func (w *Warehouse) UtilizationPercent() float64 {
	if w.totalCapacity == 0 {
		return 0
	}
	return float64(w.binsUsed) / float64(w.totalCapacity) * 100
}

// Snapshot returns the read-only occupancy view used by the status endpoint
// and returned alongside successful transitions.
func (w *Warehouse) Snapshot() CapacitySnapshot {
	return CapacitySnapshot{
		WarehouseName:      w.name,
		TotalCapacity:      w.totalCapacity,
		BinsUsed:           w.binsUsed,
		AvailableBins:      w.AvailableBins(),
		UtilizationPercent: w.UtilizationPercent(),
	}
}

// UncommittedChanges returns the audit records produced since the aggregate
// was loaded. The repository persists them in the same transaction as the
// occupancy update.
func (w *Warehouse) UncommittedChanges() []CapacityChange {
	return w.changes
}

// Reserve claims count bins for a shipment entering storage.
//
// Returns a CapacityExceededError (wrapping ErrCapacityExceeded) and performs
// no mutation when fewer than count bins are available. On success the
// occupancy is incremented and a +count audit record is appended.
func (w *Warehouse) Reserve(count int, actor kernel.Actor, reason string) error {
	if err := w.validateMutation(count, actor); err != nil {
		return err
	}

	if w.binsUsed+count > w.totalCapacity {
		return &CapacityExceededError{
			WarehouseName: w.name,
			Requested:     count,
			Available:     w.AvailableBins(),
		}
	}

	w.applyChange(w.binsUsed+count, actor, reason)
	return nil
}

// Release frees count bins for a shipment leaving storage.
//
// Returns a CapacityUnderflowError (wrapping ErrCapacityUnderflow) and
// performs no mutation when the release would take occupancy below zero.
// Underflow indicates a double-release bug in the caller and is never
// silently clamped. On success a -count audit record is appended.
func (w *Warehouse) Release(count int, actor kernel.Actor, reason string) error {
	if err := w.validateMutation(count, actor); err != nil {
		return err
	}

	if w.binsUsed-count < 0 {
		return &CapacityUnderflowError{
			WarehouseName: w.name,
			Requested:     count,
			BinsUsed:      w.binsUsed,
		}
	}

	w.applyChange(w.binsUsed-count, actor, reason)
	return nil
}

// AdjustTo is the administrative override for reconciliation after a physical
// recount. It bypasses reserve/release semantics but still appends an audit
// record carrying the full delta. Only actors whose role permits capacity
// administration may adjust.
func (w *Warehouse) AdjustTo(newBinsUsed int, actor kernel.Actor, reason string) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Role().CanAdministerCapacity() {
		return kernel.ErrRoleNotPermitted
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if newBinsUsed < 0 || newBinsUsed > w.totalCapacity {
		return errs.NewValueIsOutOfRangeError("binsUsed", newBinsUsed, 0, w.totalCapacity)
	}

	w.applyChange(newBinsUsed, actor, reason)
	return nil
}

func (w *Warehouse) validateMutation(count int, actor kernel.Actor) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if count <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"count is invalid",
			fmt.Errorf("%d is not greater than 0", count),
		)
	}
	return nil
}

func (w *Warehouse) applyChange(newBinsUsed int, actor kernel.Actor, reason string) {
	w.changes = append(w.changes, CapacityChange{
		WarehouseName: w.name,
		PreviousUsed:  w.binsUsed,
		NewUsed:       newBinsUsed,
		Delta:         newBinsUsed - w.binsUsed,
		Actor:         actor.Name(),
		Reason:        reason,
		ChangedAt:     time.Now().UTC(),
	})
	w.binsUsed = newBinsUsed
}

func (w *Warehouse) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	w.name = name
	return nil
}

func (w *Warehouse) setTotalCapacity(totalCapacity int) error {
	if totalCapacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalCapacity is invalid",
			fmt.Errorf("%d is not greater than 0", totalCapacity),
		)
	}
	w.totalCapacity = totalCapacity
	return nil
}
