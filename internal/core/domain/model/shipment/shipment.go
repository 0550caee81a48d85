package shipment

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

	// ErrDiscrepancyOutsideReceiving is returned when a quantity discrepancy is
	// recorded while the shipment is not in the ReceivingGoods stage.
	ErrDiscrepancyOutsideReceiving = errors.New("discrepancy can only be recorded while receiving goods")
)

// minWeekNumber and maxWeekNumber bound the ISO scheduling week.
const (
	minWeekNumber = 1
	maxWeekNumber = 53
)

// HistoryEntry is one line of the shipment's audit trail: which transition
// happened, who requested it, and when. Entries accumulate on the aggregate
// during a unit of work and are persisted by the repository in the same
// transaction as the state change.
type HistoryEntry struct {
	FromStatus Status
	ToStatus   Status
	Actor      string
	Note       string
	ChangedAt  time.Time
}

// TransitionDetails carries the stage-specific fields a transition may
// require. Only the fields relevant to the requested target status are read;
// the aggregate rejects the transition when a required field is absent.
type TransitionDetails struct {
	// InspectionResult is required when targeting InspectionPassed or
	// InspectionFailed.
	InspectionResult InspectionResult

	// InspectionNotes optionally accompanies an inspection outcome.
	InspectionNotes string

	// ReceivedQuantity is required when targeting Stored, unless it was
	// already recorded via RecordDiscrepancy.
	ReceivedQuantity *int

	// Warehouse names the receiving warehouse; required when targeting Stored
	// unless the shipment already carries one.
	Warehouse string

	// RejectionReason is required when targeting Rejected.
	RejectionReason string

	// Note is written to the shipment history line for this transition.
	Note string
}

// Shipment represents one inbound order line. It is the aggregate root that
// manages the shipment lifecycle from intake through warehouse storage or
// rejection back to the supplier.
//
// Shipment follows these invariants:
//   - Must have valid shipment and supplier identifiers
//   - Week number lies in [1, 53]
//   - Status changes only through the transition table
//   - ReceivedQuantity is set no earlier than the ReceivingGoods stage
//   - RejectionReason is set exactly when the shipment is rejected, and is
//     retained if the rejection is chained into Archived for the audit trail
//
// Mutations happen exclusively through TransitionTo, Reject, and
// RecordDiscrepancy; every mutation appends an attributable history entry.
type Shipment struct {
	id             kernel.UUID
	supplierID     kernel.UUID
	orderReference string
	weekNumber     int
	status         Status

	receivingWarehouse   *string
	unloadingStartedAt   *time.Time
	unloadingCompletedAt *time.Time

	inspectionActor   string
	inspectionResult  InspectionResult
	inspectionNotes   string
	reinspectionCount int

	receivingActor   string
	receivedQuantity *int
	expectedQuantity int

	rejectionReason *string
	rejectionActor  string

	// version backs the optimistic concurrency check on the shipment row.
	version int

	// history holds audit lines produced since the aggregate was loaded.
	history []HistoryEntry

	guard guard.ConstructorGuard
}

// NewShipment registers a new shipment line in Intake status.
//
// Parameters:
//   - id: unique shipment identifier
//   - supplierID: identifier of the supplying party (foreign key, not a free-text name)
//   - orderReference: the purchase order line this shipment fulfils
//   - weekNumber: scheduling target week, 1-53
//   - expectedQuantity: ordered quantity, used later for discrepancy detection
//
// Returns the shipment or an aggregated validation error.
func NewShipment(
	id kernel.UUID,
	supplierID kernel.UUID,
	orderReference string,
	weekNumber int,
	expectedQuantity int,
) (*Shipment, error) {
	s := &Shipment{
		status:  Intake,
		version: 1,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setSupplierID(supplierID),
		s.setOrderReference(orderReference),
		s.setWeekNumber(weekNumber),
		s.setExpectedQuantity(expectedQuantity),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipmentParams carries the persisted state needed to reconstruct a
// Shipment from storage.
type RestoreShipmentParams struct {
	ID                   kernel.UUID
	SupplierID           kernel.UUID
	OrderReference       string
	WeekNumber           int
	Status               Status
	ReceivingWarehouse   *string
	UnloadingStartedAt   *time.Time
	UnloadingCompletedAt *time.Time
	InspectionActor      string
	InspectionResult     InspectionResult
	InspectionNotes      string
	ReinspectionCount    int
	ReceivingActor       string
	ReceivedQuantity     *int
	ExpectedQuantity     int
	RejectionReason      *string
	RejectionActor       string
	Version              int
}

// RestoreShipment reconstructs a Shipment from persistent storage. Unlike
// NewShipment it accepts any valid status and the post-arrival fields as
// persisted. The restored aggregate behaves identically to one mutated
// through normal domain operations.
func RestoreShipment(params RestoreShipmentParams) (*Shipment, error) {
	s := &Shipment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(params.ID),
		s.setSupplierID(params.SupplierID),
		s.setOrderReference(params.OrderReference),
		s.setWeekNumber(params.WeekNumber),
		s.setExpectedQuantity(params.ExpectedQuantity),
		params.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if params.Version < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"version is invalid",
			fmt.Errorf("%d is not greater than 0", params.Version),
		)
	}

	s.status = params.Status
	s.receivingWarehouse = params.ReceivingWarehouse
	s.unloadingStartedAt = params.UnloadingStartedAt
	s.unloadingCompletedAt = params.UnloadingCompletedAt
	s.inspectionActor = params.InspectionActor
	s.inspectionResult = params.InspectionResult
	s.inspectionNotes = params.InspectionNotes
	s.reinspectionCount = params.ReinspectionCount
	s.receivingActor = params.ReceivingActor
	s.receivedQuantity = params.ReceivedQuantity
	s.rejectionReason = params.RejectionReason
	s.rejectionActor = params.RejectionActor
	s.version = params.Version

	return s, nil
}

// Validate ensures the Shipment was constructed through NewShipment or
// RestoreShipment and that the rejection invariant holds.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	if err := s.guard.Validate(ErrShipmentIsNotConstructed); err != nil {
		return err
	}
	if s.status == Rejected && s.rejectionReason == nil {
		return errs.NewValueIsRequiredError("rejectionReason")
	}
	return nil
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// SupplierID returns the identifier of the supplying party.
func (s *Shipment) SupplierID() kernel.UUID {
	return s.supplierID
}

// OrderReference returns the purchase order line reference.
func (s *Shipment) OrderReference() string {
	return s.orderReference
}

// WeekNumber returns the scheduling target week (1-53).
func (s *Shipment) WeekNumber() int {
	return s.weekNumber
}

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status {
	return s.status
}

// ReceivingWarehouse returns the warehouse the shipment is (or will be)
// stored in, or nil before one is assigned.
func (s *Shipment) ReceivingWarehouse() *string {
	return s.receivingWarehouse
}

// UnloadingStartedAt returns when unloading last began, or nil.
func (s *Shipment) UnloadingStartedAt() *time.Time {
	return s.unloadingStartedAt
}

// UnloadingCompletedAt returns when unloading last finished, or nil.
func (s *Shipment) UnloadingCompletedAt() *time.Time {
	return s.unloadingCompletedAt
}

// InspectionActor returns who performed the most recent inspection.
func (s *Shipment) InspectionActor() string {
	return s.inspectionActor
}

// InspectionResult returns the most recent inspection outcome.
func (s *Shipment) InspectionResult() InspectionResult {
	return s.inspectionResult
}

// InspectionNotes returns the inspector's notes.
func (s *Shipment) InspectionNotes() string {
	return s.inspectionNotes
}

// ReinspectionCount returns how many times the shipment has re-entered
// Unloading after a failed inspection.
func (s *Shipment) ReinspectionCount() int {
	return s.reinspectionCount
}

// ReceivingActor returns who counted the goods in.
func (s *Shipment) ReceivingActor() string {
	return s.receivingActor
}

// ReceivedQuantity returns the counted quantity, or nil before receiving.
func (s *Shipment) ReceivedQuantity() *int {
	return s.receivedQuantity
}

// ExpectedQuantity returns the ordered quantity.
func (s *Shipment) ExpectedQuantity() int {
	return s.expectedQuantity
}

// HasDiscrepancy reports whether the counted quantity differs from the
// ordered quantity. Returns false while no quantity has been counted.
func (s *Shipment) HasDiscrepancy() bool {
	return s.receivedQuantity != nil && *s.receivedQuantity != s.expectedQuantity
}

// RejectionReason returns why the shipment was rejected, or nil.
func (s *Shipment) RejectionReason() *string {
	return s.rejectionReason
}

// RejectionActor returns who rejected the shipment.
func (s *Shipment) RejectionActor() string {
	return s.rejectionActor
}

// Version returns the optimistic concurrency version of the shipment row.
func (s *Shipment) Version() int {
	return s.version
}

// UncommittedHistory returns the audit lines produced since the aggregate was
// loaded. The repository persists them in the same transaction as the state
// change.
func (s *Shipment) UncommittedHistory() []HistoryEntry {
	return s.history
}

// TransitionTo requests a status change, validating it against the transition
// table and the stage-specific required fields, and returns the capacity
// effect the orchestrator must apply in the same transaction.
//
// Stage rules enforced:
//   - InspectionPassed requires details.InspectionResult == InspectionPass
//   - InspectionFailed requires InspectionFail or InspectionHold
//   - Stored requires a received quantity and a receiving warehouse
//   - Rejected requires a rejection reason
//   - InspectionFailed -> Unloading increments the re-inspection count
//
// Returns:
//   - (CapacityReserve, nil) when the target is Stored
//   - (CapacityRelease, nil) when a stored shipment is archived
//   - (CapacityNone, nil) for every other legal transition
//   - (CapacityNone, error) when the transition is illegal, a required field
//     is missing, or the actor's role does not permit mutations
func (s *Shipment) TransitionTo(target Status, actor kernel.Actor, details TransitionDetails) (CapacityEffect, error) {
	if err := s.Validate(); err != nil {
		return CapacityNone, err
	}
	if err := actor.Validate(); err != nil {
		return CapacityNone, err
	}
	if !actor.Role().CanMutateShipments() {
		return CapacityNone, kernel.ErrRoleNotPermitted
	}

	newStatus, err := s.status.TransitionTo(target)
	if err != nil {
		return CapacityNone, err
	}

	if err := s.applyStageFields(newStatus, actor, details); err != nil {
		return CapacityNone, err
	}

	effect := CapacityEffectOf(s.status, newStatus)
	s.appendHistory(s.status, newStatus, actor, details.Note)
	s.status = newStatus
	return effect, nil
}

// Reject moves the shipment to Rejected with the given reason. Allowed from
// InspectionFailed and ReceivingGoods only; other statuses fail with
// ErrInvalidTransition. Returns the capacity effect (always CapacityNone for
// the statuses that may reject, since no bin is reserved before Stored).
func (s *Shipment) Reject(reason string, actor kernel.Actor) (CapacityEffect, error) {
	return s.TransitionTo(Rejected, actor, TransitionDetails{RejectionReason: reason, Note: reason})
}

// RecordDiscrepancy stores the counted quantity while the shipment is in
// ReceivingGoods, without changing status and without touching capacity.
// The variance against ExpectedQuantity is derivable; the note lands on the
// shipment history line.
func (s *Shipment) RecordDiscrepancy(receivedQuantity int, note string, actor kernel.Actor) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Role().CanMutateShipments() {
		return kernel.ErrRoleNotPermitted
	}
	if s.status != ReceivingGoods {
		return ErrDiscrepancyOutsideReceiving
	}
	if receivedQuantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"receivedQuantity is invalid",
			fmt.Errorf("%d is negative", receivedQuantity),
		)
	}

	s.receivedQuantity = &receivedQuantity
	s.appendHistory(ReceivingGoods, ReceivingGoods, actor, note)
	return nil
}

// applyStageFields mutates the stage-specific fields for the validated target
// status, failing when a required field is absent.
func (s *Shipment) applyStageFields(target Status, actor kernel.Actor, details TransitionDetails) error {
	now := time.Now().UTC()

	switch target {
	case Unloading:
		if s.status == InspectionFailed {
			s.reinspectionCount++
		}
		s.unloadingStartedAt = &now
		s.unloadingCompletedAt = nil

	case InspectionInProgress:
		s.unloadingCompletedAt = &now

	case InspectionPassed:
		if details.InspectionResult == InspectionResultUnknown {
			return errs.NewValueIsRequiredError("inspectionResult")
		}
		if details.InspectionResult != InspectionPass {
			return errs.NewValueIsInvalidErrorWithCause(
				"inspectionResult is invalid",
				fmt.Errorf("%s does not justify a passed inspection", details.InspectionResult),
			)
		}
		s.inspectionActor = actor.Name()
		s.inspectionResult = details.InspectionResult
		s.inspectionNotes = details.InspectionNotes

	case InspectionFailed:
		if details.InspectionResult == InspectionResultUnknown {
			return errs.NewValueIsRequiredError("inspectionResult")
		}
		if details.InspectionResult == InspectionPass {
			return errs.NewValueIsInvalidErrorWithCause(
				"inspectionResult is invalid",
				fmt.Errorf("%s does not justify a failed inspection", details.InspectionResult),
			)
		}
		s.inspectionActor = actor.Name()
		s.inspectionResult = details.InspectionResult
		s.inspectionNotes = details.InspectionNotes

	case ReceivingGoods:
		s.receivingActor = actor.Name()

	case Stored:
		warehouseName := details.Warehouse
		if warehouseName == "" && s.receivingWarehouse != nil {
			warehouseName = *s.receivingWarehouse
		}
		if warehouseName == "" {
			return errs.NewValueIsRequiredError("receivingWarehouse")
		}
		quantity := s.receivedQuantity
		if details.ReceivedQuantity != nil {
			quantity = details.ReceivedQuantity
		}
		if quantity == nil {
			return errs.NewValueIsRequiredError("receivedQuantity")
		}
		if *quantity < 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"receivedQuantity is invalid",
				fmt.Errorf("%d is negative", *quantity),
			)
		}
		s.receivingWarehouse = &warehouseName
		s.receivedQuantity = quantity

	case Rejected:
		if details.RejectionReason == "" {
			return errs.NewValueIsRequiredError("rejectionReason")
		}
		reason := details.RejectionReason
		s.rejectionReason = &reason
		s.rejectionActor = actor.Name()

	case Unknown, Intake, PlannedAirfreight, PlannedSeafreight,
		InTransitAirfreight, InTransitSeafreight, ArrivedKLM, ArrivedPTA,
		ClearingCustoms, InWarehouse, Archived:
		// No stage-specific fields for these targets.
	}

	return nil
}

func (s *Shipment) appendHistory(from, to Status, actor kernel.Actor, note string) {
	s.history = append(s.history, HistoryEntry{
		FromStatus: from,
		ToStatus:   to,
		Actor:      actor.Name(),
		Note:       note,
		ChangedAt:  time.Now().UTC(),
	})
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("supplierID", err)
	}
	s.supplierID = supplierID
	return nil
}

func (s *Shipment) setOrderReference(orderReference string) error {
	if orderReference == "" {
		return errs.NewValueIsRequiredError("orderReference")
	}
	s.orderReference = orderReference
	return nil
}

func (s *Shipment) setWeekNumber(weekNumber int) error {
	if weekNumber < minWeekNumber || weekNumber > maxWeekNumber {
		return errs.NewValueIsOutOfRangeError("weekNumber", weekNumber, minWeekNumber, maxWeekNumber)
	}
	s.weekNumber = weekNumber
	return nil
}

func (s *Shipment) setExpectedQuantity(expectedQuantity int) error {
	if expectedQuantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"expectedQuantity is invalid",
			fmt.Errorf("%d is not greater than 0", expectedQuantity),
		)
	}
	s.expectedQuantity = expectedQuantity
	return nil
}
