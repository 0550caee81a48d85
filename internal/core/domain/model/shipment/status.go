package shipment

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for every rejected status transition.
// Use errors.Is to classify; the concrete InvalidTransitionError names both
// the current and the requested status.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a transition request that is not present in
// the transition table. It always names both states so callers can surface a
// precise message instead of a generic "update failed".
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given pair.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// Status represents the lifecycle state of a freight shipment.
// It implements a state machine whose transition table is the single source
// of truth for legality: any pair absent from the table is rejected with
// ErrInvalidTransition.
//
// State transitions (happy path):
//
//	Intake ──> PlannedAirfreight ──> InTransitAirfreight ──┐
//	   └─────> PlannedSeafreight ──> InTransitSeafreight ──┤
//	                                                       ▼
//	                              ArrivedKLM / ArrivedPTA ──> ClearingCustoms
//	                                                               │
//	   ┌───────────────────────────────────────────────────────────┘
//	   ▼
//	InWarehouse ──> Unloading ──> InspectionInProgress ──┬──> InspectionPassed
//	                    ▲                                └──> InspectionFailed
//	                    │                                          │
//	                    └──────────────(re-inspection)─────────────┤
//	                                                               ▼
//	InspectionPassed ──> ReceivingGoods ──> Stored ──> Archived    Rejected ──> Archived
//
// Transitions are monotonic along the happy path; the one modeled cycle is
// InspectionFailed -> Unloading (re-inspection after corrective action).
// Rejected is reachable from InspectionFailed and ReceivingGoods only.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Intake is the initial status when a shipment line is first registered,
	// before a freight mode has been planned.
	Intake

	// PlannedAirfreight indicates the shipment is booked for air freight.
	PlannedAirfreight

	// PlannedSeafreight indicates the shipment is booked for sea freight.
	PlannedSeafreight

	// InTransitAirfreight indicates the shipment is airborne toward South Africa.
	InTransitAirfreight

	// InTransitSeafreight indicates the shipment is at sea toward South Africa.
	InTransitSeafreight

	// ArrivedKLM indicates arrival at the Klapmuts facility.
	ArrivedKLM

	// ArrivedPTA indicates arrival at the Pretoria facility.
	ArrivedPTA

	// ClearingCustoms indicates the shipment is held in customs clearance.
	ClearingCustoms

	// InWarehouse indicates the shipment has reached the receiving warehouse
	// yard and is queued for unloading.
	InWarehouse

	// Unloading indicates warehouse staff are unloading the shipment.
	Unloading

	// InspectionInProgress indicates an inspector is examining the goods.
	InspectionInProgress

	// InspectionPassed indicates the inspection succeeded; the shipment may
	// proceed to receiving.
	InspectionPassed

	// InspectionFailed indicates the inspection found problems. From here the
	// shipment either re-enters Unloading for re-inspection or is rejected.
	InspectionFailed

	// ReceivingGoods indicates a receiving clerk is counting the goods in.
	ReceivingGoods

	// Stored indicates the shipment occupies a warehouse bin. Entering Stored
	// reserves one bin; leaving it (archive) releases the bin.
	Stored

	// Rejected is a terminal state for shipments returned to the supplier.
	// Reachable from InspectionFailed and ReceivingGoods only.
	Rejected

	// Archived is the terminal soft-retirement state. Archived shipments are
	// never physically deleted, preserving the capacity audit trail.
	Archived
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:              "unknown",
		Intake:               "intake",
		PlannedAirfreight:    "planned_airfreight",
		PlannedSeafreight:    "planned_seafreight",
		InTransitAirfreight:  "in_transit_airfreight",
		InTransitSeafreight:  "in_transit_seafreight",
		ArrivedKLM:           "arrived_klm",
		ArrivedPTA:           "arrived_pta",
		ClearingCustoms:      "clearing_customs",
		InWarehouse:          "in_warehouse",
		Unloading:            "unloading",
		InspectionInProgress: "inspection_in_progress",
		InspectionPassed:     "inspection_passed",
		InspectionFailed:     "inspection_failed",
		ReceivingGoods:       "receiving_goods",
		Stored:               "stored",
		Rejected:             "rejected",
		Archived:             "archived",
	}
}

// getTransitionTable returns the single source of truth for transition
// legality. Any (current, requested) pair not represented here fails with
// ErrInvalidTransition.
func getTransitionTable() map[Status][]Status {
	return map[Status][]Status{
		Intake:               {PlannedAirfreight, PlannedSeafreight},
		PlannedAirfreight:    {InTransitAirfreight},
		PlannedSeafreight:    {InTransitSeafreight},
		InTransitAirfreight:  {ArrivedKLM, ArrivedPTA},
		InTransitSeafreight:  {ArrivedKLM, ArrivedPTA},
		ArrivedKLM:           {ClearingCustoms},
		ArrivedPTA:           {ClearingCustoms},
		ClearingCustoms:      {InWarehouse},
		InWarehouse:          {Unloading},
		Unloading:            {InspectionInProgress},
		InspectionInProgress: {InspectionPassed, InspectionFailed},
		InspectionPassed:     {ReceivingGoods},
		InspectionFailed:     {Unloading, Rejected},
		ReceivingGoods:       {Stored, Rejected},
		Stored:               {Archived},
		Rejected:             {Archived},
	}
}

// StatusFromString parses the wire representation of a status (snake_case,
// as persisted and as accepted by the HTTP layer).
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a known status", s),
	)
}

// String returns the snake_case name of the status.
// Returns "unknown" for invalid status values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// CanTransitionTo reports whether the transition table contains the
// (s, target) pair.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitionTable()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the requested transition against the table.
//
// Returns:
//   - (target, nil) when the pair is present in the table
//   - (Unknown, *InvalidTransitionError) naming both states otherwise
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, NewInvalidTransitionError(s, target)
	}
	return target, nil
}

// IsTerminal reports whether the status ends the inbound workflow.
// Stored shipments are complete (they only move on to Archived), and
// Rejected and Archived accept no further work.
func (s Status) IsTerminal() bool {
	switch s {
	case Stored, Rejected, Archived:
		return true
	default:
		return false
	}
}

// CapacityEffect describes what a transition implies for warehouse bin
// occupancy. The orchestrator applies the effect in the same transaction
// as the status change.
type CapacityEffect int

const (
	// CapacityNone means the transition does not touch warehouse capacity.
	CapacityNone CapacityEffect = iota

	// CapacityReserve means the transition must reserve one bin before commit.
	CapacityReserve

	// CapacityRelease means the transition frees the bin held by the shipment.
	CapacityRelease
)

// CapacityEffectOf derives the ledger effect of a transition: entering Stored
// reserves a bin; leaving Stored (archive or reject) releases it. All other
// transitions leave capacity untouched.
func CapacityEffectOf(from, to Status) CapacityEffect {
	if to == Stored && from != Stored {
		return CapacityReserve
	}
	if from == Stored && (to == Archived || to == Rejected) {
		return CapacityRelease
	}
	return CapacityNone
}
