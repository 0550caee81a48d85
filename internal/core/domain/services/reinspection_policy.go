package services

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/shipment"
)

// ErrReinspectionLimitReached is returned when a shipment has exhausted its
// allowed re-inspection attempts and must be rejected instead of re-entering
// unloading.
var ErrReinspectionLimitReached = errors.New("re-inspection limit reached")

// ReinspectionPolicy is a domain service that bounds the one modeled cycle in
// the shipment state machine: InspectionFailed -> Unloading. The source data
// model places no limit on the cycle, so the cap is configuration rather than
// a hard-coded rule; a limit of zero keeps the cycle unbounded.
//
// Example usage:
//
//	policy := services.NewReinspectionPolicy(3)
//	if err := policy.AuthorizeTransition(s, shipment.Unloading); err != nil {
//	    // cycle exhausted; the shipment must be rejected
//	    return err
//	}
type ReinspectionPolicy struct {
	maxAttempts int
}

// NewReinspectionPolicy creates a policy allowing up to maxAttempts
// re-inspection cycles. Zero (or negative) means unbounded.
func NewReinspectionPolicy(maxAttempts int) ReinspectionPolicy {
	if maxAttempts < 0 {
		maxAttempts = 0
	}
	return ReinspectionPolicy{maxAttempts: maxAttempts}
}

// MaxAttempts returns the configured cap; zero means unbounded.
func (p ReinspectionPolicy) MaxAttempts() int {
	return p.maxAttempts
}

// AuthorizeTransition checks whether the requested transition is a
// re-inspection cycle entry that would exceed the configured cap.
// Transitions other than InspectionFailed -> Unloading always pass.
//
// Returns:
//   - nil when the transition is not the cycle, or the cap is unbounded,
//     or attempts remain
//   - an error wrapping ErrReinspectionLimitReached otherwise
func (p ReinspectionPolicy) AuthorizeTransition(s *shipment.Shipment, target shipment.Status) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if s.Status() != shipment.InspectionFailed || target != shipment.Unloading {
		return nil
	}

	if p.maxAttempts > 0 && s.ReinspectionCount() >= p.maxAttempts {
		return fmt.Errorf("%w: shipment %s already re-inspected %d of %d times",
			ErrReinspectionLimitReached, s.ID(), s.ReinspectionCount(), p.maxAttempts)
	}

	return nil
}
