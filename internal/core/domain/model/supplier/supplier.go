// Package supplier provides the Supplier entity: a stable identity for the
// supplying party. Shipments reference suppliers by identifier rather than
// by free-text name, so case-mismatched names can never break aggregation;
// the display name is resolved by join.
package supplier

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// ErrSupplierIsNotConstructed is returned when a Supplier instance was not
// created through NewSupplier or RestoreSupplier.
var ErrSupplierIsNotConstructed = errors.New("Supplier must be created via NewSupplier or RestoreSupplier")

// Supplier is the supplying party of a shipment. It is deliberately small:
// the supplier portal and contact management live outside the core, which
// needs only a stable identity and a display name.
type Supplier struct {
	id   kernel.UUID
	name string

	guard guard.ConstructorGuard
}

// NewSupplier registers a supplier with a unique identifier and display name.
func NewSupplier(id kernel.UUID, name string) (*Supplier, error) {
	s := &Supplier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(s.setID(id), s.setName(name)); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreSupplier reconstructs a supplier from persistent storage.
func RestoreSupplier(id kernel.UUID, name string) (*Supplier, error) {
	return NewSupplier(id, name)
}

// Validate ensures the Supplier was constructed through its constructor.
func (s *Supplier) Validate() error {
	if s == nil {
		return ErrSupplierIsNotConstructed
	}
	return s.guard.Validate(ErrSupplierIsNotConstructed)
}

// IsEqual compares two suppliers by their unique identifiers.
func (s *Supplier) IsEqual(other *Supplier) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the supplier's unique identifier.
func (s *Supplier) ID() kernel.UUID {
	return s.id
}

// Name returns the supplier's display name.
func (s *Supplier) Name() string {
	return s.name
}

func (s *Supplier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Supplier) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}
