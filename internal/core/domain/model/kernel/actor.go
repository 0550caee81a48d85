package kernel

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// ErrRoleNotPermitted indicates that the actor's role does not allow the
// requested operation. Role checks happen once, at the command boundary.
var ErrRoleNotPermitted = errs.NewValueIsInvalidError("role is not permitted for this operation")

// Role is a closed enumeration of the parties that interact with the freight
// workflow. Roles are resolved once at the edge (from the authenticated
// session, out of scope here) and matched exhaustively at the command
// boundary, rather than checked ad hoc as free strings.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleAdmin may perform every operation, including administrative
	// capacity overrides.
	RoleAdmin

	// RoleOperator covers warehouse staff, inspectors, and receiving clerks.
	// Operators drive shipment transitions but cannot override capacity.
	RoleOperator

	// RoleSupplier has read-only access; suppliers observe shipment progress
	// but never mutate it.
	RoleSupplier
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleAdmin:    "admin",
		RoleOperator: "operator",
		RoleSupplier: "supplier",
	}
}

// RoleFromString parses a role name as supplied by the HTTP edge.
// Returns an error for anything outside the closed enumeration.
func RoleFromString(s string) (Role, error) {
	switch s {
	case "admin":
		return RoleAdmin, nil
	case "operator":
		return RoleOperator, nil
	case "supplier":
		return RoleSupplier, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%q is not a known role", s),
		)
	}
}

// String returns the lowercase name of the role, or "unknown" for invalid values.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Validate checks that the Role is one of the closed set of valid roles.
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleOperator, RoleSupplier:
		return nil
	case RoleUnknown:
		fallthrough
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
}

// CanMutateShipments reports whether the role may request shipment transitions,
// rejections, and discrepancy records.
func (r Role) CanMutateShipments() bool {
	switch r {
	case RoleAdmin, RoleOperator:
		return true
	case RoleSupplier, RoleUnknown:
		return false
	default:
		return false
	}
}

// CanAdministerCapacity reports whether the role may override warehouse
// capacity figures outside the reserve/release flow.
func (r Role) CanAdministerCapacity() bool {
	return r == RoleAdmin
}

// Actor identifies who performed an operation: a display name for the audit
// trail plus the role the edge resolved for them. Actor is a value object;
// the zero value is invalid and must be built via NewActor.
//
// Every state change in the system records the acting Actor's name, so the
// audit trail stays attributable end to end.
type Actor struct {
	name string
	role Role
}

// NewActor creates an Actor with a non-empty name and a valid role.
func NewActor(name string, role Role) (Actor, error) {
	if name == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor name")
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{name: name, role: role}, nil
}

// Name returns the actor's display name as recorded in audit entries.
func (a Actor) Name() string {
	return a.name
}

// Role returns the actor's resolved role.
func (a Actor) Role() Role {
	return a.role
}

// Validate checks that the Actor was built through NewActor.
func (a Actor) Validate() error {
	if a.name == "" {
		return errs.NewValueIsRequiredError("actor name")
	}
	return a.role.Validate()
}
