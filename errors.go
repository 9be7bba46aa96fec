package tabula

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by the scene, builder, animation and
// drag engines wraps exactly one of these.
var (
	// ErrIllegalStructuralRole is returned when a component reaches a code
	// path that needs a capability it does not declare.
	ErrIllegalStructuralRole = errors.New("illegal structural role")

	// ErrConcurrentModification is returned when the model changed in a way
	// that invalidates an in-flight drag rollback or grid lookup.
	ErrConcurrentModification = errors.New("concurrent structural modification")

	// ErrPrecondition is returned when a call is made in a state that does
	// not allow it.
	ErrPrecondition = errors.New("precondition violated")
)

// Narrower precondition failures.
var (
	ErrDragInProgress  = fmt.Errorf("%w: a drag is already in progress", ErrPrecondition)
	ErrNoDrag          = fmt.Errorf("%w: no drag in progress", ErrPrecondition)
	ErrSceneLocked     = fmt.Errorf("%w: scene is locked", ErrPrecondition)
	ErrNotDraggable    = fmt.Errorf("%w: component is not draggable", ErrPrecondition)
	ErrNotInScene      = fmt.Errorf("%w: component is not part of the scene", ErrPrecondition)
	ErrAnimationReused = fmt.Errorf("%w: animation was already played", ErrPrecondition)
	ErrNotInGroup      = fmt.Errorf("%w: item is not a member of the group", ErrPrecondition)
)

// StructuralRoleError reports a component used in a role it cannot fill.
type StructuralRoleError struct {
	Component Component
	Role      string
}

// Error describes the component and the role it failed to fill.
func (e *StructuralRoleError) Error() string {
	name := "<nil>"
	if e.Component != nil {
		name = fmt.Sprintf("%T %q", e.Component, e.Component.Base().Name)
	}
	return fmt.Sprintf("%s: %s cannot act as %s", ErrIllegalStructuralRole, name, e.Role)
}

// Unwrap returns ErrIllegalStructuralRole.
func (e *StructuralRoleError) Unwrap() error { return ErrIllegalStructuralRole }

func structuralRole(c Component, role string) error {
	return &StructuralRoleError{Component: c, Role: role}
}
