package polynomial

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMissingConstraints is returned by Fit when no constraints were ever registered.
	ErrMissingConstraints = errors.New("no constraints specified for polynomial")
	// ErrNotFitted is returned when evaluating a polynomial that has no coefficients yet.
	ErrNotFitted = errors.New("polynomial has not been fitted yet")
	// ErrAlreadyFitted is returned when adding constraints to a polynomial whose coefficients are fixed.
	ErrAlreadyFitted = errors.New("polynomial is already fitted")
	// ErrEmptyTrajectory is returned when evaluating a piecewise trajectory with no segments.
	ErrEmptyTrajectory = errors.New("piecewise trajectory has no segments")
)

// InvalidConstraintError is returned by Fit when a constraint targets a derivative order other
// than position, velocity or acceleration.
type InvalidConstraintError struct {
	Index int
	Order DerivativeOrder
}

// NewInvalidConstraintError is used when a constraint's derivative order cannot be fitted.
func NewInvalidConstraintError(index int, order DerivativeOrder) error {
	return &InvalidConstraintError{Index: index, Order: order}
}

func (e *InvalidConstraintError) Error() string {
	return fmt.Sprintf("constraint %d has unsupported derivative order %d", e.Index, int(e.Order))
}

// SingularSystemError is returned by Fit when the constraint matrix cannot be inverted, for
// example when two constraints share a time and a derivative order.
type SingularSystemError struct {
	Cond float64
}

// NewSingularSystemError is used when the constraint matrix is not invertible.
func NewSingularSystemError(cond float64) error {
	return &SingularSystemError{Cond: cond}
}

func (e *SingularSystemError) Error() string {
	return fmt.Sprintf("constraint system is singular (condition number %g)", e.Cond)
}
