package polynomial

import "github.com/pkg/errors"

// BoundaryConstraintCount is the number of rows BuildBoundaryConstraints produces, and therefore
// the number of coefficients of a boundary-fitted polynomial.
const BoundaryConstraintCount = 7

// BuildBoundaryConstraints returns the constraints for one axis of a swing between leaving x0 at
// t0 and arriving at x1 at t1: rest-to-rest boundary conditions (position, zero velocity and zero
// acceleration) at both ends plus a via point halfway through the window. A nil via uses the
// straight-line midpoint of x0 and x1.
func BuildBoundaryConstraints(t0, t1, x0, x1 float64, via *float64) []Constraint {
	center := t0 + 0.5*(t1-t0)
	viaValue := x0 + 0.5*(x1-x0)
	if via != nil {
		viaValue = *via
	}
	return []Constraint{
		{Time: t0, Value: x0, Order: Position},
		{Time: t0, Value: 0, Order: Velocity},
		{Time: t0, Value: 0, Order: Acceleration},
		{Time: center, Value: viaValue, Order: Position},
		{Time: t1, Value: x1, Order: Position},
		{Time: t1, Value: 0, Order: Velocity},
		{Time: t1, Value: 0, Order: Acceleration},
	}
}

// FitBoundary builds the boundary constraints for the given window and returns the fitted
// polynomial.
func FitBoundary(t0, t1, x0, x1 float64, via *float64) (*Polynomial, error) {
	p := New()
	if err := p.AddConstraints(BuildBoundaryConstraints(t0, t1, x0, x1, via)...); err != nil {
		return nil, err
	}
	if err := p.Fit(); err != nil {
		return nil, errors.Wrapf(err, "fitting swing over [%g, %g]", t0, t1)
	}
	return p, nil
}
