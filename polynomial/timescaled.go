package polynomial

import (
	"math"

	"github.com/pkg/errors"
)

// TimeScaled evaluates a polynomial fitted on local time tau = (t - start) / duration, which maps
// a transition window onto [0, 1] and keeps the constraint matrix well conditioned no matter how
// far from zero the window lies.
type TimeScaled struct {
	poly     *Polynomial
	start    float64
	duration float64
}

// FitBoundaryNormalized fits the same rest-to-rest boundary constraints as FitBoundary, but on
// normalized time. Velocity and acceleration targets are zero, so they are unchanged by the time
// scaling and the resulting positions match the absolute-time fit.
func FitBoundaryNormalized(t0, t1, x0, x1 float64, via *float64) (*TimeScaled, error) {
	duration := t1 - t0
	if duration == 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, errors.Wrapf(NewSingularSystemError(math.Inf(1)), "fitting swing over [%g, %g]", t0, t1)
	}
	poly, err := FitBoundary(0, 1, x0, x1, via)
	if err != nil {
		return nil, err
	}
	return &TimeScaled{poly: poly, start: t0, duration: duration}, nil
}

// Polynomial returns the underlying polynomial in normalized time.
func (ts *TimeScaled) Polynomial() *Polynomial {
	return ts.poly
}

// Eval returns the position at absolute time t.
func (ts *TimeScaled) Eval(t float64) (float64, error) {
	return ts.poly.Eval(ts.local(t))
}

// EvalDerivative returns the n-th derivative with respect to absolute time at t.
func (ts *TimeScaled) EvalDerivative(t float64, n int) (float64, error) {
	v, err := ts.poly.EvalDerivative(ts.local(t), n)
	if err != nil {
		return 0, err
	}
	return v / math.Pow(ts.duration, float64(n)), nil
}

func (ts *TimeScaled) local(t float64) float64 {
	return (t - ts.start) / ts.duration
}
