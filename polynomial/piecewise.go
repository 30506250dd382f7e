package polynomial

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultTolerance is the relative (and absolute, near zero) tolerance used when comparing
// positions produced by fitted polynomials.
const DefaultTolerance = 1e-9

// WithinTolerance reports whether a and b agree to within tol, absolutely or relatively.
func WithinTolerance(a, b, tol float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, tol, tol)
}

// Interval is a closed time window [Start, End].
type Interval struct {
	Start float64
	End   float64
}

type segment struct {
	interval Interval
	eval     Evaluator
}

// Piecewise is one axis of a trajectory built from time-windowed segments, appended in
// chronological order.
//
// Lookup scans forward from the first segment and stops at the first one whose window has not
// ended before t, or at the last segment. The chosen segment is evaluated at t even when t lies
// outside its window, so queries before the first window or after the last one extrapolate the
// boundary segment, and queries in a gap between two windows use the later one.
type Piecewise struct {
	segments []segment
}

// NewPiecewise returns an empty piecewise trajectory.
func NewPiecewise() *Piecewise {
	return &Piecewise{}
}

// Append adds a segment. Segments are not reordered.
func (pw *Piecewise) Append(interval Interval, e Evaluator) {
	pw.segments = append(pw.segments, segment{interval: interval, eval: e})
}

// Len returns the number of segments.
func (pw *Piecewise) Len() int {
	return len(pw.segments)
}

// Intervals returns the segment windows in registration order.
func (pw *Piecewise) Intervals() []Interval {
	out := make([]Interval, len(pw.segments))
	for i, seg := range pw.segments {
		out[i] = seg.interval
	}
	return out
}

// Span returns the window from the first segment's start to the last segment's end.
func (pw *Piecewise) Span() (Interval, error) {
	if len(pw.segments) == 0 {
		return Interval{}, ErrEmptyTrajectory
	}
	return Interval{Start: pw.segments[0].interval.Start, End: pw.segments[len(pw.segments)-1].interval.End}, nil
}

func (pw *Piecewise) lookup(t float64) (Evaluator, error) {
	if len(pw.segments) == 0 {
		return nil, ErrEmptyTrajectory
	}
	i := 0
	last := len(pw.segments) - 1
	for i < last && pw.segments[i].interval.End < t {
		i++
	}
	return pw.segments[i].eval, nil
}

// Eval returns the value of the selected segment at t.
func (pw *Piecewise) Eval(t float64) (float64, error) {
	e, err := pw.lookup(t)
	if err != nil {
		return 0, err
	}
	return e.Eval(t)
}

// EvalDerivative returns the n-th derivative of the selected segment at t.
func (pw *Piecewise) EvalDerivative(t float64, n int) (float64, error) {
	e, err := pw.lookup(t)
	if err != nil {
		return 0, err
	}
	return e.EvalDerivative(t, n)
}

// CheckContinuity verifies that each segment ends where the next one starts, comparing the end
// of segment i at its window end with the start of segment i+1 at its window start.
func (pw *Piecewise) CheckContinuity(tol float64) error {
	for i := 0; i+1 < len(pw.segments); i++ {
		cur, next := pw.segments[i], pw.segments[i+1]
		end, err := cur.eval.Eval(cur.interval.End)
		if err != nil {
			return errors.Wrapf(err, "segment %d", i)
		}
		start, err := next.eval.Eval(next.interval.Start)
		if err != nil {
			return errors.Wrapf(err, "segment %d", i+1)
		}
		if !WithinTolerance(end, start, tol) {
			return errors.Errorf("segment %d ends at %g (t=%g) but segment %d starts at %g (t=%g)",
				i, end, cur.interval.End, i+1, start, next.interval.Start)
		}
	}
	return nil
}
