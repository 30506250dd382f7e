package polynomial

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

// twoSteps returns a trajectory moving 0 -> 1 over [0, 1] and 1 -> 3 over [1, 2].
func twoSteps(t *testing.T) (*Piecewise, *Polynomial, *Polynomial) {
	t.Helper()
	first, err := FitBoundary(0, 1, 0, 1, nil)
	test.That(t, err, test.ShouldBeNil)
	second, err := FitBoundary(1, 2, 1, 3, nil)
	test.That(t, err, test.ShouldBeNil)

	pw := NewPiecewise()
	pw.Append(Interval{Start: 0, End: 1}, first)
	pw.Append(Interval{Start: 1, End: 2}, second)
	return pw, first, second
}

func TestPiecewiseEmpty(t *testing.T) {
	pw := NewPiecewise()
	_, err := pw.Eval(0)
	test.That(t, errors.Is(err, ErrEmptyTrajectory), test.ShouldBeTrue)
	_, err = pw.EvalDerivative(0, 1)
	test.That(t, errors.Is(err, ErrEmptyTrajectory), test.ShouldBeTrue)
	_, err = pw.Span()
	test.That(t, errors.Is(err, ErrEmptyTrajectory), test.ShouldBeTrue)
	test.That(t, pw.CheckContinuity(DefaultTolerance), test.ShouldBeNil)
}

func TestPiecewiseContinuity(t *testing.T) {
	pw, first, second := twoSteps(t)
	test.That(t, pw.Len(), test.ShouldEqual, 2)
	test.That(t, pw.Intervals(), test.ShouldResemble, []Interval{{0, 1}, {1, 2}})
	span, err := pw.Span()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, span, test.ShouldResemble, Interval{0, 2})

	// The shared boundary belongs to the first segment and agrees with the second segment's start.
	atBoundary, err := pw.Eval(1)
	test.That(t, err, test.ShouldBeNil)
	fromFirst, err := first.Eval(1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, atBoundary, test.ShouldEqual, fromFirst)
	test.That(t, atBoundary, test.ShouldAlmostEqual, 1, DefaultTolerance)
	fromSecond, err := second.Eval(1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, WithinTolerance(atBoundary, fromSecond, DefaultTolerance), test.ShouldBeTrue)

	test.That(t, pw.CheckContinuity(DefaultTolerance), test.ShouldBeNil)
}

func TestPiecewiseSegmentSelection(t *testing.T) {
	pw, first, second := twoSteps(t)

	for _, tc := range []struct {
		name string
		at   float64
		poly *Polynomial
	}{
		{"inside first", 0.3, first},
		{"inside second", 1.5, second},
		{"end of second", 2, second},
		{"before first window", -0.5, first},
		{"after last window", 2.75, second},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pw.Eval(tc.at)
			test.That(t, err, test.ShouldBeNil)
			want, err := tc.poly.Eval(tc.at)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, got, test.ShouldEqual, want)

			gotVel, err := pw.EvalDerivative(tc.at, 1)
			test.That(t, err, test.ShouldBeNil)
			wantVel, err := tc.poly.EvalDerivative(tc.at, 1)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, gotVel, test.ShouldEqual, wantVel)
		})
	}
}

func TestPiecewiseGapUsesLaterSegment(t *testing.T) {
	first, err := FitBoundary(0, 1, 0, 1, nil)
	test.That(t, err, test.ShouldBeNil)
	second, err := FitBoundary(2, 3, 1, 0, nil)
	test.That(t, err, test.ShouldBeNil)

	pw := NewPiecewise()
	pw.Append(Interval{0, 1}, first)
	pw.Append(Interval{2, 3}, second)

	got, err := pw.Eval(1.5)
	test.That(t, err, test.ShouldBeNil)
	want, err := second.Eval(1.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got, test.ShouldEqual, want)

	test.That(t, pw.CheckContinuity(DefaultTolerance), test.ShouldBeNil)
}

func TestPiecewiseCheckContinuityFailure(t *testing.T) {
	first, err := FitBoundary(0, 1, 0, 1, nil)
	test.That(t, err, test.ShouldBeNil)

	pw := NewPiecewise()
	pw.Append(Interval{0, 1}, first)
	pw.Append(Interval{1, 2}, NewConstant(5))

	err = pw.CheckContinuity(DefaultTolerance)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "segment 1 starts at 5")

	pw.Append(Interval{2, 3}, New())
	err = pw.CheckContinuity(1e3)
	test.That(t, errors.Is(err, ErrNotFitted), test.ShouldBeTrue)
}

func TestPiecewiseSingleSegmentExtrapolates(t *testing.T) {
	only, err := FitBoundary(0, 1, 0, 1, nil)
	test.That(t, err, test.ShouldBeNil)
	pw := NewPiecewise()
	pw.Append(Interval{0, 1}, only)

	for _, at := range []float64{-3, 0.5, 4} {
		got, err := pw.Eval(at)
		test.That(t, err, test.ShouldBeNil)
		want, err := only.Eval(at)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, got, test.ShouldEqual, want)
	}
}
