package polynomial

import (
	"testing"

	"go.viam.com/test"
)

func TestBuildBoundaryConstraints(t *testing.T) {
	cs := BuildBoundaryConstraints(1, 3, 0.5, 1.5, nil)
	test.That(t, cs, test.ShouldHaveLength, BoundaryConstraintCount)
	test.That(t, cs, test.ShouldResemble, []Constraint{
		{Time: 1, Value: 0.5, Order: Position},
		{Time: 1, Value: 0, Order: Velocity},
		{Time: 1, Value: 0, Order: Acceleration},
		{Time: 2, Value: 1, Order: Position},
		{Time: 3, Value: 1.5, Order: Position},
		{Time: 3, Value: 0, Order: Velocity},
		{Time: 3, Value: 0, Order: Acceleration},
	})

	via := 4.0
	cs = BuildBoundaryConstraints(0, 1, 0, 0, &via)
	test.That(t, cs[3], test.ShouldResemble, Constraint{Time: 0.5, Value: 4, Order: Position})
}

func TestFitBoundarySatisfiesConstraints(t *testing.T) {
	lift := 0.25
	for _, tc := range []struct {
		name   string
		t0, t1 float64
		x0, x1 float64
		via    *float64
	}{
		{"unit step", 0, 1, 0, 1, nil},
		{"stationary", 0, 1, 0.3, 0.3, nil},
		{"backwards", 1, 2, 1.2, -0.7, nil},
		{"lifted", 0.4, 1.1, 0, 0.05, &lift},
		{"short window", 1.5, 1.7, -0.1, 0.1, &lift},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p, err := FitBoundary(tc.t0, tc.t1, tc.x0, tc.x1, tc.via)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, p.Order(), test.ShouldEqual, BoundaryConstraintCount-1)

			for _, c := range p.Constraints() {
				got, err := p.EvalDerivative(c.Time, int(c.Order))
				test.That(t, err, test.ShouldBeNil)
				test.That(t, WithinTolerance(got, c.Value, DefaultTolerance), test.ShouldBeTrue)
			}
		})
	}
}

func TestFitBoundaryRestToRest(t *testing.T) {
	p, err := FitBoundary(0, 1, -0.2, 0.6, nil)
	test.That(t, err, test.ShouldBeNil)

	velocity, err := NewFromTerms(p.Differentiate())
	test.That(t, err, test.ShouldBeNil)
	acceleration, err := NewFromTerms(Differentiate(p.Differentiate()))
	test.That(t, err, test.ShouldBeNil)

	for _, at := range []float64{0, 1} {
		v, err := velocity.Eval(at)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, v, test.ShouldAlmostEqual, 0, DefaultTolerance)

		a, err := acceleration.Eval(at)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, a, test.ShouldAlmostEqual, 0, DefaultTolerance)
	}

	mid, err := p.Eval(0.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mid, test.ShouldAlmostEqual, 0.2, DefaultTolerance)
}

func TestFitBoundarySwingApex(t *testing.T) {
	apex := 0.1
	p, err := FitBoundary(0, 1, 0, 0, &apex)
	test.That(t, err, test.ShouldBeNil)

	for _, tc := range []struct {
		at, want float64
	}{
		{0, 0},
		{0.5, 0.1},
		{1, 0},
	} {
		got, err := p.Eval(tc.at)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, got, test.ShouldAlmostEqual, tc.want, DefaultTolerance)
	}

	// symmetric around the apex
	early, err := p.Eval(0.2)
	test.That(t, err, test.ShouldBeNil)
	late, err := p.Eval(0.8)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, early, test.ShouldAlmostEqual, late, 1e-12)
	test.That(t, early, test.ShouldBeGreaterThan, 0.0)
}

func TestFitBoundaryDegenerateWindow(t *testing.T) {
	_, err := FitBoundary(1, 1, 0, 1, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "singular")
}
