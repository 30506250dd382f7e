package swing

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/swingtraj/polynomial"
)

// Axes holds one trajectory per Cartesian axis, indexed by Axis. Each entry is either a constant
// polynomial, for an end effector that never lifts off, or a piecewise trajectory.
type Axes [3]polynomial.Evaluator

// Eval returns the position of the end effector at t.
func (a Axes) Eval(t float64) (r3.Vector, error) {
	return a.evalDerivative(t, 0)
}

// EvalDerivative returns the n-th time derivative of the end effector position at t.
func (a Axes) EvalDerivative(t float64, n int) (r3.Vector, error) {
	return a.evalDerivative(t, n)
}

func (a Axes) evalDerivative(t float64, n int) (r3.Vector, error) {
	var out [3]float64
	for i, e := range a {
		if e == nil {
			return r3.Vector{}, errors.Errorf("no trajectory for axis %s", Axis(i))
		}
		var (
			v   float64
			err error
		)
		if n == 0 {
			v, err = e.Eval(t)
		} else {
			v, err = e.EvalDerivative(t, n)
		}
		if err != nil {
			return r3.Vector{}, errors.Wrapf(err, "axis %s", Axis(i))
		}
		out[i] = v
	}
	return r3.Vector{X: out[0], Y: out[1], Z: out[2]}, nil
}

// TrajectorySet maps end effector names to their per-axis trajectories.
type TrajectorySet map[string]Axes

// EndEffectors returns the end effector names in sorted order.
func (ts TrajectorySet) EndEffectors() []string {
	names := make([]string, 0, len(ts))
	for name := range ts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Position returns where the named end effector is at t.
func (ts TrajectorySet) Position(endEffector string, t float64) (r3.Vector, error) {
	axes, ok := ts[endEffector]
	if !ok {
		return r3.Vector{}, errors.Errorf("no trajectory for end effector %q", endEffector)
	}
	pos, err := axes.Eval(t)
	if err != nil {
		return r3.Vector{}, errors.Wrapf(err, "end effector %q", endEffector)
	}
	return pos, nil
}

// Velocity returns the velocity of the named end effector at t.
func (ts TrajectorySet) Velocity(endEffector string, t float64) (r3.Vector, error) {
	axes, ok := ts[endEffector]
	if !ok {
		return r3.Vector{}, errors.Errorf("no trajectory for end effector %q", endEffector)
	}
	vel, err := axes.EvalDerivative(t, 1)
	if err != nil {
		return r3.Vector{}, errors.Wrapf(err, "end effector %q", endEffector)
	}
	return vel, nil
}

// Waypoint is an end effector position at a point in time.
type Waypoint struct {
	Time     float64
	Position r3.Vector
}

// MaxSampleSteps bounds how many waypoints Sample produces per end effector.
const MaxSampleSteps = 1 << 20

// Sample evaluates every end effector on the grid start, start+dt, ... up to and including end
// (to within a small tolerance on the last step).
func (ts TrajectorySet) Sample(start, end, dt float64) (map[string][]Waypoint, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, errors.Errorf("sample step must be positive and finite, got %v", dt)
	}
	if math.IsNaN(start) || math.IsInf(start, 0) || math.IsNaN(end) || math.IsInf(end, 0) {
		return nil, errors.Errorf("sample window [%v, %v] must be finite", start, end)
	}
	if end < start {
		return nil, errors.Errorf("sample window ends (%v) before it starts (%v)", end, start)
	}
	span := math.Floor((end-start)/dt + 1e-9)
	if span >= MaxSampleSteps {
		return nil, errors.Errorf("sampling [%v, %v] every %v needs more than %d steps", start, end, dt, MaxSampleSteps)
	}
	steps := int(span) + 1

	out := make(map[string][]Waypoint, len(ts))
	for _, name := range ts.EndEffectors() {
		waypoints := make([]Waypoint, steps)
		for i := range waypoints {
			at := start + float64(i)*dt
			pos, err := ts.Position(name, at)
			if err != nil {
				return nil, err
			}
			waypoints[i] = Waypoint{Time: at, Position: pos}
		}
		out[name] = waypoints
	}
	return out, nil
}
