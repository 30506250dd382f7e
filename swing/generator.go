// Package swing generates end effector trajectories for a legged robot: every swing between two
// ground contacts becomes a rest-to-rest polynomial per axis that lifts the foot over the terrain.
package swing

import (
	"context"
	"math"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/swingtraj/logging"
	"go.viam.com/swingtraj/polynomial"
	"go.viam.com/swingtraj/utils"
)

// ErrNoContacts is returned for an end effector whose contact sequence is empty.
var ErrNoContacts = errors.New("end effector has no contacts")

// Generator turns contact sequences into end effector trajectories.
type Generator struct {
	cfg    Config
	logger logging.Logger
}

// NewGenerator returns a Generator using cfg, or DefaultConfig when cfg is nil.
func NewGenerator(cfg *Config, logger logging.Logger) (*Generator, error) {
	conf := DefaultConfig()
	if cfg != nil {
		conf = *cfg
	}
	if err := conf.Validate(""); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Global()
	}
	return &Generator{cfg: conf, logger: logger}, nil
}

// Generate builds the trajectories of every end effector from its chronologically ordered
// contacts. zMax and zMin bound the terrain height and set the swing apex height above the
// liftoff position, which is never lower than the configured minimum clearance.
//
// An end effector with a single contact stays on the ground: each axis is a constant at the
// contact position. Otherwise each pair of consecutive contacts yields one segment per axis over
// [contacts[i].EndTime(), contacts[i+1].StartTime()]. Contact times must be strictly increasing and
// distinct; nothing is reordered or repaired, and any fit failure fails the whole call.
func (g *Generator) Generate(
	ctx context.Context,
	contacts map[string][]ContactEvent,
	zMax, zMin float64,
) (TrajectorySet, error) {
	names := make([]string, 0, len(contacts))
	for name := range contacts {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]Axes, len(names))
	work := func(ctx context.Context, i int) error {
		axes, err := g.endEffector(ctx, names[i], contacts[names[i]], zMax, zMin)
		if err != nil {
			return err
		}
		results[i] = axes
		return nil
	}

	if g.cfg.Parallel {
		if err := utils.ForEachParallel(ctx, len(names), work); err != nil {
			return nil, err
		}
	} else {
		var errs error
		for i := range names {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			errs = multierr.Append(errs, work(ctx, i))
		}
		if errs != nil {
			return nil, errs
		}
	}

	set := make(TrajectorySet, len(names))
	for i, name := range names {
		set[name] = results[i]
	}
	return set, nil
}

// Generate builds trajectories with the default configuration and the global logger.
func Generate(ctx context.Context, contacts map[string][]ContactEvent, zMax, zMin float64) (TrajectorySet, error) {
	g, err := NewGenerator(nil, nil)
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx, contacts, zMax, zMin)
}

func (g *Generator) endEffector(
	ctx context.Context,
	name string,
	contacts []ContactEvent,
	zMax, zMin float64,
) (Axes, error) {
	switch len(contacts) {
	case 0:
		return Axes{}, errors.Wrapf(ErrNoContacts, "end effector %q", name)
	case 1:
		pos := contacts[0].Position()
		g.logger.CDebugw(ctx, "end effector stays in contact", "end_effector", name, "position", pos)
		return Axes{
			polynomial.NewConstant(pos.X),
			polynomial.NewConstant(pos.Y),
			polynomial.NewConstant(pos.Z),
		}, nil
	}

	clearance := math.Max(zMax-zMin, g.cfg.Clearance())
	trajs := [3]*polynomial.Piecewise{polynomial.NewPiecewise(), polynomial.NewPiecewise(), polynomial.NewPiecewise()}
	for i := 0; i+1 < len(contacts); i++ {
		from, to := contacts[i], contacts[i+1]
		window := polynomial.Interval{Start: from.EndTime(), End: to.StartTime()}
		start, end := from.Position(), to.Position()

		for _, axis := range []Axis{X, Y, Z} {
			var via *float64
			if axis == Z {
				apex := start.Z + clearance
				via = &apex
			}
			seg, cond, err := g.fitSwing(window, component(start, axis), component(end, axis), via)
			if err != nil {
				return Axes{}, errors.Wrapf(err, "end effector %q transition %d axis %s", name, i, axis)
			}
			if cond > mat.ConditionTolerance {
				g.logger.Warnw("swing fit is ill-conditioned; consider normalize_time",
					"end_effector", name, "transition", i, "axis", axis.String(), "condition", cond)
			}
			trajs[axis].Append(window, seg)
		}
	}

	if g.cfg.CheckContinuity {
		for _, axis := range []Axis{X, Y, Z} {
			if err := trajs[axis].CheckContinuity(polynomial.DefaultTolerance); err != nil {
				g.logger.Warnw("swing trajectory is discontinuous",
					"end_effector", name, "axis", axis.String(), "error", err)
			}
		}
	}

	g.logger.CDebugw(ctx, "fitted swing trajectories",
		"end_effector", name, "transitions", len(contacts)-1, "clearance", clearance)
	return Axes{trajs[X], trajs[Y], trajs[Z]}, nil
}

func (g *Generator) fitSwing(window polynomial.Interval, from, to float64, via *float64) (polynomial.Evaluator, float64, error) {
	if g.cfg.NormalizeTime {
		ts, err := polynomial.FitBoundaryNormalized(window.Start, window.End, from, to, via)
		if err != nil {
			return nil, 0, err
		}
		return ts, ts.Polynomial().Condition(), nil
	}
	p, err := polynomial.FitBoundary(window.Start, window.End, from, to, via)
	if err != nil {
		return nil, 0, err
	}
	return p, p.Condition(), nil
}
