package swing

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// ContactEvent is a window during which an end effector rests on the ground at a fixed position.
// Contact sequences come from an external contact planner.
type ContactEvent interface {
	StartTime() float64
	EndTime() float64
	Position() r3.Vector
}

// Contact is a plain ContactEvent.
type Contact struct {
	Start float64
	End   float64
	Pos   r3.Vector
}

// NewContact returns a contact held at pos over [start, end].
func NewContact(start, end float64, pos r3.Vector) *Contact {
	return &Contact{Start: start, End: end, Pos: pos}
}

// StartTime returns when the end effector touches down.
func (c *Contact) StartTime() float64 { return c.Start }

// EndTime returns when the end effector lifts off.
func (c *Contact) EndTime() float64 { return c.End }

// Position returns where the end effector rests.
func (c *Contact) Position() r3.Vector { return c.Pos }

func (c *Contact) String() string {
	return fmt.Sprintf("contact[%g, %g]@(%g, %g, %g)", c.Start, c.End, c.Pos.X, c.Pos.Y, c.Pos.Z)
}

// Axis is one of the three Cartesian axes a trajectory is planned along.
type Axis int

// The axes, in the order they appear in Axes.
const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

func component(v r3.Vector, a Axis) float64 {
	switch a {
	case X:
		return v.X
	case Y:
		return v.Y
	default:
		return v.Z
	}
}
