package geom

import (
	"fmt"
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(angle float64) float64 {
	return angle / 180 * math.Pi
}

// Vector is a 2D displacement in the drawing plane.
type Vector struct {
	X float64
	Y float64
}

// Position is an absolute machine position: drawing plane X/Y plus tool depth Z. It is a value
// type; all methods return copies.
type Position struct {
	X float64
	Y float64
	Z float64
}

// Add returns the position displaced by v in the drawing plane. Z is held.
func (p Position) Add(v Vector) Position {
	p.X += v.X
	p.Y += v.Y
	return p
}

// Above returns the position with Z replaced by the given height.
func (p Position) Above(z float64) Position {
	p.Z = z
	return p
}

// Equal compares coordinates exactly, with no tolerance. Branch-pop elision depends on this
// exactness: a tolerance here would silently change which branches get elided.
func (p Position) Equal(o Position) bool {
	return p.X == o.X && p.Y == o.Y && p.Z == o.Z
}

// Orientation is a heading angle normalized into [0, 2π).
type Orientation struct {
	angle float64
}

// NewOrientation creates an Orientation, normalizing the given angle (radians) into [0, 2π).
func NewOrientation(angle float64) Orientation {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return Orientation{angle: angle}
}

// Angle returns the normalized angle in radians.
func (o Orientation) Angle() float64 {
	return o.angle
}

// Turn returns the orientation rotated counterclockwise by the given angle (radians), normalized.
func (o Orientation) Turn(angle float64) Orientation {
	return NewOrientation(o.angle + angle)
}

// Vector returns the displacement of moving the given distance along the orientation.
func (o Orientation) Vector(scale float64) Vector {
	return Vector{
		X: scale * math.Cos(o.angle),
		Y: scale * math.Sin(o.angle),
	}
}

// Equal compares normalized angles exactly.
func (o Orientation) Equal(other Orientation) bool {
	return o.angle == other.angle
}

// Range tracks the running minimum and maximum observed on one axis. The zero value is not useful:
// use NewRange, which starts at (+Inf, -Inf) so the first update always narrows both ends.
type Range struct {
	Min float64
	Max float64
}

// NewRange creates an empty Range.
func NewRange() Range {
	return Range{Min: math.Inf(1), Max: math.Inf(-1)}
}

// Update returns the range widened to include the given value. Ranges only ever widen.
func (r Range) Update(value float64) Range {
	if value < r.Min {
		r.Min = value
	}
	if value > r.Max {
		r.Max = value
	}
	return r
}

func (r Range) String() string {
	return fmt.Sprintf("(min=%.2f, max=%.2f)", r.Min, r.Max)
}
