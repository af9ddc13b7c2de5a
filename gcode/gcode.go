package gcode

import (
	"fmt"

	"github.com/fornellas/l2g/geom"
	internalFmt "github.com/fornellas/l2g/internal/fmt"
)

// Command is a motion command code.
type Command int

const (
	// RapidPositioning is G00: move at rapid rate, no feed rate applies.
	RapidPositioning Command = 0
	// LinearInterpolation is G01: coordinated motion at feed rate.
	LinearInterpolation Command = 1
)

var commandNames = map[Command]string{
	RapidPositioning:    "G00",
	LinearInterpolation: "G01",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	panic(fmt.Sprintf("unexpected Command: %d", int(c)))
}

// Instruction is a single motion instruction: a command code, an absolute destination position and
// an optional feed rate.
type Instruction struct {
	Command  Command
	Position geom.Position
	FeedRate *float64
}

// NewInstruction creates an Instruction without a feed rate.
func NewInstruction(command Command, position geom.Position) Instruction {
	return Instruction{Command: command, Position: position}
}

// NewInstructionFeedRate creates an Instruction with a feed rate.
func NewInstructionFeedRate(command Command, position geom.Position, feedRate float64) Instruction {
	return Instruction{Command: command, Position: position, FeedRate: &feedRate}
}

// String gives the instruction line. Coordinates are always formatted with exactly 2 fractional
// digits: this is a compatibility contract with the consuming machine controller. The feed rate is
// only emitted for linear interpolation.
func (i Instruction) String() string {
	out := fmt.Sprintf(
		"%s X%s Y%s Z%s",
		i.Command,
		internalFmt.SprintFloatFixed(i.Position.X, 2),
		internalFmt.SprintFloatFixed(i.Position.Y, 2),
		internalFmt.SprintFloatFixed(i.Position.Z, 2),
	)
	if i.FeedRate != nil && i.Command != RapidPositioning {
		out += " F" + internalFmt.SprintFloat(*i.FeedRate, 2)
	}
	return out
}
