package turtle

import (
	"errors"
	"fmt"

	"github.com/fornellas/l2g/gcode"
	"github.com/fornellas/l2g/geom"
	"github.com/fornellas/l2g/lsystem"
)

// ErrUnbalancedBranch is returned when a branch restore symbol pops an empty stack. This indicates
// a malformed symbol sequence; silently ignoring it would desynchronize turtle state from the
// intended geometry.
var ErrUnbalancedBranch = errors.New("unbalanced branch")

// ErrResourceExhausted is returned when a compile would exceed the caller-supplied instruction
// budget. Branching-heavy grammars grow exponentially with iteration count, so the budget is
// checked both before expansion and while walking.
var ErrResourceExhausted = errors.New("resource exhausted")

// State is the complete turtle context: where it is and where it is heading. It is a small value
// type; branch save/restore copies it, never aliases it.
type State struct {
	Position    geom.Position
	Orientation geom.Orientation
}

// Equal compares position and orientation exactly. Branch-pop elision relies on this: compounded
// float drift across many forward moves may defeat elision of a logically degenerate branch, which
// is accepted rather than compensated with a tolerance.
func (s State) Equal(o State) bool {
	return s.Position.Equal(o.Position) && s.Orientation.Equal(o.Orientation)
}

// Options configure interpretation.
type Options struct {
	// AngleIncrement is the turn per +/- symbol, radians.
	AngleIncrement float64
	// StepSize is the distance per forward symbol.
	StepSize float64
	// InitAngle is the initial heading, radians.
	InitAngle float64
	// LineDepth is the tool Z while drawing.
	LineDepth float64
	// SafeHeight is the Z the tool is lifted to when repositioning across a branch restore.
	SafeHeight float64
	// FeedRate is attached to every drawing instruction.
	FeedRate float64
	// MaxInstructions bounds the emitted instruction count. 0 means unbounded.
	MaxInstructions int
}

// DefaultOptions match the stock machine setup of gcode.DefaultEmitter.
var DefaultOptions = Options{
	LineDepth:  -0.5,
	SafeHeight: 3,
	FeedRate:   100,
}

// Path is the interpreted toolpath: motion instructions plus the X/Y extents of the drawing.
type Path struct {
	Instructions []gcode.Instruction
	XRange       geom.Range
	YRange       geom.Range
}

// Interpret walks the symbol sequence as turtle motion and returns the resulting toolpath.
//
// The turtle starts at the origin at drawing depth, heading at the initial angle, with an empty
// branch stack. Restoring a state that is exactly equal to the current one is elided entirely:
// nothing moved, so no repositioning is needed. Otherwise the restore lifts the tool, rapids above
// the saved position and plunges back down. Non-terminal symbols (A, B, X) drive rewriting only
// and are ignored here.
func Interpret(symbols []lsystem.Symbol, options Options) (*Path, error) {
	state := State{
		Position:    geom.Position{Z: options.LineDepth},
		Orientation: geom.NewOrientation(options.InitAngle),
	}
	var stack []State

	path := &Path{
		XRange: geom.NewRange().Update(state.Position.X),
		YRange: geom.NewRange().Update(state.Position.Y),
	}

	appendInstruction := func(instruction gcode.Instruction) error {
		if options.MaxInstructions > 0 && len(path.Instructions) >= options.MaxInstructions {
			return fmt.Errorf(
				"%w: instruction count exceeds budget of %d",
				ErrResourceExhausted, options.MaxInstructions,
			)
		}
		path.Instructions = append(path.Instructions, instruction)
		return nil
	}

	for _, symbol := range symbols {
		switch symbol {
		case lsystem.SymbolTurnLeft:
			state.Orientation = state.Orientation.Turn(options.AngleIncrement)
		case lsystem.SymbolTurnRight:
			state.Orientation = state.Orientation.Turn(-options.AngleIncrement)
		case lsystem.SymbolF, lsystem.SymbolG:
			state.Position = state.Position.Add(state.Orientation.Vector(options.StepSize))
			path.XRange = path.XRange.Update(state.Position.X)
			path.YRange = path.YRange.Update(state.Position.Y)
			err := appendInstruction(gcode.NewInstructionFeedRate(
				gcode.LinearInterpolation, state.Position, options.FeedRate,
			))
			if err != nil {
				return nil, err
			}
		case lsystem.SymbolPush:
			stack = append(stack, state)
		case lsystem.SymbolPop:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: %q without a matching %q", ErrUnbalancedBranch,
					lsystem.SymbolPop, lsystem.SymbolPush)
			}
			saved := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if saved.Equal(state) {
				// Degenerate branch: nothing moved, no repositioning needed.
				continue
			}
			// Lift, rapid above the saved position, plunge back down.
			instructions := []gcode.Instruction{
				gcode.NewInstruction(
					gcode.RapidPositioning, state.Position.Above(options.SafeHeight),
				),
				gcode.NewInstruction(
					gcode.RapidPositioning, saved.Position.Above(options.SafeHeight),
				),
				gcode.NewInstructionFeedRate(
					gcode.LinearInterpolation, saved.Position, options.FeedRate,
				),
			}
			for _, instruction := range instructions {
				if err := appendInstruction(instruction); err != nil {
					return nil, err
				}
			}
			state = saved
		default:
			// Non-terminals only drive rewriting.
		}
	}

	return path, nil
}
