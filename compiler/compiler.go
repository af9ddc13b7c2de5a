// Package compiler wires grammar expansion and turtle interpretation into a finished, immutable
// machine program with its run parameters attached.
package compiler

import (
	"fmt"

	"github.com/fornellas/l2g/gcode"
	"github.com/fornellas/l2g/geom"
	internalFmt "github.com/fornellas/l2g/internal/fmt"
	"github.com/fornellas/l2g/lsystem"
	"github.com/fornellas/l2g/turtle"
)

// DefaultMaxInstructions bounds compiles that don't set an explicit budget. Branching grammars
// grow exponentially with iteration count, so an unbounded compile can exhaust memory.
const DefaultMaxInstructions = 1000000

// Params are the run parameters of a compile, kept with the Program for traceability and output
// naming.
type Params struct {
	// Iterations is the number of grammar expansion generations.
	Iterations int
	// AngleIncrement is the turn per +/- symbol, radians.
	AngleIncrement float64
	// StepSize is the distance per forward symbol.
	StepSize float64
	// InitAngle is the initial heading, radians.
	InitAngle float64
	// FeedRate is the drawing feed rate, mm/min.
	FeedRate float64
	// MaxInstructions bounds the emitted instruction count. 0 selects DefaultMaxInstructions.
	MaxInstructions int
}

// Program is a compiled toolpath: the motion instructions, the X/Y extents of the drawing, and the
// parameters that produced it. Immutable after Compile.
type Program struct {
	Instructions []gcode.Instruction
	XRange       geom.Range
	YRange       geom.Range
	Params       Params
}

// Compile expands the system for the configured iterations, interprets the result as turtle
// motion and packages the instructions with the run parameters.
//
// The projected expansion size is checked against the instruction budget before anything is
// allocated: with branching-heavy grammars it is much cheaper to refuse up front than to fail
// after exhausting memory. The interpreter enforces the same budget while walking, since branch
// recovery can emit more instructions than there are symbols.
func Compile(system *lsystem.System, params Params) (*Program, error) {
	if params.Iterations < 0 {
		return nil, fmt.Errorf("iterations must be non-negative, got %d", params.Iterations)
	}
	if params.StepSize <= 0 {
		return nil, fmt.Errorf("step size must be positive, got %v", params.StepSize)
	}

	maxInstructions := params.MaxInstructions
	if maxInstructions == 0 {
		maxInstructions = DefaultMaxInstructions
	}
	if estimate := system.GrowthEstimate(params.Iterations); estimate > maxInstructions {
		return nil, fmt.Errorf(
			"%w: %d iterations project %d symbols, over budget of %d instructions",
			turtle.ErrResourceExhausted, params.Iterations, estimate, maxInstructions,
		)
	}

	feedRate := params.FeedRate
	if feedRate == 0 {
		feedRate = turtle.DefaultOptions.FeedRate
	}

	options := turtle.DefaultOptions
	options.AngleIncrement = params.AngleIncrement
	options.StepSize = params.StepSize
	options.InitAngle = params.InitAngle
	options.FeedRate = feedRate
	options.MaxInstructions = maxInstructions

	path, err := turtle.Interpret(system.Expand(params.Iterations), options)
	if err != nil {
		return nil, err
	}

	return &Program{
		Instructions: path.Instructions,
		XRange:       path.XRange,
		YRange:       path.YRange,
		Params:       params,
	}, nil
}

// Render emits the program text lines.
func (p *Program) Render(emitter gcode.Emitter) ([]string, error) {
	return emitter.Emit(p.Instructions, p.XRange, p.YRange)
}

// FileName gives the conventional output name for the program, encoding the figure name and the
// run parameters.
func (p *Program) FileName(figure string) string {
	return fmt.Sprintf(
		"%s_n%d_s%s_ia%s_ai%s.nc",
		figure,
		p.Params.Iterations,
		internalFmt.SprintFloatFixed(p.Params.StepSize, 2),
		internalFmt.SprintFloatFixed(p.Params.InitAngle, 2),
		internalFmt.SprintFloatFixed(p.Params.AngleIncrement, 2),
	)
}
