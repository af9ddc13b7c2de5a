package gcode

import (
	"errors"
	"fmt"

	"github.com/fornellas/l2g/geom"
)

// ErrEmptyProgram is returned when emission is attempted on zero motion instructions: there is no
// last position to retract from.
var ErrEmptyProgram = errors.New("empty program")

// Emitter converts motion instructions into a complete textual machine program. The zero value is
// not useful: use DefaultEmitter and override fields as needed.
type Emitter struct {
	// FeedRate is the feed rate (mm/min) for the initial plunge move.
	FeedRate float64
	// LineDepth is the tool Z while drawing. Negative values cut into the material.
	LineDepth float64
	// ParkHeight is the Z the tool is lifted to before the initial plunge.
	ParkHeight float64
	// RetractHeight is the Z the tool is lifted to after the last instruction.
	RetractHeight float64
	// SpindleRPM is the spindle speed for the M3 instruction.
	SpindleRPM int
	// IncludeRapidFeedRate also emits feed rates on rapid positioning instructions. Most
	// controllers ignore it, some older ones require it.
	IncludeRapidFeedRate bool
}

// DefaultEmitter is an Emitter with the stock machine setup.
var DefaultEmitter = Emitter{
	FeedRate:      100,
	LineDepth:     -0.5,
	ParkHeight:    10,
	RetractHeight: 5,
	SpindleRPM:    10000,
}

func (e Emitter) instructionString(instruction Instruction) string {
	if e.IncludeRapidFeedRate &&
		instruction.Command == RapidPositioning && instruction.FeedRate != nil {
		linear := instruction
		linear.Command = LinearInterpolation
		str := linear.String()
		return RapidPositioning.String() + str[len(LinearInterpolation.String()):]
	}
	return instruction.String()
}

// Emit assembles the full program text: preamble (extent comments, spindle start, absolute mode,
// metric mode, park, plunge), one line per instruction, postamble (retract, spindle stop). It fails
// with ErrEmptyProgram when instructions is empty.
func (e Emitter) Emit(
	instructions []Instruction, xRange, yRange geom.Range,
) ([]string, error) {
	if len(instructions) == 0 {
		return nil, ErrEmptyProgram
	}

	lines := make([]string, 0, len(instructions)+9)
	lines = append(lines,
		fmt.Sprintf("; x_range = %s", xRange),
		fmt.Sprintf("; y_range = %s", yRange),
		fmt.Sprintf("M3 S%d", e.SpindleRPM),
		// Absolute mode
		"G90",
		// Metric mode (locations in millimeters)
		"G21",
		NewInstruction(RapidPositioning, geom.Position{Z: e.ParkHeight}).String(),
		NewInstructionFeedRate(
			LinearInterpolation, geom.Position{Z: e.LineDepth}, e.FeedRate,
		).String(),
	)

	for _, instruction := range instructions {
		lines = append(lines, e.instructionString(instruction))
	}

	// Move the tool up out of the material, then stop the spindle.
	lastPosition := instructions[len(instructions)-1].Position
	lines = append(lines,
		NewInstruction(RapidPositioning, lastPosition.Above(e.RetractHeight)).String(),
		"M5",
	)

	return lines, nil
}
