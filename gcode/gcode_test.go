package gcode

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fornellas/l2g/geom"
)

func TestCommandString(t *testing.T) {
	require.Equal(t, "G00", RapidPositioning.String())
	require.Equal(t, "G01", LinearInterpolation.String())
}

func TestInstructionString(t *testing.T) {
	testCases := []struct {
		name        string
		instruction Instruction
		expected    string
	}{
		{
			name:        "rapid",
			instruction: NewInstruction(RapidPositioning, geom.Position{X: 1, Y: 2, Z: 3}),
			expected:    "G00 X1.00 Y2.00 Z3.00",
		},
		{
			name: "linear with feed rate",
			instruction: NewInstructionFeedRate(
				LinearInterpolation, geom.Position{X: 5, Y: 0, Z: -0.5}, 100,
			),
			expected: "G01 X5.00 Y0.00 Z-0.50 F100",
		},
		{
			name:        "linear without feed rate",
			instruction: NewInstruction(LinearInterpolation, geom.Position{X: 1.005, Y: -2.339, Z: 0}),
			expected:    "G01 X1.00 Y-2.34 Z0.00",
		},
		{
			name: "rapid never carries feed rate",
			instruction: NewInstructionFeedRate(
				RapidPositioning, geom.Position{X: 1, Y: 2, Z: 3}, 100,
			),
			expected: "G00 X1.00 Y2.00 Z3.00",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.instruction.String())
		})
	}
}

func TestCoordinateFormattingRoundTrip(t *testing.T) {
	for _, value := range []float64{0, 5, -0.5, 3.14, 1234.56, -99.99} {
		str := fmt.Sprintf("%.2f", value)
		parsed, err := strconv.ParseFloat(str, 64)
		require.NoError(t, err)
		require.Equal(t, str, fmt.Sprintf("%.2f", parsed))
	}
}

func TestEmit(t *testing.T) {
	t.Run("empty program", func(t *testing.T) {
		_, err := DefaultEmitter.Emit(nil, geom.NewRange(), geom.NewRange())
		require.ErrorIs(t, err, ErrEmptyProgram)
	})

	t.Run("full program", func(t *testing.T) {
		instructions := []Instruction{
			NewInstructionFeedRate(LinearInterpolation, geom.Position{X: 5, Z: -0.5}, 100),
			NewInstructionFeedRate(LinearInterpolation, geom.Position{X: 5, Y: 5, Z: -0.5}, 100),
		}
		xRange := geom.NewRange().Update(0).Update(5)
		yRange := geom.NewRange().Update(0).Update(5)

		lines, err := DefaultEmitter.Emit(instructions, xRange, yRange)
		require.NoError(t, err)
		require.Equal(t, []string{
			"; x_range = (min=0.00, max=5.00)",
			"; y_range = (min=0.00, max=5.00)",
			"M3 S10000",
			"G90",
			"G21",
			"G00 X0.00 Y0.00 Z10.00",
			"G01 X0.00 Y0.00 Z-0.50 F100",
			"G01 X5.00 Y0.00 Z-0.50 F100",
			"G01 X5.00 Y5.00 Z-0.50 F100",
			"G00 X5.00 Y5.00 Z5.00",
			"M5",
		}, lines)
	})

	t.Run("include rapid feed rate", func(t *testing.T) {
		emitter := DefaultEmitter
		emitter.IncludeRapidFeedRate = true
		instructions := []Instruction{
			NewInstructionFeedRate(RapidPositioning, geom.Position{X: 1, Y: 2, Z: 3}, 400),
		}
		lines, err := emitter.Emit(instructions, geom.NewRange().Update(1), geom.NewRange().Update(2))
		require.NoError(t, err)
		require.Contains(t, lines, "G00 X1.00 Y2.00 Z3.00 F400")
	})
}

func TestParser(t *testing.T) {
	t.Run("parses emitted program back", func(t *testing.T) {
		instructions := []Instruction{
			NewInstructionFeedRate(LinearInterpolation, geom.Position{X: 5, Z: -0.5}, 100),
		}
		lines, err := DefaultEmitter.Emit(
			instructions, geom.NewRange().Update(0).Update(5), geom.NewRange().Update(0),
		)
		require.NoError(t, err)

		parser := NewParser(strings.NewReader(strings.Join(lines, "\n")))

		var comments int
		var commands []string
		for {
			block, err := parser.Next()
			require.NoError(t, err)
			if block == nil {
				break
			}
			if block.IsComment() {
				comments++
				continue
			}
			command, ok := block.Command()
			require.True(t, ok)
			commands = append(commands, command.String())
		}
		require.Equal(t, 2, comments)
		require.Equal(t, []string{"M3", "G90", "G21", "G0", "G1", "G1", "G0", "M5"}, commands)
	})

	t.Run("arguments", func(t *testing.T) {
		parser := NewParser(strings.NewReader("G01 X5.00 Y-1.25 Z-0.50 F100"))
		block, err := parser.Next()
		require.NoError(t, err)
		require.NotNil(t, block)

		x := block.Argument('X')
		require.NotNil(t, x)
		require.Equal(t, 5.0, *x)

		y := block.Argument('Y')
		require.NotNil(t, y)
		require.Equal(t, -1.25, *y)

		require.Nil(t, block.Argument('S'))
	})

	t.Run("malformed word", func(t *testing.T) {
		parser := NewParser(strings.NewReader("G01 Xnope"))
		_, err := parser.Next()
		require.Error(t, err)
	})
}
