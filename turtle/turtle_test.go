package turtle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fornellas/l2g/gcode"
	"github.com/fornellas/l2g/geom"
	"github.com/fornellas/l2g/lsystem"
)

func mustParse(t *testing.T, str string) []lsystem.Symbol {
	t.Helper()
	symbols, err := lsystem.ParseSymbols(str)
	require.NoError(t, err)
	return symbols
}

func testOptions() Options {
	options := DefaultOptions
	options.AngleIncrement = math.Pi / 2
	options.StepSize = 5
	return options
}

func TestInterpretKochFirstIteration(t *testing.T) {
	path, err := Interpret(mustParse(t, "F+F-F-F+F"), testOptions())
	require.NoError(t, err)

	expected := []geom.Position{
		{X: 5, Y: 0, Z: -0.5},
		{X: 5, Y: 5, Z: -0.5},
		{X: 10, Y: 5, Z: -0.5},
		{X: 10, Y: 0, Z: -0.5},
		{X: 15, Y: 0, Z: -0.5},
	}
	require.Len(t, path.Instructions, len(expected))
	for i, instruction := range path.Instructions {
		require.Equal(t, gcode.LinearInterpolation, instruction.Command)
		require.InDelta(t, expected[i].X, instruction.Position.X, 1e-9)
		require.InDelta(t, expected[i].Y, instruction.Position.Y, 1e-9)
		require.Equal(t, expected[i].Z, instruction.Position.Z)
	}

	require.InDelta(t, 0, path.XRange.Min, 1e-9)
	require.InDelta(t, 15, path.XRange.Max, 1e-9)
	require.InDelta(t, 0, path.YRange.Min, 1e-9)
	require.InDelta(t, 5, path.YRange.Max, 1e-9)
}

func TestInterpretDrawCountMatchesForwardSymbols(t *testing.T) {
	// No branch symbols: one linear instruction per F/G.
	symbols := mustParse(t, "F-G+F+G-FAXB")
	path, err := Interpret(symbols, testOptions())
	require.NoError(t, err)
	require.Len(t, path.Instructions, 5)
	for _, instruction := range path.Instructions {
		require.Equal(t, gcode.LinearInterpolation, instruction.Command)
	}
}

func TestInterpretDegenerateBranchElision(t *testing.T) {
	testCases := []struct {
		name string
		str  string
	}{
		{name: "empty branch", str: "[]"},
		{name: "non-terminals only", str: "[AXB]"},
		{name: "nested empty branches", str: "[[][]]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path, err := Interpret(mustParse(t, tc.str), testOptions())
			require.NoError(t, err)
			require.Empty(t, path.Instructions)
		})
	}
}

func TestInterpretTurnOnlyBranchIsNotElided(t *testing.T) {
	// The turtle did not move, but it turned, so the popped state differs and recovery runs.
	path, err := Interpret(mustParse(t, "[+]"), testOptions())
	require.NoError(t, err)
	require.Len(t, path.Instructions, 3)
}

func TestInterpretBranchRecovery(t *testing.T) {
	path, err := Interpret(mustParse(t, "[F]"), testOptions())
	require.NoError(t, err)

	// One draw, then the 3-instruction recovery block back to the origin state.
	require.Len(t, path.Instructions, 4)

	draw := path.Instructions[0]
	require.Equal(t, gcode.LinearInterpolation, draw.Command)
	require.True(t, geom.Position{X: 5, Y: 0, Z: -0.5}.Equal(draw.Position))

	liftCurrent := path.Instructions[1]
	require.Equal(t, gcode.RapidPositioning, liftCurrent.Command)
	require.True(t, geom.Position{X: 5, Y: 0, Z: 3}.Equal(liftCurrent.Position))

	liftSaved := path.Instructions[2]
	require.Equal(t, gcode.RapidPositioning, liftSaved.Command)
	require.True(t, geom.Position{X: 0, Y: 0, Z: 3}.Equal(liftSaved.Position))

	plunge := path.Instructions[3]
	require.Equal(t, gcode.LinearInterpolation, plunge.Command)
	require.True(t, geom.Position{X: 0, Y: 0, Z: -0.5}.Equal(plunge.Position))
}

func TestInterpretBranchesDoNotLeakState(t *testing.T) {
	// After a balanced branch, drawing resumes from the pre-branch state: the final F here lands
	// at the same position as a plain F with no branch in between.
	branched, err := Interpret(mustParse(t, "[+F]F"), testOptions())
	require.NoError(t, err)
	plain, err := Interpret(mustParse(t, "F"), testOptions())
	require.NoError(t, err)

	last := branched.Instructions[len(branched.Instructions)-1]
	require.True(t, plain.Instructions[0].Position.Equal(last.Position))
}

func TestInterpretUnbalancedBranch(t *testing.T) {
	path, err := Interpret(mustParse(t, "]"), testOptions())
	require.ErrorIs(t, err, ErrUnbalancedBranch)
	require.Nil(t, path)

	_, err = Interpret(mustParse(t, "[F]]"), testOptions())
	require.ErrorIs(t, err, ErrUnbalancedBranch)
}

func TestInterpretInitAngle(t *testing.T) {
	options := testOptions()
	options.InitAngle = math.Pi / 2
	path, err := Interpret(mustParse(t, "F"), options)
	require.NoError(t, err)
	require.Len(t, path.Instructions, 1)
	require.InDelta(t, 0, path.Instructions[0].Position.X, 1e-9)
	require.InDelta(t, 5, path.Instructions[0].Position.Y, 1e-9)
}

func TestInterpretRangeMonotonicity(t *testing.T) {
	symbols := mustParse(t, "F+F+F+F-F-F")
	options := testOptions()
	xRange := geom.NewRange()
	yRange := geom.NewRange()
	for n := 1; n <= len(symbols); n++ {
		path, err := Interpret(symbols[:n], options)
		require.NoError(t, err)
		require.LessOrEqual(t, path.XRange.Min, xRange.Min)
		require.GreaterOrEqual(t, path.XRange.Max, xRange.Max)
		require.LessOrEqual(t, path.YRange.Min, yRange.Min)
		require.GreaterOrEqual(t, path.YRange.Max, yRange.Max)
		xRange = path.XRange
		yRange = path.YRange
	}
}

func TestInterpretMaxInstructions(t *testing.T) {
	options := testOptions()
	options.MaxInstructions = 3
	_, err := Interpret(mustParse(t, "FFFF"), options)
	require.ErrorIs(t, err, ErrResourceExhausted)
}
