package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fornellas/slogxt/log"

	"github.com/fornellas/l2g/compiler"
	"github.com/fornellas/l2g/figures"
	"github.com/fornellas/l2g/gcode"
	"github.com/fornellas/l2g/worker"
)

var GenerateCmd = &cobra.Command{
	Use:   "generate [figure]",
	Short: "Compile a figure's L-System and write its G-Code program.",
	Args:  cobra.MaximumNArgs(1),
	Run: GetRunFn(func(cmd *cobra.Command, args []string) (err error) {
		ctx, logger := log.MustWithAttrs(
			cmd.Context(),
			"all", generateAll,
			"figures-file", figuresFile,
			"output-dir", outputDir,
			"output", outputValue,
		)
		cmd.SetContext(ctx)
		logger.Info("Running")

		available, err := availableFigures()
		if err != nil {
			return err
		}

		if generateAll {
			if len(args) > 0 {
				return fmt.Errorf("can't give a figure together with --all")
			}
			if outputValue.IsSet() {
				return fmt.Errorf("can't use --output with --all, use --output-dir")
			}
			workerManager := worker.NewWorkerManager(ctx)
			for _, figure := range available {
				workerManager.StartWorker(figure.Name, func(ctx context.Context) error {
					return generateFigure(ctx, cmd, figure)
				})
			}
			return workerManager.Wait()
		}

		if len(args) == 0 {
			return fmt.Errorf("a figure name is required (known: %v)", figureNames(available))
		}
		for _, figure := range available {
			if figure.Name == args[0] {
				return generateFigure(ctx, cmd, figure)
			}
		}
		return fmt.Errorf("unknown figure: %s (known: %v)", args[0], figureNames(available))
	}),
}

// availableFigures returns the presets plus any figures from --figures-file. A file figure with a
// preset's name overrides the preset.
func availableFigures() ([]figures.Figure, error) {
	available := figures.All()
	if figuresFile == "" {
		return available, nil
	}
	loaded, err := figures.LoadFile(figuresFile)
	if err != nil {
		return nil, err
	}
	for _, figure := range loaded {
		replaced := false
		for i, preset := range available {
			if preset.Name == figure.Name {
				available[i] = figure
				replaced = true
				break
			}
		}
		if !replaced {
			available = append(available, figure)
		}
	}
	return available, nil
}

func figureNames(available []figures.Figure) []string {
	names := make([]string, len(available))
	for i, figure := range available {
		names[i] = figure.Name
	}
	return names
}

// figureParams applies flag overrides on top of the figure's own parameters.
func figureParams(cmd *cobra.Command, figure figures.Figure) compiler.Params {
	params := figure.Params
	flags := cmd.Flags()
	if flags.Changed("iterations") {
		params.Iterations = generateIterations
	}
	if flags.Changed("step-size") {
		params.StepSize = generateStepSize
	}
	if flags.Changed("angle-increment") {
		params.AngleIncrement = generateAngleIncrement
	}
	if flags.Changed("init-angle") {
		params.InitAngle = generateInitAngle
	}
	if flags.Changed("feed-rate") {
		params.FeedRate = generateFeedRate
	}
	if flags.Changed("max-instructions") {
		params.MaxInstructions = generateMaxInstructions
	}
	return params
}

func generateFigure(ctx context.Context, cmd *cobra.Command, figure figures.Figure) (err error) {
	params := figureParams(cmd, figure)
	ctx, logger := log.MustWithAttrs(
		ctx,
		"figure", figure.Name,
		"iterations", params.Iterations,
		"step-size", params.StepSize,
		"angle-increment", params.AngleIncrement,
		"init-angle", params.InitAngle,
	)

	system, err := figure.System()
	if err != nil {
		return err
	}

	program, err := compiler.Compile(system, params)
	if err != nil {
		return fmt.Errorf("figure %s: %w", figure.Name, err)
	}
	logger.Info("Compiled",
		"instructions", len(program.Instructions),
		"x_range", program.XRange,
		"y_range", program.YRange,
	)

	emitter := gcode.DefaultEmitter
	if params.FeedRate != 0 {
		emitter.FeedRate = params.FeedRate
	}
	lines, err := program.Render(emitter)
	if err != nil {
		return fmt.Errorf("figure %s: %w", figure.Name, err)
	}

	if outputValue.IsSet() {
		w, err := outputValue.WriterCloser()
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, w.Close()) }()
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(outputDir, program.FileName(figure.Name))
	if err := writeLines(path, lines); err != nil {
		return err
	}
	logger.Info("Wrote", "path", path)
	return nil
}

var generateAll bool
var defaultGenerateAll = false

var figuresFile string
var defaultFiguresFile = ""

var outputDir string
var defaultOutputDir = "build"

var generateIterations int
var generateStepSize float64
var generateAngleIncrement float64
var generateInitAngle float64
var generateFeedRate float64
var generateMaxInstructions int

func init() {
	GenerateCmd.PersistentFlags().BoolVarP(
		&generateAll, "all", "a", defaultGenerateAll, "Generate every known figure",
	)
	GenerateCmd.PersistentFlags().StringVarP(
		&figuresFile, "figures-file", "f", defaultFiguresFile,
		"YAML file with extra figure definitions",
	)
	GenerateCmd.PersistentFlags().StringVarP(
		&outputDir, "output-dir", "d", defaultOutputDir, "Directory for generated programs",
	)
	GenerateCmd.PersistentFlags().IntVarP(
		&generateIterations, "iterations", "n", 0, "Override the figure's iteration count",
	)
	GenerateCmd.PersistentFlags().Float64VarP(
		&generateStepSize, "step-size", "s", 0, "Override the figure's step size (mm)",
	)
	GenerateCmd.PersistentFlags().Float64VarP(
		&generateAngleIncrement, "angle-increment", "", 0,
		"Override the figure's angle increment (radians)",
	)
	GenerateCmd.PersistentFlags().Float64VarP(
		&generateInitAngle, "init-angle", "", 0, "Override the figure's initial angle (radians)",
	)
	GenerateCmd.PersistentFlags().Float64VarP(
		&generateFeedRate, "feed-rate", "", 0, "Override the drawing feed rate (mm/min)",
	)
	GenerateCmd.PersistentFlags().IntVarP(
		&generateMaxInstructions, "max-instructions", "", 0,
		"Override the emitted instruction budget",
	)

	AddOutputFlags(GenerateCmd)
	RootCmd.AddCommand(GenerateCmd)

	resetFlagsFns = append(resetFlagsFns, func() {
		generateAll = defaultGenerateAll
		figuresFile = defaultFiguresFile
		outputDir = defaultOutputDir
		generateIterations = 0
		generateStepSize = 0
		generateAngleIncrement = 0
		generateInitAngle = 0
		generateFeedRate = 0
		generateMaxInstructions = 0
	})
}
