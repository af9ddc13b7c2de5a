package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fornellas/slogxt/log"

	"github.com/fornellas/l2g/gcode"
	"github.com/fornellas/l2g/geom"
)

var BoundsCmd = &cobra.Command{
	Use:   "bounds [path]",
	Short: "Read a generated program and report the X/Y extents of its motion.",
	Args:  cobra.ExactArgs(1),
	Run: GetRunFn(func(cmd *cobra.Command, args []string) (err error) {
		path := args[0]

		ctx, logger := log.MustWithAttrs(
			cmd.Context(),
			"path", path,
		)
		cmd.SetContext(ctx)
		logger.Info("Running")

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, f.Close()) }()

		parser := gcode.NewParser(f)
		motionRangeX := geom.NewRange()
		motionRangeY := geom.NewRange()
		drawRangeX := geom.NewRange()
		drawRangeY := geom.NewRange()
		var motion, draws int
		for {
			block, err := parser.Next()
			if err != nil {
				return err
			}
			if block == nil {
				break
			}
			if block.IsComment() {
				continue
			}
			command, ok := block.Command()
			if !ok || command.Letter != 'G' {
				continue
			}
			if command.Number != 0 && command.Number != 1 {
				continue
			}
			x := block.Argument('X')
			y := block.Argument('Y')
			if x == nil || y == nil {
				continue
			}
			motion++
			motionRangeX = motionRangeX.Update(*x)
			motionRangeY = motionRangeY.Update(*y)
			if command.Number == 1 {
				draws++
				drawRangeX = drawRangeX.Update(*x)
				drawRangeY = drawRangeY.Update(*y)
			}
		}

		if motion == 0 {
			return fmt.Errorf("%s: no motion instructions found", path)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "motion: %d instructions, x_range = %s, y_range = %s\n",
			motion, motionRangeX, motionRangeY)
		if draws > 0 {
			fmt.Fprintf(w, "draws: %d instructions, x_range = %s, y_range = %s\n",
				draws, drawRangeX, drawRangeY)
		}
		return nil
	}),
}

func init() {
	RootCmd.AddCommand(BoundsCmd)
}
