package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fornellas/slogxt/log"
)

var FiguresCmd = &cobra.Command{
	Use:   "figures",
	Short: "List known figures and their parameters.",
	Args:  cobra.NoArgs,
	Run: GetRunFn(func(cmd *cobra.Command, args []string) error {
		ctx, logger := log.MustWithAttrs(
			cmd.Context(),
			"figures-file", figuresFile,
		)
		cmd.SetContext(ctx)
		logger.Debug("Running")

		available, err := availableFigures()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, figure := range available {
			fmt.Fprintf(w, "%s: %s\n", figure.Name, figure.Description)
			fmt.Fprintf(w, "  axiom: %s\n", figure.Axiom)
			keys := make([]string, 0, len(figure.Rules))
			for key := range figure.Rules {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(w, "  rule: %s -> %s\n", key, figure.Rules[key])
			}
			fmt.Fprintf(w,
				"  iterations=%d step_size=%v angle_increment=%v init_angle=%v\n",
				figure.Params.Iterations,
				figure.Params.StepSize,
				figure.Params.AngleIncrement,
				figure.Params.InitAngle,
			)
		}
		return nil
	}),
}

func init() {
	FiguresCmd.PersistentFlags().StringVarP(
		&figuresFile, "figures-file", "f", defaultFiguresFile,
		"YAML file with extra figure definitions",
	)

	RootCmd.AddCommand(FiguresCmd)
}
