package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/fornellas/slogxt/log"
)

// Exit resets flags and exits with the given code.
func Exit(code int) {
	ResetFlags()
	os.Exit(code)
}

// ExitError logs the error and exits with status 1.
func ExitError(ctx context.Context, err error) {
	logger := log.MustLogger(ctx)
	logger.Error("Failed", "err", err)
	Exit(1)
}

// GetRunFn wraps an error-returning command function into a cobra Run function that exits on
// error.
func GetRunFn(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := fn(cmd, args); err != nil {
			ExitError(cmd.Context(), err)
		}
	}
}
