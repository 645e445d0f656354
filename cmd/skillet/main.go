// Package main is the entry point for the skillet CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillet-ai/skillet/cmd/skillet/commands"
	"github.com/skillet-ai/skillet/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
			fmt.Fprintln(os.Stderr, "Suggestion:", exitErr.Suggestion)
		}
		stop()
		os.Exit(errors.ExitCode(err))
	}
}
