package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pst/internal/cli"
	"pst/internal/cli/commands"
	"pst/internal/execution"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "pst",
		Short: "Parallel suite threads",
		Long: `Distributes test suite files over parallel runner threads by weight,
then runs one runner process per thread with prefixed, interleaved output.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Register all commands
	commands.NewCommands(&flags).Register(rootCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	var bail *execution.BailError
	var exit *commands.ExitError
	switch {
	case errors.As(err, &bail):
		os.Exit(bail.Code)
	case errors.As(err, &exit):
		os.Exit(exit.Code)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
