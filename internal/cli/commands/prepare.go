package commands

import (
	"context"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pst/internal/cli"
	"pst/internal/database"
)

// PrepareDBCommand handles the prepare-db command
type PrepareDBCommand struct {
	flags *cli.Flags
}

// NewPrepareDBCommand creates a new PrepareDBCommand
func NewPrepareDBCommand(flags *cli.Flags) *PrepareDBCommand {
	return &PrepareDBCommand{flags: flags}
}

// Execute runs the command
func (pc *PrepareDBCommand) Execute(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args, pc.flags)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	manager := database.NewManager(s.cfg, s.log)
	created, err := manager.CheckAndCreateDatabases(ctx, s.cfg.ThreadCount)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range manager.Names(s.cfg.ThreadCount) {
		if slices.Contains(created, name) {
			color.New(color.FgGreen).Fprintf(out, "✓ created %s\n", name)
		} else {
			color.New(color.FgCyan).Fprintf(out, "• exists  %s\n", name)
		}
	}
	return nil
}
