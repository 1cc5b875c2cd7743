package commands

import (
	"github.com/spf13/cobra"

	"pst/internal/cli"
	"pst/internal/distribution"
	"pst/internal/ui"
)

// PlanCommand handles the plan command
type PlanCommand struct {
	flags *cli.Flags
}

// NewPlanCommand creates a new PlanCommand
func NewPlanCommand(flags *cli.Flags) *PlanCommand {
	return &PlanCommand{flags: flags}
}

// Execute runs the command
func (pc *PlanCommand) Execute(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args, pc.flags)
	if err != nil {
		return err
	}
	buckets, err := s.plan()
	if err != nil {
		return err
	}
	ui.NewFormatter(cmd.OutOrStdout()).PrintPlan(distribution.NewPlan(buckets))
	return nil
}
