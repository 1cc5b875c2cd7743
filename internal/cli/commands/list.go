package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pst/internal/cli"
	"pst/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	flags *cli.Flags
}

// NewListCommand creates a new ListCommand
func NewListCommand(flags *cli.Flags) *ListCommand {
	return &ListCommand{flags: flags}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args, lc.flags)
	if err != nil {
		return err
	}
	suites, err := s.discover()
	if err != nil {
		return err
	}

	if len(suites) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No test suites found")
		return nil
	}

	ui.NewFormatter(cmd.OutOrStdout()).PrintSuiteList(s.distributor().Weigh(suites))
	return nil
}
