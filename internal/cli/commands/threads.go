package commands

import (
	"github.com/spf13/cobra"

	"pst/internal/cli"
	"pst/internal/storage"
	"pst/internal/ui"
)

// ThreadsCommand handles the threads command
type ThreadsCommand struct {
	flags  *cli.Flags
	viewer func(failedOnly bool) ui.Viewer
}

// NewThreadsCommand creates a new ThreadsCommand
func NewThreadsCommand(flags *cli.Flags) *ThreadsCommand {
	return &ThreadsCommand{
		flags:  flags,
		viewer: func(failedOnly bool) ui.Viewer {
			return ui.NewThreadViewer(failedOnly)
		},
	}
}

// Execute runs the command
func (tc *ThreadsCommand) Execute(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args, tc.flags)
	if err != nil {
		return err
	}

	summary, err := storage.NewJSONStorage(s.cfg).Load()
	if err != nil {
		return err
	}
	return tc.viewer(tc.flags.FailedOnly).View(summary)
}
