package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pst/internal/cli"
	"pst/internal/database"
	"pst/internal/distribution"
	"pst/internal/execution"
	"pst/internal/reporter"
	"pst/internal/storage"
	"pst/internal/ui"
)

// interruptedExitCode is used when the run is cancelled by a signal
const interruptedExitCode = 130

// RunCommand handles the run command
type RunCommand struct {
	flags *cli.Flags
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(flags *cli.Flags) *RunCommand {
	return &RunCommand{flags: flags}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args, rc.flags)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := ui.NewFormatter(cmd.OutOrStdout())

	buckets, err := s.plan()
	if err != nil {
		return err
	}
	if len(buckets) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No test suites to execute")
		return nil
	}
	cfg := s.cfg
	formatter.PrintPlan(distribution.NewPlan(buckets))

	if cfg.Databases {
		created, err := database.NewManager(cfg, s.log).CheckAndCreateDatabases(ctx, cfg.ThreadCount)
		if err != nil {
			return fmt.Errorf("prepare databases: %w", err)
		}
		if len(created) > 0 {
			s.log.Infof("Created %d thread database(s)", len(created))
		}
	}

	if err := reporter.CleanResults(cfg.GetResultsPath()); err != nil {
		return err
	}
	if cfg.ReporterModule != "" && cfg.ReporterOptionsPath == "" {
		settings := reporter.Settings{
			Reporter:        cfg.Reporter,
			ReporterOptions: cfg.ReporterOptions,
			RunnerResults:   cfg.GetResultsPath(),
		}
		if err := reporter.WriteConfig(cfg.GetReporterConfigPath(), settings); err != nil {
			return err
		}
	}

	supervisor := execution.NewSupervisor(cfg, execution.Output{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}, s.log)
	coordinator := execution.NewCoordinator(supervisor, s.log)
	if cfg.Progress {
		coordinator.SetProgress(ui.NewProgressBar(len(buckets)))
	}

	run, runErr := coordinator.Execute(ctx, buckets)

	exitCode := run.ExitCode()
	var bail *execution.BailError
	switch {
	case runErr == nil:
	case errors.As(runErr, &bail):
		exitCode = bail.Code
	case errors.Is(runErr, context.Canceled):
		exitCode = interruptedExitCode
	default:
		return runErr
	}

	summary := storage.Summarize(run, exitCode, bail != nil)
	if err := storage.NewJSONStorage(cfg).Save(summary); err != nil {
		s.log.WithError(err).Warn("Failed to save run summary")
	}
	formatter.PrintSummary(summary)

	switch {
	case bail != nil:
		return runErr
	case exitCode != 0:
		return &ExitError{Code: exitCode}
	}
	return nil
}
