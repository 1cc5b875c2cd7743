package execution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"pst/internal/config"
	"pst/internal/domain"
)

// Output holds the parent streams thread output is multiplexed onto
type Output struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Supervisor launches one runner process per thread and streams its output
type Supervisor struct {
	builder     *CommandBuilder
	executable  string
	dir         string
	threadCount int
	stagger     time.Duration
	grace       time.Duration
	bail        bool
	verbose     bool
	threadEnv   string
	env         []string
	database    func(thread int) string
	databaseEnv string
	stdout      *SyncWriter
	stderr      *SyncWriter
	log         logrus.FieldLogger
}

// NewSupervisor creates a Supervisor for cfg. cfg.ThreadCount must already
// be clamped; it is used in the "[i/N]" prefix.
func NewSupervisor(cfg *config.Config, out Output, log logrus.FieldLogger) *Supervisor {
	s := &Supervisor{
		builder:     NewCommandBuilder(cfg),
		executable:  cfg.Executable,
		dir:         cfg.ProjectPath,
		threadCount: cfg.ThreadCount,
		stagger:     cfg.StaggerInterval,
		grace:       cfg.TerminateGrace,
		bail:        cfg.Bail,
		verbose:     cfg.Verbose,
		threadEnv:   cfg.ThreadEnvVar,
		env:         baseEnvironment(cfg.GetEnvFilePath(), log),
		stdout:      NewSyncWriter(out.Stdout),
		stderr:      NewSyncWriter(out.Stderr),
		log:         log,
	}
	if cfg.Databases {
		s.database = cfg.GetDatabaseName
		s.databaseEnv = cfg.DatabaseEnvVar
	}
	return s
}

// Run executes bucket as thread index+1. It waits (index+1) stagger
// intervals first. A non-zero exit is reported in the result unless bail
// is on, in which case a *BailError is returned. Failing to start the
// runner is returned as an error.
func (s *Supervisor) Run(ctx context.Context, bucket domain.Bucket, index int) (domain.WorkerResult, error) {
	thread := index + 1
	prefix := fmt.Sprintf("[%d/%d]", thread, s.threadCount)
	log := s.log.WithField("thread", thread)

	result := domain.WorkerResult{
		Thread:  thread,
		Suites:  bucket.Suites,
		Weight:  bucket.Weight,
		Timings: make(map[string]time.Duration),
	}

	// Thread n starts n stagger intervals after the run.
	if err := sleep(ctx, time.Duration(thread)*s.stagger); err != nil {
		return result, err
	}

	stdout := NewLineWriter(s.stdout, prefix)
	stderr := NewLineWriter(s.stderr, prefix)

	cmd := exec.CommandContext(ctx, s.executable, s.builder.Build(bucket)...)
	cmd.Dir = s.dir
	cmd.Env = s.environ(thread)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	startGroup(cmd)
	cmd.Cancel = func() error {
		return terminateGroup(cmd)
	}
	cmd.WaitDelay = s.grace

	log.WithField("suites", len(bucket.Suites)).Debugf("Starting %s", s.executable)
	start := time.Now()
	if err := cmd.Start(); err != nil {
		return result, fmt.Errorf("thread %d: start %s: %w", thread, s.executable, err)
	}

	err := cmd.Wait()
	result.Duration = time.Since(start)
	if ferr := stdout.Flush(); ferr != nil {
		log.WithError(ferr).Warn("Failed to flush stdout")
	}
	if ferr := stderr.Flush(); ferr != nil {
		log.WithError(ferr).Warn("Failed to flush stderr")
	}

	if ctx.Err() != nil {
		// Whatever ignored SIGTERM for the grace period goes now.
		if kerr := killGroup(cmd); kerr != nil && !errors.Is(kerr, os.ErrProcessDone) && !errors.Is(kerr, syscall.ESRCH) {
			log.WithError(kerr).Debug("Failed to kill process group")
		}
		log.Debug("Thread cancelled")
		return result, ctx.Err()
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.Is(err, exec.ErrWaitDelay):
		// The runner exited but left a background process holding its output.
		result.ExitCode = max(cmd.ProcessState.ExitCode(), 0)
		log.WithField("exit_code", result.ExitCode).
			Warnf("Runner output still open %s after exit, detaching", s.grace)
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		if result.ExitCode < 0 {
			// Terminated by a signal.
			result.ExitCode = 1
		}
	default:
		return result, fmt.Errorf("thread %d: wait: %w", thread, err)
	}

	if s.verbose {
		fmt.Fprintf(s.stdout, "%s Thread likely finished with failure count: %d\n", prefix, result.ExitCode)
	}
	log.WithFields(logrus.Fields{"exit_code": result.ExitCode, "duration": result.Duration.Round(time.Millisecond)}).
		Debug("Thread finished")

	if s.bail && result.ExitCode != 0 {
		fmt.Fprintln(s.stderr, color.RedString("%s BAIL set and thread exited with errors, exit early with error", prefix))
		return result, &BailError{Thread: thread, Code: result.ExitCode}
	}
	return result, nil
}

// environ returns the child environment for a 1-based thread number
func (s *Supervisor) environ(thread int) []string {
	env := slices.Clone(s.env)
	env = append(env, fmt.Sprintf("%s=%d", s.threadEnv, thread))
	if s.database != nil {
		env = append(env, fmt.Sprintf("%s=%s", s.databaseEnv, s.database(thread)))
	}
	return env
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
