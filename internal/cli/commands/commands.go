package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pst/internal/cli"
	"pst/internal/config"
	"pst/internal/discovery"
	"pst/internal/distribution"
	"pst/internal/domain"
	"pst/internal/logging"
	"pst/internal/weights"
)

// Commands holds all CLI commands
type Commands struct {
	Run       *RunCommand
	Plan      *PlanCommand
	List      *ListCommand
	Threads   *ThreadsCommand
	PrepareDB *PrepareDBCommand

	flags *cli.Flags
}

// NewCommands creates all commands. Their collaborators are built per
// invocation from the configuration the flags resolve to.
func NewCommands(flags *cli.Flags) *Commands {
	return &Commands{
		Run:       NewRunCommand(flags),
		Plan:      NewPlanCommand(flags),
		List:      NewListCommand(flags),
		Threads:   NewThreadsCommand(flags),
		PrepareDB: NewPrepareDBCommand(flags),
		flags:     flags,
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command) {
	flags := c.flags
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "YAML config file; flags override its values")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Some additional logging")

	// Run command
	runCmd := &cobra.Command{
		Use:   "run [flags] [-- runner args]",
		Short: "Run test suites in parallel threads",
		Long:  "Discover suites, distribute them over threads by weight and run one runner process per thread",
		RunE:  c.Run.Execute,
	}
	bindDiscoveryFlags(runCmd, flags)
	bindRunnerFlags(runCmd, flags)
	rootCmd.AddCommand(runCmd)

	// Plan command
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Show how suites would be distributed",
		Long:  "Discover suites and print the thread distribution without running anything",
		Args:  cobra.NoArgs,
		RunE:  c.Plan.Execute,
	}
	bindDiscoveryFlags(planCmd, flags)
	rootCmd.AddCommand(planCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered test suites",
		Long:  "Scan and list all test suites with their resolved weights",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	bindDiscoveryFlags(listCmd, flags)
	rootCmd.AddCommand(listCmd)

	// Threads command
	threadsCmd := &cobra.Command{
		Use:   "threads",
		Short: "View the threads of the last run interactively",
		Args:  cobra.NoArgs,
		RunE:  c.Threads.Execute,
	}
	threadsCmd.Flags().BoolVar(&flags.FailedOnly, "failed", false, "Only list threads that exited non-zero")
	rootCmd.AddCommand(threadsCmd)

	// Prepare-db command
	prepareCmd := &cobra.Command{
		Use:   "prepare-db",
		Short: "Create one MySQL database per thread",
		Long:  "Create the per-thread databases (<prefix>_<thread>) used with --databases",
		Args:  cobra.NoArgs,
		RunE:  c.PrepareDB.Execute,
	}
	prepareCmd.Flags().IntVarP(&flags.Threads, "threads", "t", config.DefaultThreadCount, "Number of threads")
	prepareCmd.Flags().StringVar(&flags.EnvFile, "env-file", config.DefaultEnvFile, "Dotenv file with DB_HOST, DB_PORT, DB_USERNAME, DB_PASSWORD")
	rootCmd.AddCommand(prepareCmd)
}

func bindDiscoveryFlags(cmd *cobra.Command, flags *cli.Flags) {
	fs := cmd.Flags()
	fs.IntVarP(&flags.Threads, "threads", "t", config.DefaultThreadCount, "Number of threads")
	fs.StringVarP(&flags.SpecsDir, "specs-dir", "d", config.DefaultSpecsDir, "Suite directory, or a glob pattern when it contains *")
	fs.StringArrayVar(&flags.Specs, "spec", nil, "Explicit suite path (repeatable); disables discovery")
	fs.StringVarP(&flags.Filter, "filter", "f", "", "Filter suites by name pattern (supports wildcards, e.g. '*login*')")
	fs.StringVarP(&flags.WeightsFile, "weights-file", "w", config.DefaultWeightsFile, "Parallel weights JSON file")
	fs.Float64Var(&flags.DefaultWeight, "default-weight", config.DefaultWeight, "Weight of suites no pattern matches")
	fs.StringVar(&flags.WeightPrecedence, "weight-precedence", config.DefaultWeightPrecedence, "Which matching pattern wins: longest or last")
}

func bindRunnerFlags(cmd *cobra.Command, flags *cli.Flags) {
	fs := cmd.Flags()
	fs.BoolVarP(&flags.Bail, "bail", "b", false, "Exit on first failing thread")
	fs.BoolVar(&flags.Progress, "progress", false, "Show a progress bar of finished threads")
	fs.StringVarP(&flags.Executable, "executable", "x", config.DefaultExecutable, "Runner executable")
	fs.StringSliceVarP(&flags.RunnerArgs, "runner-args", "a", config.DefaultRunnerArgs, "Arguments placed before the suite selection")
	fs.StringVar(&flags.SpecFlag, "spec-flag", config.DefaultSpecFlag, "Runner flag that takes the comma-separated suite list")
	fs.StringVarP(&flags.Reporter, "reporter", "r", "", "Reporter to pass to the runner")
	fs.StringVarP(&flags.ReporterModule, "reporter-module", "m", config.DefaultReporterModule, "Multi-reporter module; empty disables reporter flags")
	fs.StringVarP(&flags.ReporterOptions, "reporter-options", "o", "", "Reporter options (key=value,key2=value2)")
	fs.StringVarP(&flags.ReporterOptionsPath, "reporter-options-path", "p", "", "Existing reporter config file; skips generating one")
	fs.StringVar(&flags.RunnerResults, "runner-results", config.DefaultRunnerResults, "Directory reporters write thread results to")
	fs.StringVar(&flags.ThreadEnv, "thread-env", config.DefaultThreadEnvVar, "Environment variable holding the thread number")
	fs.StringVar(&flags.EnvFile, "env-file", config.DefaultEnvFile, "Dotenv file merged into the runner environment")
	fs.DurationVar(&flags.Stagger, "stagger", config.DefaultStaggerInterval, "Delay between thread starts")
	fs.DurationVar(&flags.TerminateGrace, "terminate-grace", config.DefaultTerminateGrace, "Time a cancelled runner gets before it is killed")
	fs.BoolVar(&flags.Databases, "databases", false, "Give every thread its own database (<prefix>_<thread>)")
}

// session is the configuration and logger of one command invocation
type session struct {
	cfg *config.Config
	log *logrus.Logger
}

// newSession loads the configuration for cmd. Arguments after "--" are
// passed to the runner; any other positional argument is rejected.
func newSession(cmd *cobra.Command, args []string, flags *cli.Flags) (*session, error) {
	var extra []string
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		if dash > 0 {
			return nil, fmt.Errorf("unexpected argument %q (runner arguments go after --)", args[0])
		}
		extra = args[dash:]
	} else if len(args) > 0 {
		return nil, fmt.Errorf("unexpected argument %q (runner arguments go after --)", args[0])
	}

	cfg, err := config.Load(flags.ToConfigFlags(cmd.Flags().Changed, extra))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log := logging.NewWithWriter(cfg.LogLevel, cfg.Verbose, cmd.ErrOrStderr())
	return &session{cfg: cfg, log: log}, nil
}

// discover finds the suites and clamps the thread count to them
func (s *session) discover() ([]string, error) {
	discoverer := discovery.NewDiscoverer(
		discovery.NewScanner(s.cfg.PathsToIgnore),
		discovery.NewFilter(),
		s.log,
	)
	suites, err := discoverer.Discover(s.cfg)
	if err != nil {
		return nil, fmt.Errorf("discover suites: %w", err)
	}
	s.cfg = discovery.ClampThreads(s.cfg, len(suites), s.log)
	return suites, nil
}

// distributor loads the weight table, falling back to default weights
func (s *session) distributor() *distribution.Distributor {
	table := weights.LoadOrEmpty(s.cfg.GetWeightsPath(), s.log)
	// Validate has already accepted the precedence.
	precedence, _ := weights.ParsePrecedence(s.cfg.WeightPrecedence)
	return distribution.NewDistributor(table, s.cfg.DefaultWeight, precedence)
}

// plan discovers, weighs and distributes the suites
func (s *session) plan() ([]domain.Bucket, error) {
	suites, err := s.discover()
	if err != nil {
		return nil, err
	}
	return s.distributor().Distribute(suites, s.cfg.ThreadCount), nil
}
