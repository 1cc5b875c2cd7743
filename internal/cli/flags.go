package cli

import (
	"time"

	"pst/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	ConfigFile          string
	Threads             int
	SpecsDir            string
	Specs               []string
	Filter              string
	WeightsFile         string
	DefaultWeight       float64
	WeightPrecedence    string
	Bail                bool
	Verbose             bool
	Progress            bool
	Executable          string
	RunnerArgs          []string
	SpecFlag            string
	Reporter            string
	ReporterModule      string
	ReporterOptions     string
	ReporterOptionsPath string
	RunnerResults       string
	ThreadEnv           string
	EnvFile             string
	Stagger             time.Duration
	TerminateGrace      time.Duration
	Databases           bool
	LogLevel            string
	FailedOnly          bool
}

// configFlags are the flag names config.Flags understands
var configFlags = []string{
	"threads", "specs-dir", "spec", "filter", "weights-file", "default-weight",
	"weight-precedence", "bail", "verbose", "progress", "executable", "runner-args",
	"spec-flag", "reporter", "reporter-module", "reporter-options",
	"reporter-options-path", "runner-results", "thread-env", "env-file", "stagger",
	"terminate-grace", "databases", "log-level",
}

// ToConfigFlags converts CLI flags to config flags. changed reports whether
// the user passed a flag (cobra's Flags().Changed); extra holds the
// arguments after "--", handed to the runner as-is.
func (f *Flags) ToConfigFlags(changed func(name string) bool, extra []string) config.Flags {
	set := make(map[string]bool)
	for _, name := range configFlags {
		if changed(name) {
			set[name] = true
		}
	}

	return config.Flags{
		ConfigFile:          f.ConfigFile,
		ThreadCount:         f.Threads,
		SpecsDir:            f.SpecsDir,
		SuitePaths:          f.Specs,
		NameFilter:          f.Filter,
		WeightsFile:         f.WeightsFile,
		DefaultWeight:       f.DefaultWeight,
		WeightPrecedence:    f.WeightPrecedence,
		Bail:                f.Bail,
		Verbose:             f.Verbose,
		Progress:            f.Progress,
		Executable:          f.Executable,
		RunnerArgs:          f.RunnerArgs,
		SpecFlag:            f.SpecFlag,
		ExtraArgs:           extra,
		Reporter:            f.Reporter,
		ReporterModule:      f.ReporterModule,
		ReporterOptions:     f.ReporterOptions,
		ReporterOptionsPath: f.ReporterOptionsPath,
		RunnerResults:       f.RunnerResults,
		ThreadEnvVar:        f.ThreadEnv,
		EnvFile:             f.EnvFile,
		StaggerInterval:     f.Stagger,
		TerminateGrace:      f.TerminateGrace,
		Databases:           f.Databases,
		LogLevel:            f.LogLevel,
		Set:                 set,
	}
}
