package config

import "time"

// Flags holds command-line values. Set records which flags the user passed
// explicitly; only those override the config file.
type Flags struct {
	ConfigFile          string
	ThreadCount         int
	SpecsDir            string
	SuitePaths          []string
	NameFilter          string
	WeightsFile         string
	DefaultWeight       float64
	WeightPrecedence    string
	Bail                bool
	Verbose             bool
	Progress            bool
	Executable          string
	RunnerArgs          []string
	SpecFlag            string
	ExtraArgs           []string
	Reporter            string
	ReporterModule      string
	ReporterOptions     string
	ReporterOptionsPath string
	RunnerResults       string
	ThreadEnvVar        string
	EnvFile             string
	StaggerInterval     time.Duration
	TerminateGrace      time.Duration
	Databases           bool
	LogLevel            string

	Set map[string]bool
}

func (f Flags) apply(cfg *Config) {
	set := func(name string) bool { return f.Set[name] }

	if set("threads") {
		cfg.ThreadCount = f.ThreadCount
	}
	if set("specs-dir") {
		cfg.SpecsDir = f.SpecsDir
	}
	if set("spec") {
		cfg.SuitePaths = f.SuitePaths
	}
	if set("filter") {
		cfg.NameFilter = f.NameFilter
	}
	if set("weights-file") {
		cfg.WeightsFile = f.WeightsFile
	}
	if set("default-weight") {
		cfg.DefaultWeight = f.DefaultWeight
	}
	if set("weight-precedence") {
		cfg.WeightPrecedence = f.WeightPrecedence
	}
	if set("bail") {
		cfg.Bail = f.Bail
	}
	if set("verbose") {
		cfg.Verbose = f.Verbose
	}
	if set("progress") {
		cfg.Progress = f.Progress
	}
	if set("executable") {
		cfg.Executable = f.Executable
	}
	if set("runner-args") {
		cfg.RunnerArgs = f.RunnerArgs
	}
	if set("spec-flag") {
		cfg.SpecFlag = f.SpecFlag
	}
	if len(f.ExtraArgs) > 0 {
		cfg.ExtraArgs = f.ExtraArgs
	}
	if set("reporter") {
		cfg.Reporter = f.Reporter
	}
	if set("reporter-module") {
		cfg.ReporterModule = f.ReporterModule
	}
	if set("reporter-options") {
		cfg.ReporterOptions = f.ReporterOptions
	}
	if set("reporter-options-path") {
		cfg.ReporterOptionsPath = f.ReporterOptionsPath
	}
	if set("runner-results") {
		cfg.RunnerResults = f.RunnerResults
	}
	if set("thread-env") {
		cfg.ThreadEnvVar = f.ThreadEnvVar
	}
	if set("env-file") {
		cfg.EnvFile = f.EnvFile
	}
	if set("stagger") {
		cfg.StaggerInterval = f.StaggerInterval
	}
	if set("terminate-grace") {
		cfg.TerminateGrace = f.TerminateGrace
	}
	if set("databases") {
		cfg.Databases = f.Databases
	}
	if set("log-level") {
		cfg.LogLevel = f.LogLevel
	}
}
