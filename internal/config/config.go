package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"pst/internal/weights"
)

// Config holds all configuration for a run. It is built once by Load and
// never mutated afterwards; use the With* methods to derive a changed copy.
type Config struct {
	// Project settings
	ProjectPath   string   `yaml:"project_path"`
	SpecsDir      string   `yaml:"specs_dir"`
	SuitePaths    []string `yaml:"specs"`
	NameFilter    string   `yaml:"filter"`
	PathsToIgnore []string `yaml:"ignore"`

	// Distribution settings
	ThreadCount      int     `yaml:"threads"`
	WeightsFile      string  `yaml:"weights_file"`
	DefaultWeight    float64 `yaml:"default_weight"`
	WeightPrecedence string  `yaml:"weight_precedence"`

	// Runner command
	Executable          string   `yaml:"executable"`
	RunnerArgs          []string `yaml:"runner_args"`
	SpecFlag            string   `yaml:"spec_flag"`
	ExtraArgs           []string `yaml:"extra_args"`
	Reporter            string   `yaml:"reporter"`
	ReporterModule      string   `yaml:"reporter_module"`
	ReporterOptions     string   `yaml:"reporter_options"`
	ReporterOptionsPath string   `yaml:"reporter_options_path"`
	RunnerResults       string   `yaml:"runner_results"`

	// Supervision
	Bail            bool          `yaml:"bail"`
	Verbose         bool          `yaml:"verbose"`
	Progress        bool          `yaml:"progress"`
	ThreadEnvVar    string        `yaml:"thread_env"`
	EnvFile         string        `yaml:"env_file"`
	StaggerInterval time.Duration `yaml:"stagger"`
	TerminateGrace  time.Duration `yaml:"terminate_grace"`

	// Per-thread databases
	Databases      bool   `yaml:"databases"`
	DatabasePrefix string `yaml:"database_prefix"`
	DatabaseEnvVar string `yaml:"database_env"`

	// Output settings
	LogLevel       string `yaml:"log_level"`
	OutputJSONFile string `yaml:"-"`
	OutputJSONDir  string `yaml:"-"`
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:      DefaultProjectPath,
		SpecsDir:         DefaultSpecsDir,
		PathsToIgnore:    slices.Clone(DefaultPathsToIgnore),
		ThreadCount:      DefaultThreadCount,
		WeightsFile:      DefaultWeightsFile,
		DefaultWeight:    DefaultWeight,
		WeightPrecedence: DefaultWeightPrecedence,
		Executable:       DefaultExecutable,
		RunnerArgs:       slices.Clone(DefaultRunnerArgs),
		SpecFlag:         DefaultSpecFlag,
		ReporterModule:   DefaultReporterModule,
		RunnerResults:    DefaultRunnerResults,
		ThreadEnvVar:     DefaultThreadEnvVar,
		EnvFile:          DefaultEnvFile,
		StaggerInterval:  DefaultStaggerInterval,
		TerminateGrace:   DefaultTerminateGrace,
		DatabasePrefix:   DefaultDatabasePrefix,
		DatabaseEnvVar:   DefaultDatabaseEnvVar,
		LogLevel:         DefaultLogLevel,
		OutputJSONFile:   DefaultOutputJSONFile,
		OutputJSONDir:    DefaultOutputJSONDir,
	}
}

// Load builds the run configuration: defaults, then the optional YAML file
// named by flags.ConfigFile, then every flag the user set explicitly.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if flags.ConfigFile != "" {
		if err := cfg.mergeFile(flags.ConfigFile); err != nil {
			return nil, err
		}
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current values.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate reports settings that cannot produce a run
func (c *Config) Validate() error {
	var errs []error
	if c.ThreadCount < 1 {
		errs = append(errs, fmt.Errorf("threads must be at least 1, got %d", c.ThreadCount))
	}
	if c.DefaultWeight < 0 {
		errs = append(errs, fmt.Errorf("default weight must not be negative, got %g", c.DefaultWeight))
	}
	if c.Executable == "" {
		errs = append(errs, errors.New("executable must not be empty"))
	}
	if c.StaggerInterval < 0 {
		errs = append(errs, fmt.Errorf("stagger must not be negative, got %s", c.StaggerInterval))
	}
	if c.TerminateGrace < 0 {
		errs = append(errs, fmt.Errorf("terminate grace must not be negative, got %s", c.TerminateGrace))
	}
	if c.ThreadEnvVar == "" {
		errs = append(errs, errors.New("thread env variable must not be empty"))
	}
	if c.Databases && c.DatabaseEnvVar == "" {
		errs = append(errs, errors.New("database env variable must not be empty when databases are enabled"))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	if _, err := weights.ParsePrecedence(c.WeightPrecedence); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// WithThreadCount returns a copy of the config using n threads
func (c *Config) WithThreadCount(n int) *Config {
	cp := c.clone()
	cp.ThreadCount = n
	return cp
}

func (c *Config) clone() *Config {
	cp := *c
	cp.SuitePaths = slices.Clone(c.SuitePaths)
	cp.PathsToIgnore = slices.Clone(c.PathsToIgnore)
	cp.RunnerArgs = slices.Clone(c.RunnerArgs)
	cp.ExtraArgs = slices.Clone(c.ExtraArgs)
	return &cp
}

// resolve makes p relative to the project path unless it is absolute
func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectPath, p)
}

// GetSpecsPath returns the directory or glob suites are discovered from
func (c *Config) GetSpecsPath() string {
	return c.resolve(c.SpecsDir)
}

// GetWeightsPath returns the path of the weight table
func (c *Config) GetWeightsPath() string {
	return c.resolve(c.WeightsFile)
}

// GetResultsPath returns the runner-results directory
func (c *Config) GetResultsPath() string {
	return c.resolve(c.RunnerResults)
}

// GetReporterConfigPath returns the reporter config file handed to the runner.
// An explicit reporter options path wins over the generated file.
func (c *Config) GetReporterConfigPath() string {
	if c.ReporterOptionsPath != "" {
		return c.ReporterOptionsPath
	}
	return c.resolve(DefaultReporterConfigFile)
}

// GetEnvFilePath returns the dotenv file merged into the child environment
func (c *Config) GetEnvFilePath() string {
	if c.EnvFile == "" {
		return ""
	}
	return c.resolve(c.EnvFile)
}

// GetOutputPath returns the absolute path of the stored run summary
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetDatabaseName returns the database name for a 1-based thread number
func (c *Config) GetDatabaseName(thread int) string {
	prefix := c.DatabasePrefix
	if env := os.Getenv("DB_DATABASE_PREFIX"); env != "" {
		prefix = env
	}
	return fmt.Sprintf("%s_%d", prefix, thread)
}
