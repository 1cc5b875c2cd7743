package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSpecsDir is where suites are discovered when no list is given
	DefaultSpecsDir = "cypress/e2e"
	// DefaultThreadCount is the default number of worker threads
	DefaultThreadCount = 2
	// DefaultWeightsFile is the weight table path, relative to the project
	DefaultWeightsFile = "cypress/parallel-weights.json"
	// DefaultWeight is used for suites that match no weight pattern
	DefaultWeight = 1.0
	// DefaultWeightPrecedence picks the longest matching suffix
	DefaultWeightPrecedence = "longest"
	// DefaultExecutable is the external test runner
	DefaultExecutable = "npx"
	// DefaultSpecFlag precedes the comma-joined suite list
	DefaultSpecFlag = "--spec"
	// DefaultReporterModule is passed as --reporter when a reporter config is used
	DefaultReporterModule = "cypress-multi-reporters"
	// DefaultRunnerResults is the directory reporters write thread results to
	DefaultRunnerResults = "runner-results"
	// DefaultReporterConfigFile is generated when no reporter options path is set
	DefaultReporterConfigFile = "multi-reporter-config.json"
	// DefaultThreadEnvVar tells the child which thread it is (1-based)
	DefaultThreadEnvVar = "CYPRESS_THREAD"
	// DefaultEnvFile is loaded into the child environment when present
	DefaultEnvFile = ".env"
	// DefaultStaggerInterval is the per-index launch delay
	DefaultStaggerInterval = 2 * time.Second
	// DefaultTerminateGrace is how long a cancelled child gets before it is killed
	DefaultTerminateGrace = 10 * time.Second
	// DefaultDatabasePrefix names per-thread databases (<prefix>_<thread>)
	DefaultDatabasePrefix = "testing"
	// DefaultDatabaseEnvVar carries the per-thread database name
	DefaultDatabaseEnvVar = "DB_DATABASE"
	// DefaultLogLevel is the logrus level name
	DefaultLogLevel = "info"
	// DefaultOutputJSONFile is the stored summary of the last run
	DefaultOutputJSONFile = "last-run.json"
	// DefaultOutputJSONDir is the directory holding the stored summary
	DefaultOutputJSONDir = ".pst"
)

// DefaultRunnerArgs come between the executable and the spec flag
var DefaultRunnerArgs = []string{"cypress", "run"}

// DefaultPathsToIgnore are directory names skipped when walking for suites
var DefaultPathsToIgnore = []string{
	"node_modules",
	"vendor",
	"screenshots",
	"videos",
}
