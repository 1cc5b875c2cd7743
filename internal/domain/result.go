package domain

import "time"

// WorkerResult is the outcome of one thread's runner process
type WorkerResult struct {
	Thread   int           // 1-based thread number
	Suites   []string      // Suites the thread ran
	Weight   float64       // Estimated weight of the thread
	ExitCode int           // Exit code of the runner process
	Duration time.Duration // Wall time from launch to exit
	// Timings maps suite path to measured duration. Reserved; the runner
	// reports no per-suite timing back, so it is always empty.
	Timings map[string]time.Duration
}

// Success reports whether the runner process exited 0
func (r WorkerResult) Success() bool {
	return r.ExitCode == 0
}

// RunResult aggregates every thread of one run
type RunResult struct {
	Workers  []WorkerResult
	Duration time.Duration
}

// Success reports whether every thread exited 0
func (r *RunResult) Success() bool {
	for _, w := range r.Workers {
		if !w.Success() {
			return false
		}
	}
	return true
}

// ExitCode is 0 when all threads passed, otherwise the highest thread exit code
func (r *RunResult) ExitCode() int {
	code := 0
	for _, w := range r.Workers {
		if w.ExitCode > code {
			code = w.ExitCode
		}
	}
	return code
}

// Failed returns the threads that exited non-zero
func (r *RunResult) Failed() []WorkerResult {
	var failed []WorkerResult
	for _, w := range r.Workers {
		if !w.Success() {
			failed = append(failed, w)
		}
	}
	return failed
}

// ThreadSummary is the stored form of a WorkerResult
type ThreadSummary struct {
	Thread          int      `json:"thread"`
	Weight          float64  `json:"weight"`
	ExitCode        int      `json:"exit_code"`
	Duration        string   `json:"duration"`
	DurationSeconds float64  `json:"duration_seconds"`
	Suites          []string `json:"suites"`
}

// RunMeta contains metadata about a run
type RunMeta struct {
	RunID           string  `json:"run_id"`
	TotalSuites     int     `json:"total_suites"`
	Threads         int     `json:"threads"`
	FailedThreads   int     `json:"failed_threads"`
	PassedThreads   int     `json:"passed_threads"`
	ExitCode        int     `json:"exit_code"`
	Bail            bool    `json:"bail"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunSummary is the complete stored summary of a run
type RunSummary struct {
	Meta    RunMeta         `json:"meta"`
	Details []ThreadSummary `json:"details"`
}
