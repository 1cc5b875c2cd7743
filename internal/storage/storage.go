package storage

import (
	"time"

	"github.com/google/uuid"

	"pst/internal/config"
	"pst/internal/domain"
)

// Storage persists and loads the summary of the last run (read by `pst threads`)
type Storage interface {
	Save(summary *domain.RunSummary) error
	Load() (*domain.RunSummary, error)
}

// JSONStorage stores the summary in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// Summarize turns a finished run into its stored form. exitCode is the code
// the process exits with, which differs from run.ExitCode() after a bail.
func Summarize(run *domain.RunResult, exitCode int, bail bool) *domain.RunSummary {
	summary := &domain.RunSummary{
		Meta: domain.RunMeta{
			RunID:           uuid.NewString(),
			Threads:         len(run.Workers),
			ExitCode:        exitCode,
			Bail:            bail,
			Duration:        run.Duration.String(),
			DurationSeconds: run.Duration.Seconds(),
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Details: make([]domain.ThreadSummary, 0, len(run.Workers)),
	}

	for _, w := range run.Workers {
		summary.Meta.TotalSuites += len(w.Suites)
		if w.Success() {
			summary.Meta.PassedThreads++
		} else {
			summary.Meta.FailedThreads++
		}
		summary.Details = append(summary.Details, domain.ThreadSummary{
			Thread:          w.Thread,
			Weight:          w.Weight,
			ExitCode:        w.ExitCode,
			Duration:        w.Duration.Round(time.Millisecond).String(),
			DurationSeconds: w.Duration.Seconds(),
			Suites:          w.Suites,
		})
	}
	return summary
}
