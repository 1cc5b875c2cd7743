package execution

import (
	"strings"

	"pst/internal/config"
	"pst/internal/domain"
)

// CommandBuilder builds the runner argument list for one thread
type CommandBuilder struct {
	runnerArgs     []string
	specFlag       string
	reporterModule string
	reporterConfig string
	extraArgs      []string
}

// NewCommandBuilder creates a CommandBuilder from the run configuration
func NewCommandBuilder(cfg *config.Config) *CommandBuilder {
	return &CommandBuilder{
		runnerArgs:     cfg.RunnerArgs,
		specFlag:       cfg.SpecFlag,
		reporterModule: cfg.ReporterModule,
		reporterConfig: cfg.GetReporterConfigPath(),
		extraArgs:      cfg.ExtraArgs,
	}
}

// Build returns the arguments that follow the executable:
// runner args, the spec selection, reporter flags, then pass-through args.
func (b *CommandBuilder) Build(bucket domain.Bucket) []string {
	escaped := make([]string, len(bucket.Suites))
	for i, s := range bucket.Suites {
		escaped[i] = EscapeGlob(s)
	}

	args := make([]string, 0, len(b.runnerArgs)+len(b.extraArgs)+6)
	args = append(args, b.runnerArgs...)
	args = append(args, b.specFlag, strings.Join(escaped, ","))
	if b.reporterModule != "" {
		args = append(args,
			"--reporter", b.reporterModule,
			"--reporter-options", "configFile="+b.reporterConfig,
		)
	}
	args = append(args, b.extraArgs...)
	return args
}
