// Package discovery finds the suite files of a run and fits the thread
// count to them.
package discovery

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"pst/internal/config"
)

// Discoverer resolves the suite list from the configured source
type Discoverer struct {
	scanner *Scanner
	filter  *Filter
	log     logrus.FieldLogger
}

// NewDiscoverer creates a Discoverer
func NewDiscoverer(scanner *Scanner, filter *Filter, log logrus.FieldLogger) *Discoverer {
	return &Discoverer{scanner: scanner, filter: filter, log: log}
}

// Discover returns the suites for cfg in a stable order without duplicates.
// An explicit suite list wins over a glob, and a glob over a directory walk.
func (d *Discoverer) Discover(cfg *config.Config) ([]string, error) {
	var (
		suites []string
		err    error
	)
	switch specs := cfg.GetSpecsPath(); {
	case len(cfg.SuitePaths) > 0:
		suites = cfg.SuitePaths
	case IsPattern(specs):
		d.log.Infof("Using pattern %s to find test suites", specs)
		suites, err = d.scanner.Glob(specs)
	default:
		d.log.Warn("DEPRECATED: using path is deprecated and will be removed, switch to glob pattern")
		suites, err = d.scanner.Scan(specs)
	}
	if err != nil {
		return nil, err
	}

	suites = dedupe(d.filter.FilterByName(suites, cfg.NameFilter))

	d.log.Infof("%d test suite(s) found.", len(suites))
	if cfg.Verbose {
		if out, err := json.MarshalIndent(suites, "", "  "); err == nil {
			d.log.Debugf("Paths to found suites\n%s", out)
		}
	}
	return suites, nil
}

// ClampThreads returns cfg limited to one thread per suite. cfg itself is
// never changed.
func ClampThreads(cfg *config.Config, suiteCount int, log logrus.FieldLogger) *config.Config {
	if suiteCount >= cfg.ThreadCount {
		return cfg
	}
	log.Infof("Thread setting is %d, but only %d test suite(s) were found. Adjusting configuration accordingly.",
		cfg.ThreadCount, suiteCount)
	return cfg.WithThreadCount(suiteCount)
}

func dedupe(suites []string) []string {
	seen := make(map[string]bool, len(suites))
	out := make([]string, 0, len(suites))
	for _, s := range suites {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
