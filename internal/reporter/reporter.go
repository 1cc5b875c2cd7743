// Package reporter writes the multi-reporter configuration handed to the
// runner and prepares the directory reporters write thread results to.
package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const (
	// JSONStreamReporter is always enabled; it feeds the results directory
	JSONStreamReporter = "@openx/cypress-parallel-test-log/json-stream.reporter.js"
	// SimpleSpecReporter is used when no reporter is configured
	SimpleSpecReporter = "@openx/cypress-parallel-test-log/simple-spec.reporter.js"
)

// Settings are the reporter-related configuration values
type Settings struct {
	Reporter        string // Optional user reporter
	ReporterOptions string // "key=value,key2=value2" for the user reporter
	RunnerResults   string // Results directory passed to the JSON stream reporter
}

// Content builds the reporter config document
func Content(s Settings) (map[string]any, error) {
	enabled := []string{JSONStreamReporter}
	if s.Reporter != "" {
		enabled = append(enabled, s.Reporter)
	} else {
		enabled = append(enabled, SimpleSpecReporter)
	}

	content := map[string]any{
		"reporterEnabled": strings.Join(enabled, ", "),
		"runnerResults":   s.RunnerResults,
	}

	if s.ReporterOptions != "" {
		options, err := ParseOptions(s.ReporterOptions)
		if err != nil {
			return nil, err
		}
		content[camelCase(s.Reporter)+"ReporterOptions"] = options
	}
	return content, nil
}

// WriteConfig writes the reporter config file to path
func WriteConfig(path string, s Settings) error {
	content, err := Content(s)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal reporter config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create reporter config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write reporter config: %w", err)
	}
	return nil
}

// ParseOptions parses "key=value,key2=value2"; keys and values are trimmed
func ParseOptions(s string) (map[string]string, error) {
	options := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("reporter option %q is not key=value", strings.TrimSpace(pair))
		}
		options[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return options, nil
}

// CleanResults empties the results directory, creating it if needed
func CleanResults(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("clean results path: %w", err)
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("create results path: %w", err)
	}
	return nil
}

// camelCase turns "cypress-junit-reporter" or "@scope/my_reporter" into
// "cypressJunitReporter" / "scopeMyReporter"
func camelCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for i, w := range words {
		w = strings.ToLower(w)
		if i > 0 {
			r := []rune(w)
			r[0] = unicode.ToUpper(r[0])
			w = string(r)
		}
		b.WriteString(w)
	}
	return b.String()
}
