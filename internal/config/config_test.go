package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_GetWeightsPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default path",
			config:   &Config{ProjectPath: ".", WeightsFile: DefaultWeightsFile},
			expected: "cypress/parallel-weights.json",
		},
		{
			name:     "relative to project",
			config:   &Config{ProjectPath: "/project", WeightsFile: "weights.json"},
			expected: "/project/weights.json",
		},
		{
			name:     "absolute weights path",
			config:   &Config{ProjectPath: "/project", WeightsFile: "/absolute/weights.json"},
			expected: "/absolute/weights.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetWeightsPath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_GetReporterConfigPath(t *testing.T) {
	cfg := New()
	if got := cfg.GetReporterConfigPath(); got != DefaultReporterConfigFile {
		t.Errorf("expected generated config %s, got %s", DefaultReporterConfigFile, got)
	}

	cfg.ReporterOptionsPath = "custom/reporter.json"
	if got := cfg.GetReporterConfigPath(); got != "custom/reporter.json" {
		t.Errorf("expected explicit path to win, got %s", got)
	}
}

func TestConfig_GetDatabaseName(t *testing.T) {
	t.Setenv("DB_DATABASE_PREFIX", "")
	cfg := New()

	t.Run("default database name", func(t *testing.T) {
		name := cfg.GetDatabaseName(1)
		if name != "testing_1" {
			t.Errorf("expected testing_1, got %s", name)
		}
	})

	t.Run("environment prefix wins", func(t *testing.T) {
		t.Setenv("DB_DATABASE_PREFIX", "e2e")
		if name := cfg.GetDatabaseName(3); name != "e2e_3" {
			t.Errorf("expected e2e_3, got %s", name)
		}
	})
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ThreadCount != DefaultThreadCount {
		t.Errorf("expected ThreadCount %d, got %d", DefaultThreadCount, cfg.ThreadCount)
	}
	if cfg.StaggerInterval != DefaultStaggerInterval {
		t.Errorf("expected StaggerInterval %s, got %s", DefaultStaggerInterval, cfg.StaggerInterval)
	}
	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}

	cfg.PathsToIgnore[0] = "changed"
	if DefaultPathsToIgnore[0] == "changed" {
		t.Error("New must copy the default ignore list")
	}
}

func TestConfig_WithThreadCount(t *testing.T) {
	cfg := New()
	cfg.SuitePaths = []string{"a.cy.js"}

	clamped := cfg.WithThreadCount(1)
	if clamped.ThreadCount != 1 {
		t.Errorf("expected 1 thread, got %d", clamped.ThreadCount)
	}
	if cfg.ThreadCount != DefaultThreadCount {
		t.Errorf("original config changed to %d threads", cfg.ThreadCount)
	}

	clamped.SuitePaths[0] = "b.cy.js"
	if cfg.SuitePaths[0] != "a.cy.js" {
		t.Error("copy shares suite slice with original")
	}
}

func TestLoad(t *testing.T) {
	t.Run("flags only apply when set", func(t *testing.T) {
		cfg, err := Load(Flags{ThreadCount: 9, Bail: true, Set: map[string]bool{"bail": true}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ThreadCount != DefaultThreadCount {
			t.Errorf("unset flag overrode threads: %d", cfg.ThreadCount)
		}
		if !cfg.Bail {
			t.Error("expected bail to be set")
		}
	})

	t.Run("config file then flags", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pst.yml")
		content := "threads: 6\nstagger: 500ms\nexecutable: yarn\nrunner_args: [cypress, run, --headless]\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := Load(Flags{
			ConfigFile:  path,
			ThreadCount: 3,
			Set:         map[string]bool{"threads": true},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ThreadCount != 3 {
			t.Errorf("expected flag to win with 3 threads, got %d", cfg.ThreadCount)
		}
		if cfg.StaggerInterval != 500*time.Millisecond {
			t.Errorf("expected 500ms stagger, got %s", cfg.StaggerInterval)
		}
		if cfg.Executable != "yarn" || len(cfg.RunnerArgs) != 3 {
			t.Errorf("file values not applied: %s %v", cfg.Executable, cfg.RunnerArgs)
		}
		if cfg.SpecFlag != DefaultSpecFlag {
			t.Errorf("missing key should keep default, got %s", cfg.SpecFlag)
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		if _, err := Load(Flags{ConfigFile: "/non/existent/pst.yml"}); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("extra args pass through", func(t *testing.T) {
		cfg, err := Load(Flags{ExtraArgs: []string{"--browser", "chrome"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Join(cfg.ExtraArgs, " ") != "--browser chrome" {
			t.Errorf("unexpected extra args %v", cfg.ExtraArgs)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "zero threads", mutate: func(c *Config) { c.ThreadCount = 0 }, wantErr: "threads"},
		{name: "negative weight", mutate: func(c *Config) { c.DefaultWeight = -1 }, wantErr: "default weight"},
		{name: "empty executable", mutate: func(c *Config) { c.Executable = "" }, wantErr: "executable"},
		{name: "unknown precedence", mutate: func(c *Config) { c.WeightPrecedence = "first" }, wantErr: "precedence"},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "log level"},
		{name: "negative terminate grace", mutate: func(c *Config) { c.TerminateGrace = -time.Second }, wantErr: "terminate grace"},
		{name: "negative stagger", mutate: func(c *Config) { c.StaggerInterval = -time.Second }, wantErr: "stagger"},
		{name: "empty thread env", mutate: func(c *Config) { c.ThreadEnvVar = "" }, wantErr: "thread env"},
		{name: "empty database env", mutate: func(c *Config) { c.Databases = true; c.DatabaseEnvVar = "" }, wantErr: "database env"},
		{name: "empty database env without databases", mutate: func(c *Config) { c.DatabaseEnvVar = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
