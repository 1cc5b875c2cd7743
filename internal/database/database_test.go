package database

import (
	"context"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"pst/internal/config"
)

func TestIsValidDatabaseName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"testing_1", true},
		{"e2e_12", true},
		{"", false},
		{"bad-name", false},
		{"x`; DROP DATABASE y", false},
		{strings.Repeat("a", 65), false},
	}
	for _, tt := range tests {
		if got := isValidDatabaseName(tt.name); got != tt.valid {
			t.Errorf("isValidDatabaseName(%q) = %v, want %v", tt.name, got, tt.valid)
		}
	}
}

func TestConnectionFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USERNAME", "ci")
	t.Setenv("DB_PASSWORD", "")

	conn := ConnectionFromEnv(map[string]string{
		"DB_HOST":     "mysql",
		"DB_USERNAME": "ignored",
		"DB_PASSWORD": "secret",
	})
	want := Connection{Host: "mysql", Port: "3306", User: "ci", Password: "secret"}
	if conn != want {
		t.Errorf("got %+v, want %+v", conn, want)
	}
}

func TestConnection_DSN(t *testing.T) {
	conn := Connection{Host: "127.0.0.1", Port: "3307", User: "root", Password: "pw"}
	dsn := conn.DSN()
	if !strings.HasPrefix(dsn, "root:pw@tcp(127.0.0.1:3307)/") {
		t.Errorf("unexpected DSN %q", dsn)
	}
}

func TestManager_Names(t *testing.T) {
	t.Setenv("DB_DATABASE_PREFIX", "")
	cfg := config.New()
	cfg.DatabasePrefix = "cy"
	m := NewManager(cfg, logrus.New())

	want := []string{"cy_1", "cy_2", "cy_3"}
	if got := m.Names(3); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestManager_RejectsInvalidNames(t *testing.T) {
	t.Setenv("DB_DATABASE_PREFIX", "")
	cfg := config.New()
	cfg.DatabasePrefix = "no-dashes"
	log := logrus.New()
	log.SetOutput(io.Discard)

	_, err := NewManager(cfg, log).CheckAndCreateDatabases(context.Background(), 2)
	if err == nil || !strings.Contains(err.Error(), "invalid database name: no-dashes_1") {
		t.Errorf("expected invalid name error, got %v", err)
	}
}
