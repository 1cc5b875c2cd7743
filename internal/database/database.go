// Package database creates the per-thread MySQL schemas used when each
// runner thread needs an isolated database.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"os"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"pst/internal/config"
)

// Connection holds the MySQL server settings read from the environment
type Connection struct {
	Host     string
	Port     string
	User     string
	Password string
}

// DSN returns a server-level DSN (no default schema)
func (c Connection) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, c.Port)
	cfg.Timeout = 5 * time.Second
	return cfg.FormatDSN()
}

// ConnectionFromEnv reads DB_HOST, DB_PORT, DB_USERNAME and DB_PASSWORD.
// The process environment wins over fileVars (the project's .env file).
func ConnectionFromEnv(fileVars map[string]string) Connection {
	get := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v := fileVars[key]; v != "" {
			return v
		}
		return def
	}
	return Connection{
		Host:     get("DB_HOST", "127.0.0.1"),
		Port:     get("DB_PORT", "3306"),
		User:     get("DB_USERNAME", "root"),
		Password: get("DB_PASSWORD", ""),
	}
}

// Manager manages the thread databases
type Manager struct {
	config *config.Config
	log    logrus.FieldLogger
}

// NewManager creates a new Manager
func NewManager(cfg *config.Config, log logrus.FieldLogger) *Manager {
	return &Manager{config: cfg, log: log}
}

// Names returns the database name of every thread, 1-based
func (m *Manager) Names(threads int) []string {
	names := make([]string, 0, threads)
	for i := 1; i <= threads; i++ {
		names = append(names, m.config.GetDatabaseName(i))
	}
	return names
}

// CheckAndCreateDatabases makes sure a database exists for every thread and
// returns the names it had to create.
func (m *Manager) CheckAndCreateDatabases(ctx context.Context, threads int) ([]string, error) {
	names := m.Names(threads)
	for _, name := range names {
		if !isValidDatabaseName(name) {
			return nil, fmt.Errorf("invalid database name: %s", name)
		}
	}

	var fileVars map[string]string
	if path := m.config.GetEnvFilePath(); path != "" {
		vars, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			m.log.WithError(err).Warn("Ignoring env file for database settings")
		}
		fileVars = vars
	}
	conn := ConnectionFromEnv(fileVars)

	db, err := sql.Open("mysql", conn.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database server %s:%s: %w", conn.Host, conn.Port, err)
	}

	var created []string
	for _, name := range names {
		exists, err := databaseExists(ctx, db, name)
		if err != nil {
			return nil, fmt.Errorf("failed to check database %s: %w", name, err)
		}
		if exists {
			m.log.WithField("database", name).Debug("Database exists")
			continue
		}
		if _, err := db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", name)); err != nil {
			return nil, fmt.Errorf("failed to create database %s: %w", name, err)
		}
		m.log.WithField("database", name).Info("Created database")
		created = append(created, name)
	}
	return created, nil
}

func databaseExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRowContext(ctx, query, name).Scan(&exists)
	return exists, err
}

var databaseName = regexp.MustCompile(`^[A-Za-z0-9_$]{1,64}$`)

// isValidDatabaseName accepts unquoted MySQL identifiers only
func isValidDatabaseName(name string) bool {
	return databaseName.MatchString(name)
}
