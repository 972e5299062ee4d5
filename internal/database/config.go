package database

import (
	"fmt"
	"path/filepath"

	"fintrack/internal/config"
)

// Config holds database configuration
type Config struct {
	Driver         string
	SQLitePath     string
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

// NewConfig extracts the database settings from the application configuration.
func NewConfig(cfg *config.Config) *Config {
	return &Config{
		Driver:         cfg.DBDriver,
		SQLitePath:     cfg.SQLitePath,
		Host:           cfg.DBHost,
		Port:           cfg.DBPort,
		User:           cfg.DBUser,
		Password:       cfg.DBPassword,
		DBName:         cfg.DBName,
		SSLMode:        cfg.DBSSLMode,
		MigrationsPath: cfg.MigrationsPath,
	}
}

// DSN returns the connection string gorm opens.
func (c *Config) DSN() string {
	if c.Driver == config.DriverPostgres {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	}
	return c.SQLitePath
}

// MigrationDatabaseURL returns the database URL in golang-migrate form.
func (c *Config) MigrationDatabaseURL() string {
	if c.Driver == config.DriverPostgres {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
	}
	return "sqlite3://" + c.SQLitePath
}

// MigrationSourceURL points at the driver specific migrations directory,
// e.g. file://migrations/sqlite.
func (c *Config) MigrationSourceURL() string {
	return "file://" + filepath.ToSlash(filepath.Join(c.MigrationsPath, c.Driver))
}
