package database

import (
	"path/filepath"
	"testing"

	"fintrack/internal/config"
)

func TestConfigURLs(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		cfg := NewConfig(&config.Config{DBDriver: config.DriverSQLite, SQLitePath: "data/fintrack.db", MigrationsPath: "migrations"})

		if cfg.DSN() != "data/fintrack.db" {
			t.Errorf("unexpected DSN %q", cfg.DSN())
		}
		if cfg.MigrationDatabaseURL() != "sqlite3://data/fintrack.db" {
			t.Errorf("unexpected migration URL %q", cfg.MigrationDatabaseURL())
		}
		if cfg.MigrationSourceURL() != "file://migrations/sqlite" {
			t.Errorf("unexpected source URL %q", cfg.MigrationSourceURL())
		}
	})

	t.Run("postgres", func(t *testing.T) {
		cfg := NewConfig(&config.Config{
			DBDriver: config.DriverPostgres, DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p",
			DBName: "fintrack", DBSSLMode: "disable", MigrationsPath: "migrations",
		})

		if cfg.DSN() != "host=db port=5432 user=u password=p dbname=fintrack sslmode=disable" {
			t.Errorf("unexpected DSN %q", cfg.DSN())
		}
		if cfg.MigrationDatabaseURL() != "postgres://u:p@db:5432/fintrack?sslmode=disable" {
			t.Errorf("unexpected migration URL %q", cfg.MigrationDatabaseURL())
		}
	})
}

func TestManagerSQLite(t *testing.T) {
	cfg := NewConfig(&config.Config{
		DBDriver:       config.DriverSQLite,
		SQLitePath:     filepath.Join(t.TempDir(), "test.db"),
		MigrationsPath: filepath.Join("..", "..", "migrations"),
	})

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer m.Close()

	if err := m.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	// second run is a no-op
	if err := m.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations again: %v", err)
	}

	for _, table := range []string{"categories", "transactions", "budgets", "settings", "audit_logs"} {
		if !m.DB().Migrator().HasTable(table) {
			t.Errorf("expected table %s", table)
		}
	}
}

func TestManagerUnknownDriver(t *testing.T) {
	if _, err := NewManager(&Config{Driver: "mysql"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
