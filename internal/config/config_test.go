package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:            "8080",
		DBDriver:        DriverSQLite,
		SQLitePath:      "fintrack.db",
		ShutdownTimeout: 10 * time.Second,
		JWTSecret:       "secret",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr []string
	}{
		{"valid", func(c *Config) {}, nil},
		{"bad port", func(c *Config) { c.Port = "http" }, []string{"PORT"}},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, []string{"DB_DRIVER"}},
		{"postgres without host", func(c *Config) {
			c.DBDriver = DriverPostgres
			c.DBName = "fintrack"
		}, []string{"DB_HOST"}},
		{"auth without secret", func(c *Config) {
			c.OwnerPasswordHash = "$2a$10$hash"
			c.JWTSecret = ""
		}, []string{"JWT_SECRET"}},
		{"several problems", func(c *Config) {
			c.Port = "0"
			c.ShutdownTimeout = 0
		}, []string{"PORT", "SHUTDOWN_TIMEOUT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("expected error to mention %s, got %v", want, err)
				}
			}
		})
	}
}

func TestAuthEnabled(t *testing.T) {
	c := validConfig()
	if c.AuthEnabled() {
		t.Error("expected auth disabled without a password hash")
	}
	c.OwnerPasswordHash = "$2a$10$hash"
	if !c.AuthEnabled() {
		t.Error("expected auth enabled with a password hash")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DISPLAY_CURRENCY", "EUR")
	t.Setenv("JWT_EXPIRES_IN", "not-a-duration")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Port != "9090" || c.LogLevel != "debug" || c.DisplayCurrency != "EUR" {
		t.Errorf("environment not applied: %+v", c)
	}
	if c.JWTExpirationDur != 24*time.Hour {
		t.Errorf("expected fallback expiration of 24h, got %s", c.JWTExpirationDur)
	}
	if c.DBDriver != DriverSQLite {
		t.Errorf("expected sqlite by default, got %s", c.DBDriver)
	}
}
