package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	// Server
	Port            string
	Env             string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Database
	DBDriver       string
	SQLitePath     string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	MigrationsPath string

	// Currency
	CurrencyTablePath string
	DisplayCurrency   string

	// Auth. An empty OwnerPasswordHash disables authentication.
	JWTSecret         string
	JWTExpirationDur  time.Duration
	OwnerPasswordHash string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		DBDriver:       getEnv("DB_DRIVER", DriverSQLite),
		SQLitePath:     getEnv("SQLITE_PATH", "fintrack.db"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "fintrack"),
		DBPassword:     getEnv("DB_PASSWORD", "fintrack"),
		DBName:         getEnv("DB_NAME", "fintrack"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),

		CurrencyTablePath: getEnv("CURRENCY_TABLE_PATH", ""),
		DisplayCurrency:   getEnv("DISPLAY_CURRENCY", "USD"),

		JWTSecret:         getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		OwnerPasswordHash: getEnv("OWNER_PASSWORD_HASH", ""),
	}

	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	shutdownStr := getEnv("SHUTDOWN_TIMEOUT", "10s")
	shutdown, err := time.ParseDuration(shutdownStr)
	if err != nil {
		log.Printf("Warning: invalid SHUTDOWN_TIMEOUT value '%s', falling back to 10s\n", shutdownStr)
		shutdown = 10 * time.Second
	}
	config.ShutdownTimeout = shutdown

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port))
	}
	switch c.DBDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DBDriver))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.AuthEnabled() && c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required when OWNER_PASSWORD_HASH is set"))
	}

	return errors.Join(errs...)
}

// AuthEnabled reports whether the API requires an owner token.
func (c *Config) AuthEnabled() bool {
	return c.OwnerPasswordHash != ""
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
