package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/config"
	"fintrack/internal/currency"
	"fintrack/internal/database"
	"fintrack/internal/logger"
	"fintrack/internal/router"
	"fintrack/internal/validator"
)

// @title           Fintrack API
// @version         1.0
// @description     Fintrack aggregates multi-currency income and expenses into budgets, dashboards and reports.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

// loadCurrencyTable reads the YAML table at path, or returns the built-in
// table when path is empty.
func loadCurrencyTable(path string) (*currency.Table, error) {
	if path == "" {
		return currency.NewTable(currency.DefaultConfig())
	}
	tableCfg, err := currency.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return currency.NewTable(tableCfg)
}

func run(cfg *config.Config) error {
	log := logger.Get()

	table, err := loadCurrencyTable(cfg.CurrencyTablePath)
	if err != nil {
		return fmt.Errorf("failed to load currency table: %w", err)
	}
	log.Infow("Currency table loaded", "base", table.Base().Code, "currencies", len(table.AllCurrencies()))

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	app := router.New(dbManager.DB(), table, router.Options{
		DisplayCurrency:   cfg.DisplayCurrency,
		OwnerPasswordHash: cfg.OwnerPasswordHash,
		JWTSecret:         cfg.JWTSecret,
		JWTExpiration:     cfg.JWTExpirationDur,
		Swagger:           !cfg.IsProduction(),
		RequestLogging:    true,
	})

	if _, err := app.Categories.SeedDefaults(); err != nil {
		return fmt.Errorf("failed to seed default categories: %w", err)
	}
	if !cfg.AuthEnabled() {
		log.Warn("OWNER_PASSWORD_HASH is not set, the API is open to anyone who can reach it")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: app.Engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Starting Fintrack server on port %s", cfg.Port)
		if !cfg.IsProduction() {
			log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
