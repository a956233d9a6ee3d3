// HuertoHogar API - e-commerce backend
//
// This is the main entry point for the HuertoHogar backend. It serves the
// storefront REST API: registration and login, role-gated user management,
// and the product catalog, backed by a hosted Postgres database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/huertohogar/huerto-api/migrations"

	"github.com/huertohogar/huerto-api/internal/api"
	"github.com/huertohogar/huerto-api/internal/auth"
	"github.com/huertohogar/huerto-api/internal/catalog"
	"github.com/huertohogar/huerto-api/internal/infrastructure/config"
	"github.com/huertohogar/huerto-api/internal/infrastructure/database"
	"github.com/huertohogar/huerto-api/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting HuertoHogar API",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration. A missing or short JWT secret fails here, before
	// anything is listening.
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open the hosted Postgres database
	db, err := database.Open(ctx, database.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected")

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Token authority: fails when the secret is empty, which config.Validate
	// already guards, but the authority is the final word on it.
	tokens, err := auth.NewAuthority(cfg.Security.JWT.Secret, cfg.GetTokenExpiry())
	if err != nil {
		return fmt.Errorf("creating token authority: %w", err)
	}

	// Repositories and services
	userRepo := auth.NewUserRepository(db.DB)
	productRepo := catalog.NewProductRepository(db.DB)
	categoryRepo := catalog.NewCategoryRepository(db.DB)
	authService := auth.NewService(userRepo, tokens)

	// Create the bootstrap admin on first boot (empty users table)
	if _, seedErr := auth.SeedAdmin(ctx, userRepo, log.Logger); seedErr != nil {
		return fmt.Errorf("seeding admin account: %w", seedErr)
	}

	// API server
	server, err := api.New(api.Deps{
		Config:     cfg.API,
		Logger:     log,
		Auth:       authService,
		Tokens:     tokens,
		Users:      userRepo,
		Products:   productRepo,
		Categories: categoryRepo,
		DB:         db,
		Version:    version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal",
		"address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
	)

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. API server
	// 2. Database

	log.Info("HuertoHogar API stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses HUERTO_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HUERTO_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
