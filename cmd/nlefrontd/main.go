// NoLongerEvil Frontend - Device Registration Service
//
// This is the ingress-facing companion to the NoLongerEvil thermostat
// server. It serves the device-management UI, lets a user claim entry
// codes for Nest thermostats, and seeds the MQTT integration config the
// vendor server reads from the shared SQLite database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	_ "github.com/nolongerevil/frontend/migrations"

	"github.com/nolongerevil/frontend/internal/api"
	"github.com/nolongerevil/frontend/internal/identity"
	"github.com/nolongerevil/frontend/internal/infrastructure/config"
	"github.com/nolongerevil/frontend/internal/infrastructure/database"
	"github.com/nolongerevil/frontend/internal/infrastructure/logging"
	"github.com/nolongerevil/frontend/internal/infrastructure/mqtt"
	"github.com/nolongerevil/frontend/internal/integration"
	"github.com/nolongerevil/frontend/internal/registration"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
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
	// A .env file is a development convenience; the add-on supplies real
	// environment variables.
	//nolint:errcheck // Missing .env is the normal production case
	godotenv.Load()

	log := logging.Default()
	log.Info("starting NoLongerEvil frontend",
		"version", version,
		"commit", commit,
	)

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	// Open the database shared with the vendor server
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
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
	log.Info("database connected", "path", cfg.Database.Path)

	// Migrations are no-ops when the vendor server created the schema first
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}

	// The default identity must exist before anything can reference it
	userRepo := identity.NewSQLiteRepository(db.DB)
	created, err := userRepo.EnsureUser(ctx, cfg.Registration.DefaultUserID, cfg.Registration.DefaultUserEmail)
	if err != nil {
		return fmt.Errorf("ensuring default user: %w", err)
	}
	if created {
		log.Info("created default user", "user_id", cfg.Registration.DefaultUserID)
	}

	// Seed the MQTT integration config row the vendor server polls
	seeder := integration.NewSeeder(integration.NewSQLiteRepository(db.DB), cfg.MQTT, log)
	if err := seeder.Run(ctx, cfg.Registration.DefaultUserID); err != nil {
		return fmt.Errorf("seeding MQTT integration: %w", err)
	}

	// Optional broker connectivity check. The vendor server is the
	// long-lived broker client; an unreachable broker here is worth a
	// warning, not an abort.
	if cfg.MQTT.Announce {
		announceBroker(cfg, log)
	}

	registrationSvc := registration.NewService(registration.NewSQLiteRepository(db.DB), log)

	server, err := api.New(api.Deps{
		Config:        cfg.HTTP,
		Logger:        log,
		Registration:  registrationSvc,
		DefaultUserID: cfg.Registration.DefaultUserID,
		Version:       version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. Database

	log.Info("NoLongerEvil frontend stopped")
	return nil
}

// announceBroker connects to the broker once, publishes the frontend's
// availability, and disconnects. Failure is logged, never fatal.
func announceBroker(cfg *config.Config, log *logging.Logger) {
	client, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		log.Warn("MQTT broker unreachable, skipping announce",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Host, cfg.MQTT.Port),
			"error", err,
		)
		return
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			log.Warn("error closing MQTT announce client", "error", closeErr)
		}
	}()

	if err := client.PublishOnline(); err != nil {
		log.Warn("failed to publish availability", "error", err)
		return
	}
	log.Info("announced availability to broker",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Host, cfg.MQTT.Port),
		"topic", mqtt.Topics{}.FrontendStatus(),
	)
}

// getConfigPath returns the configuration file path.
// Uses NLE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("NLE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
