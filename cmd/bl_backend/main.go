package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradelens/barter_ledger/internal/adapters/database/pgsql"
	"github.com/tradelens/barter_ledger/internal/adapters/events/kafka"
	"github.com/tradelens/barter_ledger/internal/core/ports"
	portssvc "github.com/tradelens/barter_ledger/internal/core/ports/services"
	"github.com/tradelens/barter_ledger/internal/core/services"
	"github.com/tradelens/barter_ledger/internal/dto"
	"github.com/tradelens/barter_ledger/internal/handlers"
	"github.com/tradelens/barter_ledger/internal/middleware"
	"github.com/tradelens/barter_ledger/pkg/config"
	"github.com/tradelens/barter_ledger/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Barter Ledger API
// @version 1.0
// @description Double-entry ledger engine for barter transactions.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := dto.RegisterBindingValidations(); err != nil {
		logger.Error("Failed to register binding validations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Event publishing is optional; without brokers the ledger runs alone.
	var publisher ports.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers)
		defer func() {
			if cerr := kafkaPublisher.Close(); cerr != nil {
				logger.Error("Error closing Kafka publisher", slog.String("error", cerr.Error()))
			}
		}()
		publisher = kafkaPublisher
		logger.Info("Kafka event publisher enabled", slog.Any("brokers", cfg.KafkaBrokers))
	}

	handlers.RegisterRoutes(r, cfg, buildServices(dbPool, publisher))

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires repositories into the service container handed to the
// HTTP layer.
func buildServices(dbPool *pgxpool.Pool, publisher ports.EventPublisher) *portssvc.ServiceContainer {
	barterRepo := pgsql.NewPgxBarterRepository(dbPool)
	accountRepo := pgsql.NewPgxAccountRepository(dbPool)
	contactRepo := pgsql.NewPgxContactRepository(dbPool)
	sequenceRepo := pgsql.NewPgxSequenceRepository(dbPool)

	clearingSvc := services.NewClearingAccountService(accountRepo)
	sequenceSvc := services.NewSequenceService(sequenceRepo)

	return &portssvc.ServiceContainer{
		Barter:    services.NewBarterService(barterRepo, accountRepo, clearingSvc, sequenceSvc, publisher),
		Reporting: services.NewReportingService(barterRepo, contactRepo),
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory using a temporary database/sql connection.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
