package main

import (
	"context"
	"customer-api/internal/api"
	"customer-api/internal/api/handler"
	"customer-api/internal/batch"
	"customer-api/internal/config"
	"customer-api/internal/domain/customer"
	"customer-api/internal/event"
	"customer-api/internal/infrastructure/cache"
	"customer-api/internal/infrastructure/database/memory"
	"customer-api/internal/infrastructure/database/postgres"
	"customer-api/internal/infrastructure/logging"
	"customer-api/internal/infrastructure/security"
	"customer-api/internal/infrastructure/token"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

const rabbitMQConnectAttempts = 5

// @title Customer API
// @version 1.0
// @description Customer registration, authentication and lifecycle management.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	loadDotEnv(".env")
	cfg, logger := initializeApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, closeRepo, err := initializeRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize customer repository", "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	rabbitConn, publisher := initializePublisher(cfg, logger)

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Error("Failed to initialize Redis client", "error", err)
		os.Exit(1)
	}
	revocations := initializeRevocationList(redisClient, logger)

	deps, err := buildDependencies(repo, cfg, revocations, publisher, logger)
	if err != nil {
		logger.Error("Failed to initialize application components", "error", err)
		os.Exit(1)
	}

	censusJob := batch.NewCensusJob(deps.Customers.Lister, logger)
	cronScheduler := startBatchJobs(cfg, logger, censusJob)

	router := api.SetupRouter(ctx, deps, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitConn, redisClient, shutdownChan, serverErrors, logger)
}

// loadDotEnv feeds a local env file into the process environment; a missing file is not an error.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load env file", "path", path, "error", err)
	}
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "port", cfg.Server.Port, "in_memory", cfg.Database.InMemory)

	return cfg, logger
}

func initializeRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (customer.CustomerRepository, func(), error) {
	if cfg.Database.InMemory {
		logger.Warn("Using in-memory customer repository; data will not survive a restart.")
		return memory.NewCustomerRepository(), func() {}, nil
	}

	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	closeDatabase := func() {
		logger.Info("Closing database connection pool...")
		dbPool.Close()
	}

	if err := postgres.EnsureSchema(ctx, dbPool, logger); err != nil {
		closeDatabase()
		return nil, nil, err
	}

	return postgres.NewCustomerRepository(dbPool, logger), closeDatabase, nil
}

// initializePublisher falls back to logging events when the broker is disabled or unreachable.
func initializePublisher(cfg *config.Config, logger *slog.Logger) (*amqp.Connection, event.EventPublisher) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled, customer events will only be logged.")
		return nil, event.NewLoggingEventPublisher(logger)
	}

	conn, err := event.Connect(cfg.RabbitMQ.URL, rabbitMQConnectAttempts, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, customer events will only be logged", "error", err)
		return nil, event.NewLoggingEventPublisher(logger)
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to set up RabbitMQ publisher, customer events will only be logged", "error", err)
		closeRabbitMQConnection(conn, logger)
		return nil, event.NewLoggingEventPublisher(logger)
	}
	return conn, publisher
}

func initializeRevocationList(redisClient *redis.Client, logger *slog.Logger) token.RevocationList {
	if redisClient == nil {
		logger.Warn("Redis disabled, revoked tokens are tracked in process memory.")
		return token.NewMemoryRevocationList()
	}
	return token.NewRedisRevocationList(redisClient)
}

func buildDependencies(repo customer.CustomerRepository, cfg *config.Config, revocations token.RevocationList, publisher event.EventPublisher, logger *slog.Logger) (api.Dependencies, error) {
	logger.Info("Initializing application components...")

	jwtService, err := token.NewJWTService(cfg.Server.Auth.JWTSecret, cfg.Server.Auth.Issuer, cfg.Server.Auth.TokenTTL)
	if err != nil {
		return api.Dependencies{}, fmt.Errorf("cannot create token service: %w", err)
	}
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)

	return api.Dependencies{
		Customers: handler.CustomerServices{
			Creator: customer.NewCreateCustomerService(repo, hasher, logger),
			Updater: customer.NewUpdateCustomerService(repo, logger),
			Lister:  customer.NewListCustomersService(repo, logger),
			Getter:  customer.NewGetCustomerService(repo, logger),
		},
		Identifier:  customer.NewIdentifyCustomerService(repo, hasher, jwtService, logger),
		Verifier:    jwtService,
		Revocations: revocations,
		Publisher:   publisher,
	}, nil
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, rabbitConn *amqp.Connection, redisClient *redis.Client,
	shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	triggerReason := waitForShutdownTrigger(shutdownChan, serverErrors, logger)

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	stopCronScheduler(cronScheduler, logger)
	shutdownHTTPServer(srv, serverErrors, logger)
	closeRabbitMQConnection(rabbitConn, logger)
	closeRedisClient(redisClient, logger)

	logger.Info("Application shutdown process complete.")
}

func waitForShutdownTrigger(shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) string {
	select {
	case sig := <-shutdownChan:
		logger.Info("Shutdown signal received.", "signal", sig.String())
		return "signal: " + sig.String()
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		logger.Info("Server goroutine finished before signal.", "error", err)
		return "server exited"
	}
}

func stopCronScheduler(cronScheduler *cron.Cron, logger *slog.Logger) {
	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}

func shutdownHTTPServer(srv *http.Server, serverErrors <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	select {
	case err := <-serverErrors:
		if err != nil {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}
}

func closeRabbitMQConnection(rabbitConn *amqp.Connection, logger *slog.Logger) {
	if rabbitConn == nil {
		return
	}
	if rabbitConn.IsClosed() {
		logger.Info("RabbitMQ connection already closed, skipping close.")
		return
	}
	logger.Info("Closing RabbitMQ connection...")
	if err := rabbitConn.Close(); err != nil {
		logger.Error("Failed to close RabbitMQ connection gracefully", slog.Any("error", err))
	}
}

func closeRedisClient(redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		return
	}
	logger.Info("Closing Redis client connection...")
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close Redis client connection gracefully", "error", err)
	}
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, censusJob *batch.CensusJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	if _, err := batch.Schedule(c, cfg.Batch.CensusSchedule, cfg.Batch.CensusTimeout, censusJob, logger); err != nil {
		logger.Error("Failed to schedule customer census job", slog.Any("error", err))
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}
