package main

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/api"
	"github.com/lbrrrrrr/enjoyyoga/internal/config"
	"github.com/lbrrrrrr/enjoyyoga/internal/database"
	"github.com/lbrrrrrr/enjoyyoga/internal/handlers"
	"github.com/lbrrrrrr/enjoyyoga/internal/logging"
	"github.com/lbrrrrrr/enjoyyoga/internal/middleware"
	"github.com/lbrrrrrr/enjoyyoga/internal/repository"
	"github.com/lbrrrrrr/enjoyyoga/internal/scheduler"
	"github.com/lbrrrrrr/enjoyyoga/internal/services"
)

// NOTE: At least one .sql file must exist in migrations/ for embedding to
// work. Build from the project root so the path resolves.
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

func runMigrations(cfg *config.Config) error {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)
	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", d, "postgres", driver)
	if err != nil {
		return err
	}
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	fmt.Println("Migrations applied successfully.")
	return nil
}

func main() {
	configPath := pflag.StringP("config", "c", "config.yaml", "Path to config file")
	runMigrate := pflag.BoolP("migrate", "m", false, "Run database migrations and exit")
	version := pflag.BoolP("version", "v", false, "Print version and exit")
	port := pflag.IntP("port", "p", 8080, "HTTP server listen port")
	logLevel := pflag.StringP("log-level", "l", "info", "Log level (debug, info, warn, error)")
	masterToken := pflag.String("master-token", "", "Override master token from config")
	jwtSecret := pflag.String("jwt-secret", "", "Override JWT secret from config")

	pflag.Parse()

	if *version {
		fmt.Println("enjoyyoga version 1.0.0")
		os.Exit(0)
	}

	cfg, err := config.LoadWithPath(*configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if *runMigrate {
		if err := runMigrations(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if pflag.Lookup("port").Changed {
		cfg.Server.Port = *port
	}
	if pflag.Lookup("log-level").Changed {
		cfg.Logging.Level = *logLevel
	}
	if pflag.Lookup("master-token").Changed && *masterToken != "" {
		cfg.Auth.MasterToken = *masterToken
	}
	if pflag.Lookup("jwt-secret").Changed && *jwtSecret != "" {
		cfg.Auth.JWTSecret = *jwtSecret
	}

	logger, err := logging.InitLogger(logging.LoggingConfig(cfg.Logging))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	durations, err := cfg.ParseRetentionDurations()
	if err != nil {
		logger.Fatal("Failed to parse retention durations", zap.Error(err))
	}

	db, err := database.NewPostgresDB(cfg.Database.ToDBConfig())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Repositories
	classRepo := repository.NewClassRepository(db, logger, redisClient, "enjoyyoga:")
	teacherRepo := repository.NewTeacherRepository(db, logger)
	registrationRepo := repository.NewRegistrationRepository(db, logger, redisClient)
	paymentRepo := repository.NewPaymentRepository(db, logger)
	inquiryRepo := repository.NewInquiryRepository(db, logger)
	notificationRepo := repository.NewNotificationRepository(db, logger)
	adminRepo := repository.NewAdminUserRepository(db, logger)

	// Services
	tokenService := services.NewTokenService(cfg.Auth.MasterToken, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	var mailer services.Mailer
	if cfg.Email.Enabled {
		mailer = services.NewResendMailer(cfg.Email.ResendAPIKey, cfg.Email.From, cfg.Email.ReplyTo, logger)
	} else {
		mailer = services.NewNoopMailer(logger)
	}
	registrationService := services.NewRegistrationService(
		classRepo, registrationRepo, paymentRepo, notificationRepo, cfg.Studio.Name, logger)

	// Background workers
	refresher := scheduler.NewRefresher(classRepo, cfg.Scheduler.RefreshInterval, logger)
	dispatcher := scheduler.NewDispatcher(notificationRepo, mailer, cfg.Scheduler.DispatchInterval, logger)
	reminder := scheduler.NewReminder(classRepo, registrationRepo, notificationRepo,
		cfg.Scheduler.ReminderCron, cfg.Studio.Name, logger)
	archiver := scheduler.NewArchiver(db, redisClient, registrationRepo, inquiryRepo,
		cfg.Retention.CheckPeriod, *durations, logger)

	// HTTP layer
	rateLimiter := middleware.NewRateLimiter(redisClient)
	h := api.Handlers{
		Class:        handlers.NewClassHandler(classRepo, registrationService),
		Teacher:      handlers.NewTeacherHandler(teacherRepo),
		Registration: handlers.NewRegistrationHandler(registrationService),
		Contact:      handlers.NewContactHandler(inquiryRepo),
		Payment:      handlers.NewPaymentHandler(paymentRepo),
		Admin:        handlers.NewAdminHandler(adminRepo, registrationRepo, inquiryRepo, notificationRepo, tokenService),
		Calendar:     handlers.NewCalendarHandler(classRepo),
		Stream:       handlers.NewStreamHandler(redisClient, logger),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, h, tokenService, rateLimiter, logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := refresher.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("Refresher error", zap.Error(err))
		}
	}()
	go func() {
		if err := dispatcher.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("Dispatcher error", zap.Error(err))
		}
	}()
	go func() {
		if err := archiver.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("Archiver error", zap.Error(err))
		}
	}()
	if err := reminder.Start(ctx); err != nil {
		logger.Fatal("Failed to start reminder job", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Shutting down server...")

		cancel()
		reminder.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Fatal("Server forced to shutdown", zap.Error(err))
		}
	}()

	logger.Info("Starting server", zap.Int("port", cfg.Server.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Server error", zap.Error(err))
	}
}
