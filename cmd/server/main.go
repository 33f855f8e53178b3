package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	api "asociacion-backend/internal/api/http"
	"asociacion-backend/internal/config"
	"asociacion-backend/internal/logger"
	"asociacion-backend/internal/repository/postgres"
	"asociacion-backend/internal/security"
	"asociacion-backend/internal/service"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Local overrides; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting association backend...", "address", cfg.GetServerAddress())

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	issuer := service.NewCredentialIssuer(cfg.Credentials.PasswordLength)

	appSvc := service.NewApplicationService(store.ApplicationRepository, issuer, emailSvc)
	enrollSvc := service.NewEnrollmentService(store.OfferingRepository, store.EnrollmentRepository, emailSvc)
	adminSvc := service.NewAdminService(store.UserRepository, emailSvc)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)

	router := api.NewRouter(
		tokenManager,
		api.NewApplicationHandler(appSvc),
		api.NewEnrollmentHandler(enrollSvc),
		api.NewAdminHandler(adminSvc),
		api.NewAuthHandler(authSvc),
	)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server stopped", "error", err)
		log.Fatalf("Server stopped: %v", err)
	}
}
