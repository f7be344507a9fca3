package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "campuscollab-backend/internal/api/http"
	"campuscollab-backend/internal/config"
	"campuscollab-backend/internal/logger"
	"campuscollab-backend/internal/repository/postgres"
	"campuscollab-backend/internal/security"
	"campuscollab-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CampusCollab backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	var emailSvc service.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailSvc = service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		logger.Warn("SendGrid API key not configured, email delivery disabled")
	}

	emitter := service.NewNotifier(store.NotificationRepository, store.UserRepository, emailSvc)

	projectSvc := service.NewProjectService(store.ProjectRepository)
	appSvc := service.NewApplicationService(
		store.JoinRequestRepository,
		store.ProjectRepository,
		store.UserRepository,
		emitter,
	)
	decisionSvc := service.NewDecisionService(
		store.JoinRequestRepository,
		store.ProjectRepository,
		emitter,
	)
	sopSvc := service.NewSopEditService(store.JoinRequestRepository, store.ProjectRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	router := httpapi.NewRouter(
		tokenManager,
		httpapi.NewProjectHandler(projectSvc, appSvc),
		httpapi.NewRequestHandler(appSvc, decisionSvc, sopSvc),
		httpapi.NewNotificationHandler(noteSvc),
	)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
