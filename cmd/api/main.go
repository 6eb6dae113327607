package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"newsletterplatform/config"
	"newsletterplatform/internal/adapters/auth"
	"newsletterplatform/internal/adapters/email"
	deliveryhttp "newsletterplatform/internal/delivery/http"
	"newsletterplatform/internal/delivery/http/controllers"
	"newsletterplatform/internal/delivery/http/middleware"
	"newsletterplatform/internal/repository/postgres"
	"newsletterplatform/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := postgres.InitSchema(ctx, db); err != nil {
		logger.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}

	adminRepo := postgres.NewAdminRepository(db)
	subscriberRepo := postgres.NewSubscriberRepository(db)
	newsletterRepo := postgres.NewNewsletterRepository(db)

	hasher := auth.NewBcryptHasher(0)
	tokens := auth.NewJWTManager(cfg.JWTSecret, 0)

	mailer := email.NewTransport(email.TransportConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SMTP: email.SMTPConfig{
			Host:               cfg.SMTPHost,
			Port:               cfg.SMTPPort,
			Username:           cfg.SMTPUsername,
			Password:           cfg.SMTPPassword,
			Secure:             cfg.SMTPSecure,
			InsecureSkipVerify: cfg.SMTPInsecureSkipVerify,
		},
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	}, logger)
	renderer := email.NewTemplateRenderer(cfg.TemplatesDir)
	dispatcher := services.NewEmailDispatcher(mailer, renderer, logger)

	adminService := services.NewAdminService(adminRepo, subscriberRepo, newsletterRepo, hasher, tokens, dispatcher, cfg.BaseURL, logger)
	subscriberService := services.NewSubscriberService(subscriberRepo, dispatcher, cfg.BaseURL, logger)
	newsletterService := services.NewNewsletterService(newsletterRepo)

	adminController := controllers.NewAdminController(logger, adminService)
	userController := controllers.NewUserController(logger, subscriberService)
	newsletterController := controllers.NewNewsletterController(logger, newsletterService)

	mux := deliveryhttp.NewRouter(logger, tokens, adminController, userController, newsletterController)
	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
