package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stepupp/account-server-go/internal/auth"
	"github.com/stepupp/account-server-go/internal/config"
	"github.com/stepupp/account-server-go/internal/handler"
	"github.com/stepupp/account-server-go/internal/httputil"
	"github.com/stepupp/account-server-go/internal/jobs"
	"github.com/stepupp/account-server-go/internal/mail"
	"github.com/stepupp/account-server-go/internal/middleware"
	"github.com/stepupp/account-server-go/internal/service"
	"github.com/stepupp/account-server-go/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("APP_ENV") == "production"
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	fileStore, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open data directory")
	}
	log.Info().Str("dir", cfg.DataDir).Msg("file store opened")

	var sender mail.Sender
	if !cfg.DisableEmail {
		sender, err = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.EmailUser,
			Password: cfg.EmailPass,
			From:     cfg.From(),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure SMTP sender")
		}
	}
	mailer := mail.NewConfirmationMailer(sender, cfg.FrontendURL)

	issuer := auth.NewIssuer(cfg.JWTSecret, config.SessionTokenTTL)

	registrationService := service.NewRegistrationService(
		fileStore, mailer, cfg.DisableEmail, config.ConfirmationTokenTTL,
	)
	sessionService := service.NewSessionService(fileStore, issuer)

	authMiddleware := middleware.NewAuthMiddleware(sessionService)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)

	accountHandler := handler.NewAccountHandler(
		registrationService, sessionService, authMiddleware.Handler, cfg.DisableEmail,
	)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"message":   "StepUpp Backend API",
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	r.Mount("/api", accountHandler.Routes())

	cleanupJob := jobs.NewCleanupJob(registrationService, config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
