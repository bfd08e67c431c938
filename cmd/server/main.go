package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"eventhub/config"
	_ "eventhub/docs"
	"eventhub/internal/adapters/auth"
	"eventhub/internal/adapters/email"
	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/repository/postgres"
	"eventhub/internal/services"

	httpdelivery "eventhub/internal/delivery/http"
)

const serviceTimeout = 10 * time.Second

// @title EventHub API
// @version 1.0
// @description Club event management backend: members submit event requests, club admins approve or reject them, and approved requests are published as events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		logger.Error("connect database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	profileRepo := postgres.NewProfileRepository(db)
	requestRepo := postgres.NewEventRequestRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	clubRepo := postgres.NewClubRepository(db)
	membershipRepo := postgres.NewMembershipRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	issuer := auth.NewJWTIssuer(cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    "EventHub",
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKey,
			SecretAccessKey: cfg.AWSSecretKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer())

	// Services
	authorizer := services.NewAuthorizer(membershipRepo)
	userSvc := services.NewUserService(profileRepo, hasher, issuer, time.Duration(cfg.JWTExpiryHours)*time.Hour, serviceTimeout)
	requestSvc := services.NewEventRequestService(requestRepo, membershipRepo, profileRepo, authorizer, emailSvc, serviceTimeout)
	eventSvc := services.NewEventService(eventRepo, serviceTimeout)
	clubSvc := services.NewClubService(clubRepo, membershipRepo, authorizer, serviceTimeout)

	// Controllers and router
	router := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Logger:        logger,
		Verifier:      verifier,
		Profiles:      profileRepo,
		Auth:          controllers.NewAuthController(logger, userSvc),
		Users:         controllers.NewUserController(logger, userSvc),
		EventRequests: controllers.NewEventRequestController(logger, requestSvc),
		Events:        controllers.NewEventController(logger, eventSvc),
		Clubs:         controllers.NewClubController(logger, clubSvc),
	})

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, router))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
