package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"lazymint/internal/config"
	"lazymint/internal/handlers"
	"lazymint/internal/repositories/mongodb"
	"lazymint/internal/services"
	"lazymint/pkg/auth"
	"lazymint/pkg/cache"
	"lazymint/pkg/database"
	"lazymint/pkg/logger"
	"lazymint/pkg/mailer"
	"lazymint/pkg/storage"
	"lazymint/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Cache is optional; repositories take a nil cache and skip it.
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisCache.Close()
	}

	storageProvider, err := newStorageProvider(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	firebaseAuth, err := auth.NewFirebaseAuth(cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("failed to initialize firebase auth: %v", err)
	}

	smtpMailer := mailer.NewSMTPMailer(&mailer.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromEmail: cfg.SMTP.FromEmail,
		FromName:  cfg.SMTP.FromName,
	})

	// Repositories
	var repoCache mongodb.CacheService
	if redisCache != nil {
		repoCache = redisCache
	}
	campaignRepo := mongodb.NewCampaignRepository(db.Database, repoCache)
	claimRepo := mongodb.NewClaimRepository(db.Database)
	userRepo := mongodb.NewUserRepository(db.Database, repoCache)

	// Services
	var subscriptionService services.SubscriptionService
	if cfg.Stripe.Enabled {
		subscriptionService = services.NewSubscriptionService(userRepo, cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, log)
	}

	renderer := services.NewTicketRenderer(cfg.App.FrontendURL)

	claimService := services.NewClaimService(
		campaignRepo,
		claimRepo,
		db,
		renderer,
		storageProvider,
		smtpMailer,
		&services.ClaimServiceConfig{
			TokenTTL:         cfg.Claims.TokenTTL,
			TicketRetryAfter: cfg.Claims.TicketRetryAfter,
			FrontendURL:      cfg.App.FrontendURL,
			VerificationPath: cfg.Claims.VerificationPath,
		},
		log,
	)
	campaignService := services.NewCampaignService(campaignRepo, userRepo, db, log)
	assetService := services.NewAssetService(campaignRepo, storageProvider, cfg.App.FrontendURL, log)
	userService := services.NewUserService(userRepo, firebaseAuth, subscriptionService, log)

	// Handlers and routes
	var cachePinger handlers.Pinger
	if redisCache != nil {
		cachePinger = redisCache
	}

	routeHandlers := &routes.Handlers{
		Campaign: handlers.NewCampaignHandler(campaignService),
		Claim:    handlers.NewClaimHandler(claimService),
		Asset:    handlers.NewAssetHandler(assetService),
		User:     handlers.NewUserHandler(userService),
		Health:   handlers.NewHealthHandler(db, cachePinger),
	}
	if subscriptionService != nil {
		routeHandlers.Webhook = handlers.NewWebhookHandler(subscriptionService)
	}

	router := routes.Setup(firebaseAuth, routeHandlers, log, cfg.App.AllowedOrigins)

	// Background sweeper
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	sweeper := services.NewSweeper(claimService, cfg.Claims.SweepInterval, log)
	go sweeper.Start(sweeperCtx)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		log.Infof("server listening on port %d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("forced shutdown: %v", err)
	}
}

func newStorageProvider(cfg *config.StorageConfig) (storage.Provider, error) {
	switch cfg.Provider {
	case "s3":
		return storage.NewAWSS3Storage(cfg.Region, cfg.Bucket, cfg.CDNDomain)
	case "gcs":
		return storage.NewGCPStorage(cfg.Bucket, cfg.CredentialsFile, cfg.CDNDomain)
	default:
		return storage.NewLocalStorage(cfg.LocalPath, cfg.LocalBaseURL)
	}
}
