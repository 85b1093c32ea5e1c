// Package app assembles the process: configuration, logger, external
// clients, repositories, services, and the HTTP server.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Taraansh/e-commerce/internal/adapter/email"
	mongoadapter "github.com/Taraansh/e-commerce/internal/adapter/mongo"
	"github.com/Taraansh/e-commerce/internal/adapter/payment"
	redisadapter "github.com/Taraansh/e-commerce/internal/adapter/redis"
	"github.com/Taraansh/e-commerce/internal/adapter/storage/s3"
	"github.com/Taraansh/e-commerce/internal/app/config"
	"github.com/Taraansh/e-commerce/internal/platform/auth"
	"github.com/Taraansh/e-commerce/internal/platform/logger"
	httpport "github.com/Taraansh/e-commerce/internal/port/http"
	"github.com/Taraansh/e-commerce/internal/service"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	cfg         *config.Config
	log         logger.Logger
	server      *httpport.Server
	mongoClient *mongo.Client
	redisClient *redis.Client
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	log := logger.NewZapLogger(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	log.Infof("configuration loaded: env=%s, http port=%s", cfg.Env, cfg.HTTPServer.Port)

	mongoClient, err := mongoadapter.NewClient(ctx, cfg.MongoDB)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mongodb client: %w", err)
	}
	log.Info("mongodb client initialized")

	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis client: %w", err)
	}
	log.Info("redis client initialized")

	sender, err := email.NewSMTPSender(cfg.SMTP, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize smtp sender: %w", err)
	}
	mailer := email.NewMailer(sender)

	mediaStorage, err := s3.NewStorage(cfg.MinIO, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	log.Info("object storage initialized")

	paymentGateway := payment.NewStripeGateway(cfg.Stripe)

	userRepo := mongoadapter.NewUserRepository(mongoClient, cfg.MongoDB, log)
	productRepo := mongoadapter.NewProductRepository(mongoClient, cfg.MongoDB)
	licenseRepo := mongoadapter.NewLicenseRepository(mongoClient, cfg.MongoDB)
	orderRepo := mongoadapter.NewOrderRepository(mongoClient, cfg.MongoDB)
	tokenCache := redisadapter.NewTokenCache(redisClient)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	userService := service.NewUserService(userRepo, tokenCache, mailer, tokenManager, service.UserServiceConfig{
		AdminSecretToken: cfg.Auth.AdminSecretToken,
		LoginLink:        cfg.Auth.LoginLink,
		TokenTTL:         cfg.Auth.TokenTTL,
	}, log)
	productService := service.NewProductService(productRepo, licenseRepo, orderRepo, paymentGateway, mediaStorage, log)
	orderService := service.NewOrderService(orderRepo, productRepo, licenseRepo, userRepo, paymentGateway, mailer, cfg.Auth.OrderLink, log)

	server := httpport.NewServer(cfg.HTTPServer, httpport.Deps{
		Users:    userService,
		Products: productService,
		Orders:   orderService,
		Verifier: tokenManager,
		Log:      log,
	})

	return &App{
		cfg:         cfg,
		log:         log,
		server:      server,
		mongoClient: mongoClient,
		redisClient: redisClient,
	}, nil
}

// Run starts the HTTP server and blocks until a shutdown signal arrives, then
// drains in-flight requests and closes external connections.
func (a *App) Run() {
	go func() {
		if err := a.server.Start(); err != nil && err != http.ErrServerClosed {
			a.log.Fatalf("failed to start http server: %v", err)
		}
	}()
	a.log.Info("http server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.log.Infof("received shutdown signal: %v", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Errorf("error during http server shutdown: %v", err)
	} else {
		a.log.Info("http server stopped")
	}

	if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
		a.log.Errorf("error disconnecting from mongodb: %v", err)
	}
	if err := a.redisClient.Close(); err != nil {
		a.log.Errorf("error closing redis client: %v", err)
	}
	a.log.Info("application stopped")
}
