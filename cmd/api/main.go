package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"demo-bank/internal/config"
	"demo-bank/internal/db"
	apihttp "demo-bank/internal/http"
	"demo-bank/internal/repository"
	"demo-bank/internal/service"
	"demo-bank/internal/taxfiling"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	conn, err := db.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("db open", zap.Error(err))
	}
	defer conn.Close()

	userRepo := repository.NewSQLiteUserRepository(conn)
	profileRepo := repository.NewSQLitePersonalInfoRepository(conn)
	taxReturnRepo := repository.NewSQLiteTaxReturnRepository(conn)

	if cfg.SessionSecret == "" {
		logger.Warn("session secret not configured")
	}
	codec := service.NewSessionCodec(cfg.SessionSecret, service.SessionTTL)

	taxClient := taxfiling.NewClient(
		cfg.TaxAPIHost,
		cfg.TaxClientID,
		cfg.TaxClientSecret,
		time.Duration(cfg.TaxTimeoutSecs)*time.Second,
		logger,
	)
	if !taxClient.Configured() {
		logger.Warn("tax provider not configured")
	}

	userSvc := service.NewUserService(logger, userRepo)
	profileSvc := service.NewProfileService(logger, userRepo, profileRepo)
	taxSvc := service.NewTaxService(logger, userRepo, profileRepo, taxReturnRepo, taxClient)

	authHandler := apihttp.NewAuthHandler(logger, userSvc, codec, cfg.IsProduction())
	accountHandler := apihttp.NewAccountHandler(logger, profileSvc)
	taxHandler := apihttp.NewTaxHandler(logger, taxSvc, taxClient)
	webhookHandler := apihttp.NewWebhookHandler(logger, cfg.TaxClientSecret, taxSvc)

	router := apihttp.NewRouter(logger, codec, cfg.IsProduction(), authHandler, accountHandler, taxHandler, webhookHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
