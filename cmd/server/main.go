package main

import (
	"net/http"

	"storefront-payments/internal/config"
	"storefront-payments/internal/credential"
	"storefront-payments/internal/db"
	"storefront-payments/internal/logger"
	"storefront-payments/internal/notification"
	"storefront-payments/internal/signature"
	"storefront-payments/internal/transaction"
	"storefront-payments/internal/webhook"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	credRepo := credential.NewRepository(database)
	credSvc := credential.NewService(credRepo)

	txRepo := transaction.NewRepository(database)
	engine := signature.NewEngine(nil)

	processor := notification.NewProcessor(txRepo, credSvc, engine, nil)

	mux := http.NewServeMux()
	webhook.NewHandler(processor, cfg.StatusPageURL).Register(mux)

	handler := logger.RequestIDMiddleware(logger.LoggingMiddleware(mux))

	logger.L().Info("payment server running", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, handler); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
