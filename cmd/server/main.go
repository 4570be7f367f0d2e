package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopify-bulk-editor/internal/adapters/shopify"
	"shopify-bulk-editor/internal/adapters/shopifyrest"
	"shopify-bulk-editor/internal/app/usecases"
	"shopify-bulk-editor/internal/config"
	"shopify-bulk-editor/internal/domain/model"
	"shopify-bulk-editor/internal/infra/mysql"
	"shopify-bulk-editor/internal/logging"
	"shopify-bulk-editor/internal/transport/httpapi"
)

func main() {
	logger, err := logging.NewLogger(os.Getenv("APP_ENV") != "production")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	gqlClient := shopify.NewClient(cfg.Shopify, nil, logger)
	restClient := shopifyrest.NewClient(cfg.Shopify, logger)

	updater := usecases.NewBulkUpdater(gqlClient, logger, cfg.Batch.MaxConcurrent)
	search := usecases.NewProductSearch(gqlClient, logger)
	buildStrategy := func(req model.EditRequest) (usecases.Strategy, error) {
		return usecases.BuildStrategy(req, gqlClient, restClient)
	}

	var store *mysql.BatchStore
	if cfg.Mysql.Enabled() {
		db, err := mysql.New(cfg.Mysql)
		if err != nil {
			logger.Fatal("mysql connect failed", zap.Error(err))
		}
		defer db.Close()
		store, err = mysql.NewBatchStore(db)
		if err != nil {
			logger.Fatal("mysql batch store init failed", zap.Error(err))
		}
	} else {
		logger.Info("mysql not configured, batch history disabled")
	}

	notifier := logging.NewTelegram(cfg.TelegramBot, logger)

	handler := httpapi.NewHandler(updater, search, buildStrategy, store, notifier, logger)

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	httpapi.RegisterRoutes(router, handler)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
