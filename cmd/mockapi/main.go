package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/common/logger"
	"storefront/config"
	"storefront/mockapi"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer zap.L().Sync()

	store := mockapi.NewStore()
	store.Seed()

	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestLogger())
	mockapi.RegisterRoutes(router, store)

	srv := &http.Server{
		Addr:    cfg.MockAPIAddr,
		Handler: router,
	}

	go func() {
		zap.L().Info("Mock catalog API starting", zap.String("addr", cfg.MockAPIAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down mock catalog API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}
	zap.L().Info("Mock catalog API stopped gracefully")
}
