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
	"github.com/sirupsen/logrus"

	"github.com/nurselink/emergency_dispatch/internal/config"
	v1 "github.com/nurselink/emergency_dispatch/internal/handler/http/v1"
	"github.com/nurselink/emergency_dispatch/internal/registry"
	"github.com/nurselink/emergency_dispatch/internal/service"
	"github.com/nurselink/emergency_dispatch/internal/store"
	"github.com/nurselink/emergency_dispatch/internal/ws"
	"github.com/nurselink/emergency_dispatch/pkg/logger"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Состояние живет только в памяти процесса: реестр сессий и хранилище
	// инцидентов теряются при рестарте, долговременного хранения нет.
	connRegistry := registry.New(log)
	emergencyStore := store.NewEmergencyStore()

	// Websocket-хаб: транспорт push-уведомлений
	hub := ws.NewHub(log, cfg.WSWriteTimeout)
	wsHandler := ws.NewHandler(hub, connRegistry, log)

	// Инициализация сервисов
	emergencyService := service.NewDispatchService(emergencyStore, connRegistry, hub, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(emergencyService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	handler.RegisterRoutes(router)
	router.GET("/ws", wsHandler.Serve)

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
