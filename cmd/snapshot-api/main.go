package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	filestore_adapter "github.com/FloodCustomApp/greyrock-listings/internal/adapters/filestore"
	logger_adapter "github.com/FloodCustomApp/greyrock-listings/internal/adapters/logger"
	postgres_adapter "github.com/FloodCustomApp/greyrock-listings/internal/adapters/postgres"
	"github.com/FloodCustomApp/greyrock-listings/internal/adapters/rest"
	"github.com/FloodCustomApp/greyrock-listings/internal/configs"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/port"
	"github.com/FloodCustomApp/greyrock-listings/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// snapshot-api - сервис только для чтения: отдает последний валидный
// снапшот поверх того же хранилища, в которое пишет парсер.
func main() {
	if err := run(); err != nil {
		log.Fatalf("snapshot-api failed: %v", err)
	}
}

func run() error {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading application configuration: %w", err)
	}

	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	}).WithFields(port.Fields{"service": "snapshot-api"})

	var dbPool *pgxpool.Pool
	var snapshotStore port.SnapshotStorePort

	switch appConfig.Snapshot.Store {
	case "postgres":
		dbPool, err = postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
		if err != nil {
			return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		defer dbPool.Close()

		snapshotStore, err = postgres_adapter.NewPostgresSnapshotStoreAdapter(dbPool)
		if err != nil {
			return fmt.Errorf("failed to create postgres snapshot store: %w", err)
		}
	case "file":
		snapshotStore, err = filestore_adapter.NewFileSnapshotStoreAdapter(appConfig.Snapshot.Path)
		if err != nil {
			return fmt.Errorf("failed to create file snapshot store: %w", err)
		}
	default:
		return fmt.Errorf("unknown snapshot store %q, expected 'file' or 'postgres'", appConfig.Snapshot.Store)
	}

	handlers := rest.NewSnapshotHandler(snapshotStore)
	apiServer := rest.NewServer(appConfig.HTTPPort, handlers, logger)

	go func() {
		logger.Info("Starting HTTP server", port.Fields{"port": appConfig.HTTPPort})
		if err := apiServer.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Ожидание сигнала на завершение
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	receivedSignal := <-quit
	logger.Info("Received signal, shutting down", port.Fields{"signal": receivedSignal.String()})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("error stopping api server: %w", err)
	}

	logger.Info("snapshot-api shut down gracefully.", nil)
	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
