package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	filestore_adapter "github.com/FloodCustomApp/greyrock-listings/internal/adapters/filestore"
	"github.com/FloodCustomApp/greyrock-listings/internal/adapters/geocoder"
	"github.com/FloodCustomApp/greyrock-listings/internal/adapters/greyrockfetcher"
	logger_adapter "github.com/FloodCustomApp/greyrock-listings/internal/adapters/logger"
	postgres_adapter "github.com/FloodCustomApp/greyrock-listings/internal/adapters/postgres"
	rabbitmq_adapter "github.com/FloodCustomApp/greyrock-listings/internal/adapters/rabbitmq"
	"github.com/FloodCustomApp/greyrock-listings/internal/configs"
	"github.com/FloodCustomApp/greyrock-listings/internal/constants"
	"github.com/FloodCustomApp/greyrock-listings/internal/contextkeys"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/port"
	usecases_port "github.com/FloodCustomApp/greyrock-listings/internal/core/port/usecases"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/usecase"
	"github.com/FloodCustomApp/greyrock-listings/pkg/fluentlogger"
	"github.com/FloodCustomApp/greyrock-listings/pkg/postgres"
	"github.com/FloodCustomApp/greyrock-listings/pkg/rabbitmq"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App – структура приложения
type App struct {
	config        *configs.AppConfig
	dbPool        *pgxpool.Pool
	eventProducer *rabbitmq.Publisher
	fluentClient  *fluent.Fluent
	logger        port.LoggerPort

	// Use Case, который запускается самим приложением
	runPipelineUseCase usecases_port.RunPipelinePort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}
	if appConfig.Source.BaseURL == "" {
		return nil, fmt.Errorf("GREYROCK_BASE_URL environment variable is required")
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName, // Используем имя приложения как префикс
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multilogger: %w", err)
	}

	appLogger := multiLogger.WithFields(port.Fields{
		"service": appConfig.AppName,
	})
	appLogger.Info("Loggers initialized.", nil)

	// --- 2. ХРАНИЛИЩЕ СНАПШОТОВ ---
	var dbPool *pgxpool.Pool
	var snapshotStore port.SnapshotStorePort

	switch appConfig.Snapshot.Store {
	case "postgres":
		dbPool, err = postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		appLogger.Info("Successfully connected to PostgreSQL pool.", nil)

		snapshotStore, err = postgres_adapter.NewPostgresSnapshotStoreAdapter(dbPool)
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to create postgres snapshot store: %w", err)
		}
	case "file":
		snapshotStore, err = filestore_adapter.NewFileSnapshotStoreAdapter(appConfig.Snapshot.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to create file snapshot store: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown snapshot store %q, expected 'file' or 'postgres'", appConfig.Snapshot.Store)
	}

	// --- 3. УВЕДОМИТЕЛЬ ОБ ИЗМЕНЕНИЯХ ---
	var eventProducer *rabbitmq.Publisher
	var changeNotifier port.ChangeNotifierPort

	if appConfig.RabbitMQ.Enabled {
		producerCfg := rabbitmq.PublisherConfig{
			URL:                      appConfig.RabbitMQ.URL,
			ExchangeName:             constants.NotifyExchange,
			ExchangeType:             "topic",
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(appLogger),
		}
		eventProducer, err = rabbitmq.NewPublisher(producerCfg)
		if err != nil {
			if dbPool != nil {
				dbPool.Close()
			}
			return nil, fmt.Errorf("failed to create event producer: %w", err)
		}
		appLogger.Info("RabbitMQ Event Producer initialized.", nil)

		changeNotifier, err = rabbitmq_adapter.NewRabbitMQChangeNotifierAdapter(eventProducer, constants.RoutingKeySetChanged)
		if err != nil {
			eventProducer.Close()
			if dbPool != nil {
				dbPool.Close()
			}
			return nil, fmt.Errorf("failed to create change notifier: %w", err)
		}
	} else {
		changeNotifier = rabbitmq_adapter.NewNoopChangeNotifierAdapter()
	}

	// --- 4. ИСХОДЯЩИЕ АДАПТЕРЫ ИСТОЧНИКА ---
	fetcherAdapter, err := greyrockfetcher.NewGreyrockFetcherAdapter(
		appConfig.Source.BaseURL,
		time.Duration(appConfig.Source.RequestDelayMs)*time.Millisecond,
	)
	if err != nil {
		if eventProducer != nil {
			eventProducer.Close()
		}
		if dbPool != nil {
			dbPool.Close()
		}
		return nil, fmt.Errorf("failed to create greyrock fetcher: %w", err)
	}
	geocoderAdapter := geocoder.NewStaticTableGeocoder()
	appLogger.Info("All outgoing adapters initialized.", nil)

	// --- 5. ИНИЦИАЛИЗАЦИЯ USE-CASES ---
	validateUseCase := usecase.NewValidateRecordsUseCase(
		appConfig.Limits.RecordCeiling,
		appConfig.Limits.PriceCeiling,
		appConfig.Limits.AreaCeiling,
	)
	diffUseCase := usecase.NewDiffSnapshotUseCase()
	runPipelineUseCase := usecase.NewRunPipelineUseCase(
		fetcherAdapter,
		geocoderAdapter,
		snapshotStore,
		changeNotifier,
		validateUseCase,
		diffUseCase,
		appConfig.Source.Name,
		appConfig.Source.FetchDetailPages,
	)
	appLogger.Info("All use cases initialized.", nil)

	application := &App{
		config:             appConfig,
		dbPool:             dbPool,
		eventProducer:      eventProducer,
		fluentClient:       fluentClient,
		logger:             appLogger,
		runPipelineUseCase: runPipelineUseCase,
	}

	return application, nil
}

// Run выполняет один проход пайплайна и завершает работу.
// Сервис задуман как одноразовый запуск под внешним планировщиком (cron).
func (a *App) Run() error {
	appCtx, cancelApp := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancelApp()

	defer func() {
		a.logger.Info("App: Shutdown sequence initiated...", nil)
		if a.eventProducer != nil {
			if err := a.eventProducer.Close(); err != nil {
				a.logger.Error("App: Error closing event producer", err, nil)
			}
		}
		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("App: PostgreSQL pool closed.", nil)
		}
		if a.fluentClient != nil {
			a.fluentClient.Close()
		}
		a.logger.Info("Application shut down gracefully.", nil)
	}()

	a.logger.Info("Application is starting...", port.Fields{
		"source":             a.config.Source.Name,
		"fetch_detail_pages": a.config.Source.FetchDetailPages,
	})

	runCtx := contextkeys.ContextWithLogger(appCtx, a.logger)

	snapshot, err := a.runPipelineUseCase.Execute(runCtx)
	if err != nil {
		a.logger.Error("App: Pipeline run failed", err, nil)
		return err
	}

	a.logger.Info("App: Pipeline run finished successfully.", port.Fields{
		"run_id":      snapshot.RunID,
		"total_count": snapshot.Meta.TotalCount,
		"has_changes": snapshot.Meta.HasChanges,
	})
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
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
