package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// SourceConfig - параметры сайта-источника.
type SourceConfig struct {
	// BaseURL - корень сайта, от него строятся detailUrl/actionUrl.
	BaseURL string
	// Name - дескриптор источника, попадает в снапшот.
	Name string
	// FetchDetailPages - загружать ли страницу каждого объекта отдельно
	// (режим детальных страниц) вместо разбора карточек индекса.
	FetchDetailPages bool
	// RequestDelayMs - обязательная минимальная задержка между запросами
	// к источнику. Это ограничение вежливости, распараллеливать нельзя.
	RequestDelayMs int
}

// LimitsConfig - эвристические пороги валидатора.
// Числа подобраны под один наблюдаемый источник и потому настраиваемы.
type LimitsConfig struct {
	RecordCeiling int
	PriceCeiling  float64
	AreaCeiling   float64
}

// SnapshotConfig - хранилище снапшотов.
type SnapshotConfig struct {
	Store string // "file" либо "postgres"
	Path  string // путь к JSON файлу для файлового хранилища
}

// DBconfig хранит конфигурацию для БД.
type DBconfig struct {
	URL string
}

// RabbitMQConfig хранит конфигурацию для RabbitMQ.
type RabbitMQConfig struct {
	Enabled bool
	URL     string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения.
type AppConfig struct {
	AppName      string
	Source       SourceConfig
	Limits       LimitsConfig
	Snapshot     SnapshotConfig
	Database     DBconfig
	RabbitMQ     RabbitMQConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
	HTTPPort     string
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Отсутствие .env не фатально: переменные могут прийти из окружения процесса.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: could not load .env file (path: %v): %v\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "greyrock-parser-service")

	// Обязательность проверяет парсер: snapshot-api источник не нужен.
	cfg.Source.BaseURL = os.Getenv("GREYROCK_BASE_URL")
	cfg.Source.Name = getEnvAsString("SOURCE_NAME", "greyrock")
	cfg.Source.FetchDetailPages = getEnvAsBool("FETCH_DETAIL_PAGES", false)
	cfg.Source.RequestDelayMs = getEnvAsInt("REQUEST_DELAY_MS", 2000)

	cfg.Limits.RecordCeiling = getEnvAsInt("RECORD_CEILING", 200)
	cfg.Limits.PriceCeiling = float64(getEnvAsInt("PRICE_CEILING", 1_000_000))
	cfg.Limits.AreaCeiling = float64(getEnvAsInt("AREA_CEILING", 1_000_000))

	cfg.Snapshot.Store = getEnvAsString("SNAPSHOT_STORE", "file")
	cfg.Snapshot.Path = getEnvAsString("SNAPSHOT_PATH", "data/snapshot.json")
	if cfg.Snapshot.Store == "postgres" {
		cfg.Database.URL = os.Getenv("DATABASE_URL")
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required when SNAPSHOT_STORE is postgres")
		}
	}

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
		}
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	cfg.HTTPPort = getEnvAsString("HTTP_PORT", "8080")

	return cfg, nil
}

// getEnvAsString читает переменную окружения как строку или возвращает значение по умолчанию.
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию.
// Логирует ошибку, если переменная есть, но не может быть преобразована в int.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию.
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
