package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultHTTPPort         = "8080"
	defaultTimezone         = "Asia/Kolkata"
	defaultRabbitMQExchange = "order_events"
	defaultRelaySchedule    = "* * * * * *"
	defaultSQLitePath       = "cafe.db"
	defaultEventBuffer      = 256
)

type Config struct {
	HTTPPort            string
	DBDriver            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	DBAutoMigrate       bool
	SQLitePath          string
	BusinessTimezone    string
	Location            *time.Location
	RabbitMQURL         string
	RabbitMQExchange    string
	OutboxRelaySchedule string
	EventBufferSize     int
	LogLevel            string
}

// LoadConfig reads .env when present and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Config{
		HTTPPort:            getEnv("HTTP_PORT", defaultHTTPPort),
		DBDriver:            strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBSslMode:           getEnv("DB_SSLMODE", "disable"),
		SQLitePath:          getEnv("SQLITE_PATH", defaultSQLitePath),
		BusinessTimezone:    getEnv("BUSINESS_TIMEZONE", defaultTimezone),
		RabbitMQURL:         os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange:    getEnv("RABBITMQ_EXCHANGE", defaultRabbitMQExchange),
		OutboxRelaySchedule: getEnv("OUTBOX_RELAY_SCHEDULE", defaultRelaySchedule),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}

	var errs []error

	autoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		errs = append(errs, fmt.Errorf("DB_AUTO_MIGRATE: %w", err))
	}
	cfg.DBAutoMigrate = autoMigrate

	cfg.EventBufferSize, err = strconv.Atoi(getEnv("EVENT_BUFFER_SIZE", strconv.Itoa(defaultEventBuffer)))
	if err != nil {
		errs = append(errs, fmt.Errorf("EVENT_BUFFER_SIZE: %w", err))
	}

	cfg.Location, err = time.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		errs = append(errs, fmt.Errorf("BUSINESS_TIMEZONE: %w", err))
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBName == "" {
			errs = append(errs, errors.New("DB_NAME is required for the postgres driver"))
		}
	case DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.DBDriver))
	}

	if err = errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// PostgresDSN renders the connection string for gorm's postgres driver.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}
