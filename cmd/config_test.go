package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_PORT", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_SSLMODE", "DB_AUTO_MIGRATE", "SQLITE_PATH", "BUSINESS_TIMEZONE", "RABBITMQ_URL",
		"RABBITMQ_EXCHANGE", "OUTBOX_RELAY_SCHEDULE", "EVENT_BUFFER_SIZE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_NAME", "cafe")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.True(t, cfg.DBAutoMigrate)
	assert.Equal(t, "Asia/Kolkata", cfg.BusinessTimezone)
	require.NotNil(t, cfg.Location)
	assert.Equal(t, "Asia/Kolkata", cfg.Location.String())
	assert.Equal(t, "order_events", cfg.RabbitMQExchange)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Equal(t, 256, cfg.EventBufferSize)
	assert.Equal(t, "* * * * * *", cfg.OutboxRelaySchedule)
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, so unset the
	// ones the file provides.
	for _, key := range []string{"DB_DRIVER", "SQLITE_PATH", "BUSINESS_TIMEZONE", "HTTP_PORT"} {
		require.NoError(t, os.Unsetenv(key))
	}

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"DB_DRIVER=sqlite\nSQLITE_PATH=/tmp/cafe-test.db\nBUSINESS_TIMEZONE=UTC\nHTTP_PORT=9090\n"), 0o600))
	t.Cleanup(func() {
		for _, key := range []string{"DB_DRIVER", "SQLITE_PATH", "BUSINESS_TIMEZONE", "HTTP_PORT"} {
			_ = os.Unsetenv(key)
		}
	})

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/cafe-test.db", cfg.SQLitePath)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, "9090", cfg.HTTPPort)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		message string
	}{
		{"postgres without database", map[string]string{}, "DB_NAME is required"},
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql", "DB_NAME": "cafe"}, "unsupported driver"},
		{"bad timezone", map[string]string{"DB_NAME": "cafe", "BUSINESS_TIMEZONE": "Mars/Olympus"}, "BUSINESS_TIMEZONE"},
		{"bad buffer", map[string]string{"DB_NAME": "cafe", "EVENT_BUFFER_SIZE": "many"}, "EVENT_BUFFER_SIZE"},
		{"bad migrate flag", map[string]string{"DB_NAME": "cafe", "DB_AUTO_MIGRATE": "sometimes"}, "DB_AUTO_MIGRATE"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestConfig_PostgresDSN(t *testing.T) {
	cfg := Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "cafe",
		DBPassword: "secret",
		DBName:     "orders",
		DBSslMode:  "disable",
	}

	assert.Equal(t, "host=db port=5433 user=cafe password=secret dbname=orders sslmode=disable", cfg.PostgresDSN())
}

func TestOpenDatabase_SQLite(t *testing.T) {
	cfg := Config{DBDriver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "cafe.db")}

	db, err := OpenDatabase(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}
