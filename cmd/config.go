package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"distribution/internal/adapters/out/postgres"
	"distribution/internal/jobs"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort             = "8080"
	defaultAcceptTimeoutMinutes = 10
	defaultExpectedDeliveryMins = 30
	defaultOrderChangedTopic    = "order.changed"
	defaultCourierTopic         = "courier.assignments"
)

// Config is the service configuration as read by ConfigFromEnv.
type Config struct {
	HTTPPort   string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SQLitePath string

	JWTSecret string

	KafkaHost              string
	KafkaOrderChangedTopic string
	KafkaCourierTopic      string

	ExpirySchedule                 string
	DefaultAcceptTimeoutMinutes    int
	DefaultExpectedDeliveryMinutes int

	LogLevel slog.Level
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds a Config from getenv, applying defaults for unset
// values.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:               env("HTTP_PORT", defaultHTTPPort),
		DBDriver:               env("DB_DRIVER", postgres.DriverPostgres),
		DBHost:                 env("DB_HOST", "localhost"),
		DBPort:                 env("DB_PORT", "5432"),
		DBUser:                 env("DB_USER", ""),
		DBPassword:             env("DB_PASSWORD", ""),
		DBName:                 env("DB_NAME", "distribution"),
		DBSslMode:              env("DB_SSLMODE", "disable"),
		SQLitePath:             env("SQLITE_PATH", "distribution.db"),
		JWTSecret:              env("JWT_SECRET", ""),
		KafkaHost:              env("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: env("KAFKA_ORDER_CHANGED_TOPIC", defaultOrderChangedTopic),
		KafkaCourierTopic:      env("KAFKA_COURIER_TOPIC", defaultCourierTopic),
		ExpirySchedule:         env("EXPIRY_SCHEDULE", jobs.DefaultExpirySchedule),

		DefaultExpectedDeliveryMinutes: defaultExpectedDeliveryMins,
	}

	var errList []error

	timeout, err := strconv.Atoi(env("DEFAULT_ACCEPT_TIMEOUT_MINUTES", strconv.Itoa(defaultAcceptTimeoutMinutes)))
	switch {
	case err != nil:
		errList = append(errList, fmt.Errorf("DEFAULT_ACCEPT_TIMEOUT_MINUTES: %w", err))
	case timeout <= 0:
		errList = append(errList, fmt.Errorf("DEFAULT_ACCEPT_TIMEOUT_MINUTES must be positive, got %d", timeout))
	}
	cfg.DefaultAcceptTimeoutMinutes = timeout

	if err = cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		errList = append(errList, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	switch cfg.DBDriver {
	case postgres.DriverPostgres, postgres.DriverSQLite:
	default:
		errList = append(errList, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.DBDriver))
	}

	if err = errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == postgres.DriverSQLite {
		return c.SQLitePath
	}
	return postgres.PostgresDSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas. Empty means notifications are off.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
