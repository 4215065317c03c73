package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"distribution/cmd"
	"distribution/internal/adapters/out/kafka"
	"distribution/internal/adapters/out/postgres"
	"distribution/internal/core/ports"

	"github.com/labstack/gommon/log"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.LogLevel}))
	slog.SetDefault(logger)

	gormLog := postgres.NewLogger(slog.NewLogLogger(logger.Handler(), slog.LevelWarn), gormlogger.Warn)
	gormDB, err := postgres.Open(config.DBDriver, config.DSN(), gormLog)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	var notifier ports.Notifier
	if brokers := config.KafkaBrokers(); len(brokers) > 0 {
		kafkaNotifier, err := kafka.NewNotifier(brokers, config.KafkaCourierTopic, config.KafkaOrderChangedTopic, logger)
		if err != nil {
			log.Fatalf("Error creating kafka notifier: %v", err)
		}
		defer func() {
			if err := kafkaNotifier.Close(); err != nil {
				logger.Error("close kafka notifier", "error", err)
			}
		}()
		notifier = kafkaNotifier
	} else {
		logger.Warn("KAFKA_HOST is empty, notifications are disabled")
	}

	app := cmd.NewCompositionRoot(config, gormDB, nil, notifier, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = startWebServer(ctx, app, config.HTTPPort); err != nil {
		logger.Error("web server stopped", "error", err)
	}
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string) error {
	e, err := app.CreateRouter()
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
