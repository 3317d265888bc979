package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hrms/internal/config"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/messaging/kafka/producer"
	"go-hrms/internal/shared/connection"

	"go.uber.org/zap"
)

const outboxPollInterval = 3 * time.Second

// RunWorker relays outbox_events to Kafka until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gormDB, sqlDB, err := connectDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := Migrate(ctx, gormDB); err != nil {
		return err
	}

	kafkaWriter, err := connection.ConnectKafka(ctx, cfg.Kafka.Broker, connectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, log, outboxPollInterval)

	log.Info("worker shutting down")
	return nil
}
