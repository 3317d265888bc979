package producer

import (
	"context"
	"time"

	"go-hrms/internal/messaging/kafka"

	"go.uber.org/zap"
)

const batchSize = 50

// ProcessOutboxEvents relays pending outbox rows to Kafka until ctx is done.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := ProcessPendingEvents(ctx, repo, writer, log); err != nil {
				log.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

// ProcessPendingEvents publishes one claimed batch. Failed rows are
// rescheduled by MarkFailed with a growing delay.
func ProcessPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) error {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	results := publishBatch(ctx, writer, events)

	sent := 0
	for i, event := range events {
		fields := []zap.Field{
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		}

		if pubErr := results[i]; pubErr != nil {
			logger.Error("publish outbox event failed", append(fields, zap.Int("retry", event.RetryCount), zap.Error(pubErr))...)
			if err := repo.MarkFailed(ctx, event.ID, pubErr.Error()); err != nil {
				logger.Error("mark outbox failed errored", append(fields, zap.Error(err))...)
			}
			continue
		}

		// The row is still claimed, so a failure here means one duplicate
		// publish after the lease expires. Consumers are idempotent.
		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark outbox sent failed", append(fields, zap.Error(err))...)
			continue
		}
		sent++
	}

	logger.Info("outbox batch relayed", zap.Int("claimed", len(events)), zap.Int("sent", sent))
	return nil
}
