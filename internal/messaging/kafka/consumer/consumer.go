package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-hrms/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// LeaveBalanceSeeder creates the opening leave balances of a new employee.
type LeaveBalanceSeeder interface {
	InitializeBalances(ctx context.Context, employeeID string) (int, error)
}

// ErrUndecodable marks a message that can never be processed and should be skipped.
var ErrUndecodable = errors.New("undecodable message")

func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	seeder LeaveBalanceSeeder,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		if err := HandleEmployeeLifecycle(ctx, msg, seeder, log); err != nil && !errors.Is(err, ErrUndecodable) {
			// leave uncommitted so the group redelivers it
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
		}
	}
}

// HandleEmployeeLifecycle processes one lifecycle message. Seeding is
// idempotent, so a redelivered employee_created is harmless.
func HandleEmployeeLifecycle(
	ctx context.Context,
	msg kafkago.Message,
	seeder LeaveBalanceSeeder,
	log *zap.Logger,
) error {
	var event events.EmployeeCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode employee lifecycle event failed", zap.Error(err))
		return ErrUndecodable
	}

	if event.EventType != events.EventEmployeeCreated {
		log.Debug("ignoring employee lifecycle event", zap.String("event_type", event.EventType))
		return nil
	}

	created, err := seeder.InitializeBalances(ctx, event.EmployeeID)
	if err != nil {
		log.Error("seed leave balances failed",
			zap.String("request_id", event.RequestID),
			zap.String("employee_id", event.EmployeeID),
			zap.Error(err),
		)
		return err
	}

	log.Info("leave balances seeded from employee_created event",
		zap.String("request_id", event.RequestID),
		zap.String("employee_id", event.EmployeeID),
		zap.Int("created", created),
	)
	return nil
}
