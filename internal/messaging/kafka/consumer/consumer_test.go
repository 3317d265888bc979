package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSeeder struct {
	calls []string
	err   error
}

func (f *fakeSeeder) InitializeBalances(_ context.Context, employeeID string) (int, error) {
	f.calls = append(f.calls, employeeID)
	if f.err != nil {
		return 0, f.err
	}
	return 3, nil
}

func message(t *testing.T, v any) kafkago.Message {
	t.Helper()
	b, err := json.Marshal(v)
	assert.NoError(t, err)
	return kafkago.Message{Topic: events.EmployeeLifecycleTopic, Value: b}
}

func TestHandleEmployeeLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("employee created seeds balances", func(t *testing.T) {
		seeder := &fakeSeeder{}
		msg := message(t, events.EmployeeCreatedEvent{EventType: events.EventEmployeeCreated, EmployeeID: "emp-1"})

		err := consumer.HandleEmployeeLifecycle(ctx, msg, seeder, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, []string{"emp-1"}, seeder.calls)
	})

	t.Run("other event types are ignored", func(t *testing.T) {
		seeder := &fakeSeeder{}
		msg := message(t, events.EmployeeCreatedEvent{EventType: "employee_deactivated", EmployeeID: "emp-1"})

		err := consumer.HandleEmployeeLifecycle(ctx, msg, seeder, zap.NewNop())

		assert.NoError(t, err)
		assert.Empty(t, seeder.calls)
	})

	t.Run("garbage payload is undecodable", func(t *testing.T) {
		err := consumer.HandleEmployeeLifecycle(ctx, kafkago.Message{Value: []byte("{")}, &fakeSeeder{}, zap.NewNop())
		assert.ErrorIs(t, err, consumer.ErrUndecodable)
	})

	t.Run("seeder error is returned for redelivery", func(t *testing.T) {
		seeder := &fakeSeeder{err: errors.New("db down")}
		msg := message(t, events.EmployeeCreatedEvent{EventType: events.EventEmployeeCreated, EmployeeID: "emp-2"})

		err := consumer.HandleEmployeeLifecycle(ctx, msg, seeder, zap.NewNop())
		assert.Error(t, err)
		assert.NotErrorIs(t, err, consumer.ErrUndecodable)
	})
}
