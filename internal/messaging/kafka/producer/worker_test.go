package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-hrms/internal/messaging/kafka"
	kafkaMock "go-hrms/internal/messaging/kafka/mock"
	"go-hrms/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// fakeWriter fails messages for failTopic individually, the way kafka-go
// reports partial batch failure, or the whole call when down is set.
type fakeWriter struct {
	failTopic string
	down      bool
	written   []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.down {
		return errors.New("dial tcp: connection refused")
	}
	errs := make(kafkago.WriteErrors, len(msgs))
	failed := false
	for i, m := range msgs {
		if m.Topic == w.failTopic {
			errs[i] = errors.New("broker unavailable")
			failed = true
			continue
		}
		w.written = append(w.written, m)
	}
	if failed {
		return errs
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "o-1", RequestID: "rid-1", AggregateID: "emp-1", EventType: "employee_created", Topic: "hr.employee.lifecycle.v1", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkSent(ctx, "o-1").Return(nil)

		err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Len(t, writer.written, 1)
		assert.Equal(t, []byte("emp-1"), writer.written[0].Key)
		assert.Contains(t, writer.written[0].Headers, kafkago.Header{Key: "request_id", Value: []byte("rid-1")})
		assert.Contains(t, writer.written[0].Headers, kafkago.Header{Key: "outbox_id", Value: []byte("o-1")})
	})

	t.Run("publish failure marks failed and continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failTopic: "broken"}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "o-1", Topic: "broken", Payload: []byte(`{}`)},
			{ID: "o-2", Topic: "hr.payroll.generated.v1", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "o-1", "broker unavailable").Return(nil)
		repo.EXPECT().MarkSent(ctx, "o-2").Return(nil)

		err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Len(t, writer.written, 1)
	})

	t.Run("whole batch failure marks every row failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "o-1", Topic: "hr.employee.lifecycle.v1"},
			{ID: "o-2", Topic: "hr.payroll.generated.v1"},
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "o-1", "dial tcp: connection refused").Return(nil)
		repo.EXPECT().MarkFailed(ctx, "o-2", "dial tcp: connection refused").Return(nil)

		err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{down: true}, zap.NewNop())
		assert.NoError(t, err)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())
		assert.Error(t, err)
	})
}
