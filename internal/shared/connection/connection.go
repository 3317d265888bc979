package connection

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RetryDelay is the pause between connection attempts.
var RetryDelay = 5 * time.Second

// withRetry calls dial up to attempts times, stopping early when ctx ends.
func withRetry[T any](ctx context.Context, log *zap.Logger, attempts int, dial func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 1; i <= attempts; i++ {
		v, err := dial(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		log.Warn("connect attempt failed", zap.Int("attempt", i), zap.Int("max", attempts), zap.Error(err))

		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(RetryDelay):
		}
	}

	return zero, fmt.Errorf("gave up after %d attempts: %w", attempts, lastErr)
}

// ConnectPostgres opens a pooled gorm handle and pings it.
func ConnectPostgres(ctx context.Context, dsn string, attempts int) (*gorm.DB, error) {
	log := zap.L().Named("connection.postgres")

	db, err := withRetry(ctx, log, attempts, func(ctx context.Context) (*gorm.DB, error) {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(pingCtx); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}

		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
		return db, nil
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	log.Info("connected to database")
	return db, nil
}

func ConnectRedis(ctx context.Context, addr string, attempts int) (*redis.Client, error) {
	log := zap.L().Named("connection.redis")
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	_, err := withRetry(ctx, log, attempts, func(ctx context.Context) (struct{}, error) {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		return struct{}{}, rdb.Ping(pingCtx).Err()
	})
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}

	log.Info("connected to redis", zap.String("addr", addr))
	return rdb, nil
}

// ConnectKafka waits until the broker reports a controller, then returns a
// writer that routes by message topic and key hash.
func ConnectKafka(ctx context.Context, broker string, attempts int) (*kafkago.Writer, error) {
	log := zap.L().Named("connection.kafka")

	controller, err := withRetry(ctx, log, attempts, func(ctx context.Context) (kafkago.Broker, error) {
		conn, err := (&kafkago.Dialer{Timeout: 5 * time.Second}).DialContext(ctx, "tcp", broker)
		if err != nil {
			return kafkago.Broker{}, err
		}
		defer conn.Close()
		return conn.Controller()
	})
	if err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}

	log.Info("connected to kafka",
		zap.String("broker", broker),
		zap.String("controller", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port))),
	)
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(broker),
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}, nil
}
