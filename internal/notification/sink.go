package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/accounts-ledger/internal/config"
	"github.com/sheikh-saqib/accounts-ledger/internal/events/kafka"
	redis_events "github.com/sheikh-saqib/accounts-ledger/internal/events/redis"
	interfaces "github.com/sheikh-saqib/accounts-ledger/internal/interfaces"
	"github.com/sheikh-saqib/accounts-ledger/internal/storage/postgres"
)

// NewSink builds the sink selected by cfg.NotificationSink together with a
// function releasing its resources.
func NewSink(cfg *config.Config, logger *zap.Logger) (interfaces.NotificationSink, func() error, error) {
	switch cfg.NotificationSink {
	case config.SinkLog:
		return NewLogSink(logger.With(zap.String("component", "LogSink"))), func() error { return nil }, nil

	case config.SinkKafka:
		publisher := kafka.NewPublisher(
			cfg.GetKafkaBrokers(),
			cfg.KafkaNotificationTopic,
			logger.With(zap.String("component", "KafkaPublisher")),
		)
		return publisher, publisher.Close, nil

	case config.SinkRedis:
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), cfg.NotifyTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		publisher := redis_events.NewPublisher(
			client,
			cfg.RedisNotificationStream,
			logger.With(zap.String("component", "RedisPublisher")),
		)
		return publisher, client.Close, nil

	case config.SinkPostgres:
		db, err := sql.Open("postgres", cfg.GetDBConnectionString())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := runMigrations(cfg, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewOutboxStore(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown notification sink %q", cfg.NotificationSink)
	}
}

func runMigrations(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Running database migrations...")
	m, err := migrate.New(cfg.MigrationsPath, cfg.GetDBMigrationConnectionString())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully (or no new migrations).")
	return nil
}
