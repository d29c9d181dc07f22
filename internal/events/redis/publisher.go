package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/accounts-ledger/internal/interfaces"
	"github.com/sheikh-saqib/accounts-ledger/internal/models/events"
)

// Publisher appends account notifications to a Redis stream.
type Publisher struct {
	client *goredis.Client
	stream string
	logger *zap.Logger
}

func NewPublisher(client *goredis.Client, stream string, logger *zap.Logger) *Publisher {
	return &Publisher{client: client, stream: stream, logger: logger}
}

func (p *Publisher) Notify(ctx context.Context, accountID string, message string) error {
	payload, err := json.Marshal(events.TransferNotification{
		ID:         uuid.New().String(),
		AccountID:  accountID,
		Message:    message,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	args := &goredis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"account_id":   accountID,
			"notification": payload,
		},
	}

	id, err := p.client.XAdd(ctx, args).Result()
	if err != nil {
		p.logger.Error("Failed to publish notification to Redis stream",
			zap.String("stream", p.stream),
			zap.String("account_id", accountID),
			zap.Error(err))
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	p.logger.Debug("Published notification",
		zap.String("stream", p.stream),
		zap.String("account_id", accountID),
		zap.String("entry_id", id))
	return nil
}

var _ interfaces.NotificationSink = (*Publisher)(nil)
