package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/accounts-ledger/internal/interfaces"
	"github.com/sheikh-saqib/accounts-ledger/internal/models/events"
)

// Publisher delivers account notifications as Kafka messages keyed by account
// id, so all notifications for one account land on the same partition.
type Publisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
		logger: logger,
	}
}

func (p *Publisher) Notify(ctx context.Context, accountID string, message string) error {
	msg, err := newMessage(accountID, message, time.Now().UTC())
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish notification to Kafka",
			zap.String("topic", p.writer.Topic),
			zap.String("account_id", accountID),
			zap.Error(err))
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	p.logger.Debug("Published notification", zap.String("topic", p.writer.Topic), zap.String("account_id", accountID))
	return nil
}

func (p *Publisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}
	return nil
}

func newMessage(accountID, message string, occurredAt time.Time) (kafka.Message, error) {
	data, err := json.Marshal(events.TransferNotification{
		ID:         uuid.New().String(),
		AccountID:  accountID,
		Message:    message,
		OccurredAt: occurredAt,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal notification: %w", err)
	}

	return kafka.Message{
		Key:   []byte(accountID),
		Value: data,
		Time:  occurredAt,
	}, nil
}

var _ interfaces.NotificationSink = (*Publisher)(nil)
