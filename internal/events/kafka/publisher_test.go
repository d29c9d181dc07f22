package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sheikh-saqib/accounts-ledger/internal/models/events"
)

func TestNewMessage(t *testing.T) {
	occurredAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	msg, err := newMessage("Id-123", "10 credited", occurredAt)
	require.NoError(t, err)
	assert.Equal(t, []byte("Id-123"), msg.Key)
	assert.Equal(t, occurredAt, msg.Time)

	var payload events.TransferNotification
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.NotEmpty(t, payload.ID)
	assert.Equal(t, "Id-123", payload.AccountID)
	assert.Equal(t, "10 credited", payload.Message)
	assert.True(t, payload.OccurredAt.Equal(occurredAt))
}

func TestNewPublisher_UsesTopic(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"}, "account_notifications", zaptest.NewLogger(t))
	assert.Equal(t, "account_notifications", p.writer.Topic)
	require.NoError(t, p.Close())
}

func TestNotify_UnreachableBroker(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	p := NewPublisher([]string{"127.0.0.1:1"}, "account_notifications", zap.New(core))
	// single attempt and no batching delay so the failure surfaces quickly
	p.writer.MaxAttempts = 1
	p.writer.BatchTimeout = time.Millisecond
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := p.Notify(ctx, "Id-123", "10 credited")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish notification")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "account_notifications", fields["topic"])
	assert.Equal(t, "Id-123", fields["account_id"])
}
