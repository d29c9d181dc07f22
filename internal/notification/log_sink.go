package notification

import (
	"context"

	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/accounts-ledger/internal/interfaces"
)

// LogSink delivers notifications by writing them to the log. It is the
// default sink when no message bus is configured.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(_ context.Context, accountID string, message string) error {
	s.logger.Info("Account notification",
		zap.String("account_id", accountID),
		zap.String("message", message))
	return nil
}

var _ interfaces.NotificationSink = (*LogSink)(nil)
