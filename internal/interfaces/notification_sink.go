package interfaces

import "context"

type NotificationSink interface {
	Notify(ctx context.Context, accountID string, message string) error
}
