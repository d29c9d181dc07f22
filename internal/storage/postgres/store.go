package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	interfaces "github.com/sheikh-saqib/accounts-ledger/internal/interfaces"
)

// OutboxStore records account notifications in the notification_outbox table.
// A separate relay delivers and marks them; this service only writes.
type OutboxStore struct {
	db *sql.DB
}

func NewOutboxStore(db *sql.DB) *OutboxStore {
	return &OutboxStore{
		db: db,
	}
}

func (p *OutboxStore) Notify(ctx context.Context, accountID string, message string) error {
	const query = `INSERT INTO notification_outbox (id, account_id, message, created_at)
	VALUES ($1, $2, $3, $4)`

	_, err := p.db.ExecContext(ctx, query, uuid.New().String(), accountID, message, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to store notification for account %s: %w", accountID, err)
	}
	return nil
}

var _ interfaces.NotificationSink = (*OutboxStore)(nil)
