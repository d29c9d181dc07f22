package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertOutbox = `INSERT INTO notification_outbox (id, account_id, message, created_at)`

func TestOutboxStore_Notify(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(insertOutbox)).
		WithArgs(sqlmock.AnyArg(), "Id-123", "10 credited", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = NewOutboxStore(db).Notify(context.Background(), "Id-123", "10 credited")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxStore_NotifyError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbErr := errors.New("connection reset")
	mock.ExpectExec(regexp.QuoteMeta(insertOutbox)).
		WithArgs(sqlmock.AnyArg(), "Id-123", "10 credited", sqlmock.AnyArg()).
		WillReturnError(dbErr)

	err = NewOutboxStore(db).Notify(context.Background(), "Id-123", "10 credited")
	require.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "Id-123")
	assert.NoError(t, mock.ExpectationsWereMet())
}
