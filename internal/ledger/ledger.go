package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/accounts-ledger/internal/interfaces"
	"github.com/sheikh-saqib/accounts-ledger/internal/metrics"
	"github.com/sheikh-saqib/accounts-ledger/internal/models"
	"github.com/sheikh-saqib/accounts-ledger/internal/storage"
)

// MinTransferAmount is the smallest amount a single transfer may move.
var MinTransferAmount = decimal.NewFromInt(1)

// Ledger owns the business rules for accounts and transfers. Balances live
// only in the store; the ledger never caches them between calls.
type Ledger struct {
	store         interfaces.AccountStore
	sink          interfaces.NotificationSink
	logger        *zap.Logger
	notifyTimeout time.Duration
}

type Option func(*Ledger)

// WithNotifyTimeout bounds the time spent delivering the notifications of a
// single transfer. Zero means no bound beyond the caller's context.
func WithNotifyTimeout(timeout time.Duration) Option {
	return func(l *Ledger) {
		l.notifyTimeout = timeout
	}
}

func NewLedger(store interfaces.AccountStore, sink interfaces.NotificationSink, logger *zap.Logger, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		sink:   sink,
		logger: logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateAccount registers a new account. Zero balances are allowed,
// negative ones are not.
func (l *Ledger) CreateAccount(account models.Account) (models.Account, error) {
	if account.ID == "" {
		return models.Account{}, fmt.Errorf("%w: account id must not be empty", ErrInvalidAccount)
	}
	if account.Balance.IsNegative() {
		return models.Account{}, fmt.Errorf("%w: initial balance must not be negative", ErrInvalidAccount)
	}

	created, err := l.store.Create(account)
	if err != nil {
		return models.Account{}, err
	}

	metrics.RecordAccountCreated()
	l.logger.Info("Account created",
		zap.String("account_id", created.ID),
		zap.String("balance", created.Balance.String()))
	return created, nil
}

func (l *Ledger) GetAccount(accountID string) (models.Account, error) {
	return l.store.Get(accountID)
}

// Transfer moves amount from one account to another.
//
// Both account locks are taken in lexicographic id order, whatever the
// direction of the transfer, so A->B and B->A running together cannot
// deadlock. The source balance is read only after both locks are held.
func (l *Ledger) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (models.TransferResult, error) {
	start := time.Now()

	result, err := l.transfer(fromID, toID, amount)
	metrics.RecordTransfer(transferOutcome(err), time.Since(start))
	if err != nil {
		l.logger.Warn("Transfer rejected",
			zap.String("from_account", fromID),
			zap.String("to_account", toID),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return models.TransferResult{}, err
	}

	l.logger.Info("Transfer completed",
		zap.String("transfer_id", result.TransferID),
		zap.String("from_account", fromID),
		zap.String("to_account", toID),
		zap.String("amount", amount.String()))

	// Locks are already released; notifications never undo the transfer
	l.notify(ctx, result)
	return result, nil
}

func (l *Ledger) transfer(fromID, toID string, amount decimal.Decimal) (models.TransferResult, error) {
	// Reject bad input before touching any lock
	if err := validateTransfer(fromID, toID, amount); err != nil {
		return models.TransferResult{}, err
	}
	// Both accounts must exist; the store's not-found error is returned as is
	if _, err := l.store.Get(fromID); err != nil {
		return models.TransferResult{}, err
	}
	if _, err := l.store.Get(toID); err != nil {
		return models.TransferResult{}, err
	}

	result := models.TransferResult{
		TransferID:  uuid.New().String(),
		FromAccount: fromID,
		ToAccount:   toID,
		Amount:      amount,
	}

	// Lock in order to avoid deadlocks: smaller id first, whatever the direction
	firstID, secondID := fromID, toID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	err := l.store.WithLock(firstID, func(first *models.Account) error {
		return l.store.WithLock(secondID, func(second *models.Account) error {
			// map the locked pair back onto source and destination
			from, to := first, second
			if from.ID != fromID {
				from, to = second, first
			}

			// balance read here, under both locks, never before locking
			if from.Balance.LessThan(amount) {
				return ErrInsufficientFunds // nothing mutated, both locks released by WithLock
			}

			from.Balance = from.Balance.Sub(amount) // debit: money leaving the sender's account
			to.Balance = to.Balance.Add(amount)     // credit: money entering the receiver's account

			result.FromBalance = from.Balance
			result.ToBalance = to.Balance
			return nil
		})
	})
	if err != nil {
		return models.TransferResult{}, err
	}
	return result, nil
}

func validateTransfer(fromID, toID string, amount decimal.Decimal) error {
	if fromID == toID {
		return &InvalidTransferError{Reason: ReasonSelfTransfer}
	}
	if !amount.IsPositive() {
		return &InvalidTransferError{Reason: ReasonNonPositiveAmount}
	}
	if amount.LessThan(MinTransferAmount) {
		return &InvalidTransferError{Reason: ReasonBelowMinimum}
	}
	return nil
}

// notify tells both account holders about a committed transfer. Failures are
// logged and counted; the transfer stays applied.
func (l *Ledger) notify(ctx context.Context, result models.TransferResult) {
	// The transfer is committed; a caller going away must not drop the notifications.
	ctx = context.WithoutCancel(ctx)
	if l.notifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.notifyTimeout)
		defer cancel()
	}

	messages := []struct {
		accountID string
		message   string
	}{
		{
			accountID: result.FromAccount,
			message: fmt.Sprintf("%s debited from your account %s and sent to account %s. Balance after debit: %s",
				result.Amount, result.FromAccount, result.ToAccount, result.FromBalance),
		},
		{
			accountID: result.ToAccount,
			message: fmt.Sprintf("%s credited to your account %s from account %s. Balance after credit: %s",
				result.Amount, result.ToAccount, result.FromAccount, result.ToBalance),
		},
	}

	for _, m := range messages {
		if err := l.sink.Notify(ctx, m.accountID, m.message); err != nil {
			notifyErr := &NotificationError{TransferID: result.TransferID, AccountID: m.accountID, Err: err}
			metrics.RecordNotificationFailure()
			l.logger.Error("Failed to dispatch transfer notification", zap.Error(notifyErr))
		}
	}
}

func transferOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeCompleted
	case errors.Is(err, ErrInvalidTransfer):
		return metrics.OutcomeInvalid
	case errors.Is(err, storage.ErrAccountNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrInsufficientFunds):
		return metrics.OutcomeInsufficientFunds
	default:
		return metrics.OutcomeError
	}
}
