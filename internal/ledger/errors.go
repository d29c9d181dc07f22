package ledger

import (
	"errors"
	"fmt"
)

// Reasons carried by InvalidTransferError.
const (
	ReasonSelfTransfer      = "self_transfer"
	ReasonNonPositiveAmount = "non_positive_amount"
	ReasonBelowMinimum      = "below_minimum_amount"
)

var (
	ErrInvalidAccount    = errors.New("invalid account")
	ErrInvalidTransfer   = errors.New("invalid transfer")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// InvalidTransferError reports a transfer rejected before any lock was taken.
type InvalidTransferError struct {
	Reason string
}

func (e *InvalidTransferError) Error() string {
	switch e.Reason {
	case ReasonSelfTransfer:
		return "invalid transfer: source and destination account are the same"
	case ReasonNonPositiveAmount:
		return "invalid transfer: amount must be positive"
	case ReasonBelowMinimum:
		return fmt.Sprintf("invalid transfer: amount must be at least %s", MinTransferAmount)
	default:
		return "invalid transfer: " + e.Reason
	}
}

func (e *InvalidTransferError) Is(target error) bool {
	return target == ErrInvalidTransfer
}

// NotificationError wraps a failed notification for an already committed
// transfer. It is logged, never returned to the caller.
type NotificationError struct {
	TransferID string
	AccountID  string
	Err        error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notify account %s about transfer %s: %v", e.AccountID, e.TransferID, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
