package events

import "time"

// TransferNotification is the payload delivered to an account holder after a
// transfer touching their account was committed.
type TransferNotification struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"account_id"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}
