package interfaces

import "github.com/sheikh-saqib/accounts-ledger/internal/models"

type AccountStore interface {
	Create(account models.Account) (models.Account, error)
	Get(accountID string) (models.Account, error)
	// WithLock runs fn while holding the account's exclusive lock. The
	// pointer handed to fn must not be retained after fn returns.
	WithLock(accountID string, fn func(account *models.Account) error) error
}
