package memory

import (
	"fmt"
	"sync"

	interfaces "github.com/sheikh-saqib/accounts-ledger/internal/interfaces"
	"github.com/sheikh-saqib/accounts-ledger/internal/models"
	"github.com/sheikh-saqib/accounts-ledger/internal/storage"
)

// accountEntry pairs an account with the lock that guards its balance.
type accountEntry struct {
	mu      sync.Mutex
	account models.Account
}

// MemoryAccountStore is an in-memory implementation of interfaces.AccountStore.
// mu only guards the accounts map; balances are guarded by each entry's own
// mutex so operations on different accounts never block each other.
type MemoryAccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*accountEntry
}

func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{
		accounts: make(map[string]*accountEntry),
	}
}

// Create inserts the account unless its id is already taken. The existence
// check and the insert happen under the same write lock.
func (m *MemoryAccountStore) Create(account models.Account) (models.Account, error) {
	m.mu.Lock()         // write lock: nobody can insert between our check and our insert
	defer m.mu.Unlock() // unlock automatically when function exits

	if _, exists := m.accounts[account.ID]; exists { // existing entry is left untouched
		return models.Account{}, fmt.Errorf("account id %s: %w", account.ID, storage.ErrDuplicateAccountID)
	}
	m.accounts[account.ID] = &accountEntry{account: account} // store our own copy, not the caller's
	return account, nil
}

// Get returns a copy of the account as of the moment its lock was held.
func (m *MemoryAccountStore) Get(accountID string) (models.Account, error) {
	entry, err := m.entry(accountID)
	if err != nil {
		return models.Account{}, err
	}

	entry.mu.Lock()         // wait for any transfer holding this account
	defer entry.mu.Unlock() // unlock automatically when function exits

	// returned by value so callers can't modify the stored account
	return entry.account, nil
}

func (m *MemoryAccountStore) WithLock(accountID string, fn func(account *models.Account) error) error {
	entry, err := m.entry(accountID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock() // released on error and panic alike

	return fn(&entry.account)
}

// Clear drops every account. It exists to reset the store between test cases;
// no ledger operation deletes accounts.
func (m *MemoryAccountStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = make(map[string]*accountEntry)
}

func (m *MemoryAccountStore) entry(accountID string) (*accountEntry, error) {
	m.mu.RLock()         // read lock: many lookups may run at once
	defer m.mu.RUnlock() // unlock automatically when function exits

	entry, exists := m.accounts[accountID]
	if !exists {
		return nil, fmt.Errorf("account id %s: %w", accountID, storage.ErrAccountNotFound)
	}
	return entry, nil
}

// Compile-time check: ensure MemoryAccountStore implements AccountStore interface
var _ interfaces.AccountStore = (*MemoryAccountStore)(nil)
