package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-zk-vault/models"
)

// memoryStore keeps accounts and vaults in maps. It backs the "memory"
// storage backend and the in-process storage used in tests.
type memoryStore struct {
	mu           sync.RWMutex
	nextID       int64
	accounts     map[int64]models.Account
	byIdentifier map[string]int64
	vaults       map[int64]models.StoredVault
}

// NewMemoryRepositories returns an account and a vault repository that share
// one in-memory store.
func NewMemoryRepositories() (AccountRepository, VaultRepository) {
	m := &memoryStore{
		accounts:     make(map[int64]models.Account),
		byIdentifier: make(map[string]int64),
		vaults:       make(map[int64]models.StoredVault),
	}
	return &memoryAccounts{m}, &memoryVaults{m}
}

type memoryAccounts struct{ *memoryStore }

func (m *memoryAccounts) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	if err := ctx.Err(); err != nil {
		return models.Account{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byIdentifier[account.Identifier]; ok {
		return models.Account{}, ErrIdentifierAlreadyExists
	}

	m.nextID++
	account.AccountID = m.nextID
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	m.accounts[account.AccountID] = account
	m.byIdentifier[account.Identifier] = account.AccountID
	return account, nil
}

func (m *memoryAccounts) FindAccountByIdentifier(ctx context.Context, identifier string) (models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byIdentifier[identifier]
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}
	return m.accounts[id], nil
}

func (m *memoryAccounts) FindAccountByID(ctx context.Context, accountID int64) (models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.accounts[accountID]
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}
	return account, nil
}

type memoryVaults struct{ *memoryStore }

func (m *memoryVaults) GetVault(ctx context.Context, accountID int64) (models.StoredVault, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	vault, ok := m.vaults[accountID]
	if !ok {
		return models.StoredVault{}, ErrVaultNotFound
	}
	return vault, nil
}

func (m *memoryVaults) SaveVault(ctx context.Context, vault models.StoredVault) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if vault.UpdatedAt.IsZero() {
		vault.UpdatedAt = time.Now().UTC()
	}
	m.vaults[vault.AccountID] = vault
	return nil
}
